package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "cinecatalog"

// ErrInvalidToken é devolvido para qualquer token que não passe na verificação.
var ErrInvalidToken = errors.New("token inválido")

// SessionClaims identifica a sessão: ID (jti) é o ID de sessão opaco e
// Subject é o ID do usuário. O papel não vai no token; é lido do registro.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Service assina e valida os tokens entregues no login.
type Service struct {
	secretKey []byte
	expiry    time.Duration // 0: sem exp
	now       func() time.Time
}

// NewService cria uma nova instância do serviço Token.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
}

// GenerateToken cria um JWT assinado (HS256) que envolve o ID de sessão.
func (s *Service) GenerateToken(userID, sessionID string) (string, error) {
	now := s.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if s.expiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.expiry))
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken verifica assinatura, emissor e expiração e devolve as claims.
func (s *Service) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
