// Package authservice emite e verifica credenciais: login com e-mail e senha,
// sessão única por usuário e portão de administrador para as escritas.
package authservice

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/pkg/metrics"
	"cinecatalog/internal/pkg/token"
)

// sessionIDBytes é o tamanho do ID de sessão antes da codificação hex.
const sessionIDBytes = 64

// UserFinder é a parte do repositório de usuários usada na autenticação.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID, sessionID string) (string, error)
	ValidateToken(tokenString string) (*token.SessionClaims, error)
}

// LoginResult é o que o cliente recebe após um login bem-sucedido.
type LoginResult struct {
	AuthToken string          `json:"authToken"`
	Role      domain.UserRole `json:"role"`
}

// Service é o gerenciador de credenciais.
type Service struct {
	users    UserFinder
	sessions domain.SessionStore
	tokens   TokenService
	logger   logger.Logger

	newSessionID func() (string, error)
}

// NewService cria o gerenciador de credenciais.
func NewService(users UserFinder, sessions domain.SessionStore, tokens TokenService, log logger.Logger) *Service {
	return &Service{
		users:        users,
		sessions:     sessions,
		tokens:       tokens,
		logger:       log,
		newSessionID: randomSessionID,
	}
}

// Login verifica e-mail e senha e emite um token novo. A sessão anterior do
// usuário, se houver, deixa de valer.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	// 1. Validação Básica
	if email == "" || password == "" {
		return LoginResult{}, apperror.NewValidationError("Email and password are required")
	}

	// 2. Buscar Usuário pelo Email
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira 401 para não revelar quais e-mails existem.
		if apperror.IsNotFound(err) {
			return LoginResult{}, s.reject("credentials", "Invalid credentials")
		}
		return LoginResult{}, err
	}

	// 3. Comparar Senhas
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, s.reject("credentials", "Invalid credentials")
	}

	// 4. Nova sessão, substituindo a anterior
	sessionID, err := s.newSessionID()
	if err != nil {
		return LoginResult{}, apperror.NewInternalError("Failed to create session", err)
	}
	if err := s.sessions.Replace(ctx, user.ID, sessionID); err != nil {
		return LoginResult{}, err
	}

	// 5. Token assinado envolvendo o ID de sessão
	tokenString, err := s.tokens.GenerateToken(user.ID, sessionID)
	if err != nil {
		return LoginResult{}, apperror.NewInternalError("Failed to issue token", err)
	}

	metrics.SessionsIssued.Inc()
	s.logger.Info("Login efetuado; sessão substituída.", map[string]interface{}{"user_id": user.ID})

	return LoginResult{AuthToken: tokenString, Role: user.Role}, nil
}

// Authenticate devolve o usuário dono do token, se a sessão ainda for a atual.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (domain.User, error) {
	if tokenString == "" {
		return domain.User{}, s.reject("token", "Missing token")
	}

	// 1. Assinatura e expiração, antes de qualquer acesso ao armazenamento
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return domain.User{}, s.reject("token", "Invalid token")
	}

	// 2. Sessão atual do usuário
	userID, err := s.sessions.Lookup(ctx, claims.ID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return domain.User{}, s.reject("session", "Invalid token")
		}
		return domain.User{}, err
	}
	if userID != claims.Subject {
		return domain.User{}, s.reject("session", "Invalid token")
	}

	// 3. Registro atual (o papel é lido daqui, não do token)
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return domain.User{}, s.reject("session", "Invalid token")
		}
		return domain.User{}, err
	}

	return user, nil
}

// Authorize exige, além de um token válido, o papel de administrador.
func (s *Service) Authorize(ctx context.Context, tokenString string) (domain.User, error) {
	user, err := s.Authenticate(ctx, tokenString)
	if err != nil {
		return domain.User{}, err
	}
	if !user.IsAdmin() {
		return domain.User{}, s.reject("role", "Admin role required")
	}
	return user, nil
}

// ParseAuthorization extrai o token de um cabeçalho "Bearer <token>". Só o
// valor após o primeiro espaço é usado.
func ParseAuthorization(header string) (string, error) {
	scheme, value, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(value) == "" {
		return "", apperror.NewUnauthorizedError("Missing or malformed Authorization header")
	}
	return strings.TrimSpace(value), nil
}

func (s *Service) reject(reason, msg string) error {
	metrics.AuthFailures.WithLabelValues(reason).Inc()
	s.logger.Debug("Credencial rejeitada.", map[string]interface{}{"reason": reason})
	return apperror.NewUnauthorizedError(msg)
}

func randomSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("falha ao gerar ID de sessão: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
