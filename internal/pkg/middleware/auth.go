package middleware

import (
	"context"
	"net/http"

	"cinecatalog/internal/domain"
	"cinecatalog/internal/service/authservice"
)

// ContextKey é o tipo das chaves que este pacote grava no contexto.
type ContextKey int

const (
	UserKey ContextKey = iota
	RequestIDKey
)

// ErrorWriter escreve um erro da aplicação no formato da API.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Authorizer é o portão de administrador do gerenciador de credenciais.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (domain.User, error)
}

// NewAuthMiddleware exige "Authorization: Bearer <token>" de um administrador
// e anexa o usuário autenticado ao contexto.
func NewAuthMiddleware(auth Authorizer, writeError ErrorWriter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o Token do Header Authorization
			tokenString, err := authservice.ParseAuthorization(r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, r, err)
				return
			}

			// 2. Token, sessão atual e papel
			user, err := auth.Authorize(r.Context(), tokenString)
			if err != nil {
				writeError(w, r, err)
				return
			}

			// 3. Anexar o usuário ao contexto
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext devolve o usuário anexado por NewAuthMiddleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(UserKey).(domain.User)
	return user, ok
}
