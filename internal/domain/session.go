package domain

import "context"

// SessionStore guarda as sessões ativas, separadas da identidade do usuário.
// Cada usuário tem no máximo uma sessão: Replace sobrescreve a anterior.
type SessionStore interface {
	Replace(ctx context.Context, userID, sessionID string) error
	// Lookup devolve o ID do usuário dono da sessão, ou NotFoundError.
	Lookup(ctx context.Context, sessionID string) (string, error)
}
