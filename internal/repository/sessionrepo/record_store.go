package sessionrepo

import (
	"context"

	"cinecatalog/internal/domain"
)

// RecordStore grava a sessão no campo authToken do próprio usuário.
// Não suporta TTL: a sessão vale até o próximo login do mesmo usuário.
type RecordStore struct {
	Users domain.UserRepository
}

// NewRecordStore cria o armazenamento de sessões sobre o repositório de usuários.
func NewRecordStore(users domain.UserRepository) *RecordStore {
	return &RecordStore{Users: users}
}

// Replace sobrescreve o authToken do usuário.
func (s *RecordStore) Replace(ctx context.Context, userID, sessionID string) error {
	return s.Users.SetAuthToken(ctx, userID, sessionID)
}

// Lookup busca o usuário cujo authToken é sessionID.
func (s *RecordStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	user, err := s.Users.FindByAuthToken(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
