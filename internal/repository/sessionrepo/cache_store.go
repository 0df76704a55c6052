// Package sessionrepo implementa domain.SessionStore sobre Redis ou sobre o
// próprio registro do usuário.
package sessionrepo

import (
	"context"
	"errors"
	"time"

	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/cache"
	"cinecatalog/internal/pkg/logger"
)

const (
	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user-session:"
)

// CacheStore mantém duas chaves por sessão:
// session:<sid> -> userID e user-session:<uid> -> sid.
type CacheStore struct {
	Cache  cache.Client
	TTL    time.Duration // 0: sem expiração
	logger logger.Logger
}

// NewCacheStore cria o armazenamento de sessões sobre o cache.
func NewCacheStore(client cache.Client, ttl time.Duration, log logger.Logger) *CacheStore {
	return &CacheStore{Cache: client, TTL: ttl, logger: log}
}

// Replace registra a nova sessão e invalida a anterior do mesmo usuário.
// A troca de user-session:<uid> é atômica: com logins concorrentes, cada
// chamada recebe como anterior a sessão gravada pela outra e só a última
// troca permanece válida.
func (s *CacheStore) Replace(ctx context.Context, userID, sessionID string) error {
	if err := s.Cache.Set(ctx, sessionKeyPrefix+sessionID, userID, s.TTL); err != nil {
		return apperror.NewInternalError("Failed to store session", err)
	}

	previous, err := s.Cache.Swap(ctx, userSessionKeyPrefix+userID, sessionID, s.TTL)
	if err != nil {
		return apperror.NewInternalError("Failed to store session", err)
	}
	if previous == "" || previous == sessionID {
		return nil
	}

	if err := s.Cache.Delete(ctx, sessionKeyPrefix+previous); err != nil {
		return apperror.NewInternalError("Failed to store session", err)
	}
	s.logger.Debug("Sessão anterior invalidada.", map[string]interface{}{"user_id": userID})
	return nil
}

// Lookup resolve a sessão para o ID do usuário.
func (s *CacheStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.Cache.Get(ctx, sessionKeyPrefix+sessionID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", apperror.NewNotFoundError("Session not found")
	}
	if err != nil {
		return "", apperror.NewInternalError("Failed to read session", err)
	}
	return userID, nil
}
