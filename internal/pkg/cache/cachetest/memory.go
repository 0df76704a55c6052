// Package cachetest fornece um cache.Client em memória para testes.
package cachetest

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"cinecatalog/internal/pkg/cache"
)

// Memory é um cache.Client em memória. TTLs são registrados mas não expiram
// sozinhos; use Expire para simular a expiração.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
	TTLs map[string]time.Duration
	// Err, se definido, é devolvido por todas as operações.
	Err error
	// BeforeSwap, se definido, roda antes de Swap tomar o lock; os testes
	// usam para forçar entrelaçamentos entre chamadas concorrentes.
	BeforeSwap func(key string)
}

// NewMemory cria um cache vazio.
func NewMemory() *Memory {
	return &Memory{data: map[string]string{}, TTLs: map[string]time.Duration{}}
}

var _ cache.Client = (*Memory)(nil)

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	v, ok := m.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.data[key] = fmt.Sprint(value)
	m.TTLs[key] = expiration
	return nil
}

func (m *Memory) Swap(_ context.Context, key, value string, expiration time.Duration) (string, error) {
	if m.BeforeSwap != nil {
		m.BeforeSwap(key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	previous := m.data[key]
	m.data[key] = value
	m.TTLs[key] = expiration
	return previous, nil
}

func (m *Memory) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// Expire com duração <= 0 remove a chave imediatamente.
func (m *Memory) Expire(_ context.Context, key string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if expiration <= 0 {
		delete(m.data, key)
		delete(m.TTLs, key)
		return nil
	}
	if _, ok := m.data[key]; ok {
		m.TTLs[key] = expiration
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.data, key)
	delete(m.TTLs, key)
	return nil
}

func (m *Memory) Ping(context.Context) error { return m.Err }

// Has indica se a chave existe.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}
