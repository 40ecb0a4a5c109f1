package tokenstore

import (
	"context"
	"sync"

	"github.com/jhoicas/ox-dashboard/internal/domain/repository"
)

var _ repository.TokenStore = (*MemoryStore)(nil)

// MemoryStore guarda los tokens en memoria del proceso (desarrollo y tests).
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

func (s *MemoryStore) GetToken(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[key(sessionID)], nil
}

func (s *MemoryStore) SetToken(_ context.Context, sessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[key(sessionID)] = token
	return nil
}

func (s *MemoryStore) DeleteToken(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, key(sessionID))
	return nil
}

// Len número de tokens guardados.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

func key(sessionID string) string {
	return sessionID + ":" + repository.TokenKey
}
