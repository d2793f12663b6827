package repository

import (
	"sync"

	"github.com/x-xyz/auction/domain"
)

type memoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemory keeps the credential for the lifetime of the process
func NewMemory() domain.CredentialStore {
	return &memoryStore{}
}

func (s *memoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *memoryStore) Set(token string) error {
	if token == "" {
		return domain.ErrNoCredential
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
