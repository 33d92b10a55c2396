package mem

import (
	"sync"
	"time"
)

// RevokedTokenStore remembers logged-out bearer tokens until they would have expired anyway.
type RevokedTokenStore interface {
	Revoke(token string, until time.Time)
	IsRevoked(token string) bool
}

type revokedTokens struct {
	mu   sync.RWMutex
	data map[string]time.Time
	now  func() time.Time
}

func NewRevokedTokens() RevokedTokenStore {
	return &revokedTokens{
		data: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (s *revokedTokens) Revoke(token string, until time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.data[token] = until
}

func (s *revokedTokens) IsRevoked(token string) bool {
	s.mu.RLock()
	until, ok := s.data[token]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	if s.now().After(until) {
		s.mu.Lock()
		delete(s.data, token)
		s.mu.Unlock()
		return false
	}
	return true
}

func (s *revokedTokens) sweepLocked() {
	now := s.now()
	for k, until := range s.data {
		if now.After(until) {
			delete(s.data, k)
		}
	}
}
