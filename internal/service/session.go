package service

import (
	"sync"

	"alcyxob/loadx/internal/domain"
)

// Session holds the currently signed-in account.
type Session struct {
	mu      sync.RWMutex
	account *domain.Account
}

func NewSession() *Session {
	return &Session{}
}

// Current returns a copy of the signed-in account.
func (s *Session) Current() (*domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return nil, false
	}
	a := *s.account
	return &a, true
}

func (s *Session) set(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = &a
}

// replace swaps the account only while the same email is signed in.
func (s *Session) replace(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account != nil && s.account.Email == a.Email {
		s.account = &a
	}
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = nil
}
