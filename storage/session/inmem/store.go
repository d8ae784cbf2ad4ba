// Package inmemstore is a session.Store kept in memory, used by tests and
// as a fallback when no writable config directory exists.
package inmemstore

import (
	"sync"

	"github.com/umoja/portal/core/session"
)

type Store struct {
	mu   sync.Mutex
	sess *session.Session
}

var _ session.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Get() (session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return session.Session{}, false
	}
	return *s.sess, true
}

func (s *Store) Set(token string, usr session.User) error {
	s.mu.Lock()
	s.sess = &session.Session{Token: token, User: usr}
	s.mu.Unlock()
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	s.sess = nil
	s.mu.Unlock()
	return nil
}
