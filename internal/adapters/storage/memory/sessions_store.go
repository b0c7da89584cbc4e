package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pet-adoption/internal/domain/sessions"
)

type sessionStore struct {
	mu   sync.Mutex
	byID map[string]sessions.Session
}

func NewSessionStore() sessions.Store {
	return &sessionStore{byID: make(map[string]sessions.Session)}
}

func (s *sessionStore) Create(ctx context.Context, sess sessions.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(sess.ID) == "" {
		return errors.New("session id required")
	}
	s.byID[sess.ID] = sess
	return nil
}

func (s *sessionStore) Get(ctx context.Context, id string) (sessions.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return sessions.Session{}, sessions.ErrNotFound
	}
	return sess, nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return sessions.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *sessionStore) DeleteByUser(ctx context.Context, userID string) (int, error) {
	return s.deleteWhere(func(sess sessions.Session) bool { return sess.UserID == userID }), nil
}

func (s *sessionStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	return s.deleteWhere(func(sess sessions.Session) bool { return sess.Expired(now) }), nil
}

func (s *sessionStore) deleteWhere(match func(sessions.Session) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.byID {
		if match(sess) {
			delete(s.byID, id)
			n++
		}
	}
	return n
}
