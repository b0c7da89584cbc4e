package sessions

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("session not found")
)

const DefaultLifetime = 2 * time.Hour

type Service struct {
	store    Store
	lifetime time.Duration
	now      func() time.Time
}

func NewService(store Store, lifetime time.Duration) *Service {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Service{
		store:    store,
		lifetime: lifetime,
		now:      time.Now,
	}
}

func (s *Service) Lifetime() time.Duration { return s.lifetime }

func (s *Service) Start(ctx context.Context, userID, email string) (Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Session{}, ErrInvalidInput
	}

	id, err := NewID()
	if err != nil {
		return Session{}, err
	}

	now := s.now()
	sess := Session{
		ID:        id,
		UserID:    userID,
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		ExpiresAt: now.Add(s.lifetime),
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Resolve devuelve la sesión si existe y no expiró. Las expiradas se borran al vuelo.
func (s *Service) Resolve(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrNotFound
	}

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	if sess.Expired(s.now()) {
		_ = s.store.Delete(ctx, id)
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// ResolveClaims implementa auth.SessionResolver.
func (s *Service) ResolveClaims(ctx context.Context, sessionID string) (auth.Claims, error) {
	sess, err := s.Resolve(ctx, sessionID)
	if err != nil {
		return auth.Claims{}, err
	}
	return auth.Claims{
		UserID:    sess.UserID,
		Email:     sess.Email,
		SessionID: sess.ID,
	}, nil
}

// End es idempotente.
func (s *Service) End(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) EndAllForUser(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, ErrInvalidInput
	}
	return s.store.DeleteByUser(ctx, userID)
}

func (s *Service) Prune(ctx context.Context) (int, error) {
	return s.store.DeleteExpired(ctx, s.now())
}

// NewID: 32 bytes aleatorios en base64url (sin padding).
func NewID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
