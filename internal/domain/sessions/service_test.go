package sessions

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testStore struct {
	byID map[string]Session
}

func newTestStore() *testStore {
	return &testStore{byID: map[string]Session{}}
}

func (s *testStore) Create(ctx context.Context, sess Session) error {
	s.byID[sess.ID] = sess
	return nil
}

func (s *testStore) Get(ctx context.Context, id string) (Session, error) {
	sess, ok := s.byID[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *testStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *testStore) DeleteByUser(ctx context.Context, userID string) (int, error) {
	n := 0
	for id, sess := range s.byID {
		if sess.UserID == userID {
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}

func (s *testStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	n := 0
	for id, sess := range s.byID {
		if sess.Expired(now) {
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}

func newClockedService(store Store, lifetime time.Duration) (*Service, *time.Time) {
	clock := time.Date(2025, 12, 22, 9, 0, 0, 0, time.UTC)
	svc := NewService(store, lifetime)
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func TestService_StartAndResolve(t *testing.T) {
	store := newTestStore()
	svc, clock := newClockedService(store, time.Hour)
	ctx := context.Background()

	sess, err := svc.Start(ctx, "user-1", " ana@example.com ")
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if len(sess.ID) != 43 {
		t.Fatalf("expected 43-char base64url id, got %q", sess.ID)
	}
	if !sess.ExpiresAt.Equal(clock.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", sess.ExpiresAt)
	}

	claims, err := svc.ResolveClaims(ctx, sess.ID)
	if err != nil {
		t.Fatalf("ResolveClaims returned error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ana@example.com" || claims.SessionID != sess.ID {
		t.Fatalf("unexpected claims %#v", claims)
	}

	*clock = clock.Add(time.Hour)
	if _, err := svc.Resolve(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound once expired, got %v", err)
	}
	if _, ok := store.byID[sess.ID]; ok {
		t.Fatalf("expected expired session removed on resolve")
	}
}

func TestService_Start_RequiresUser(t *testing.T) {
	svc, _ := newClockedService(newTestStore(), 0)
	if svc.Lifetime() != DefaultLifetime {
		t.Fatalf("expected default lifetime, got %v", svc.Lifetime())
	}
	if _, err := svc.Start(context.Background(), "  ", "x@example.com"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_EndIsIdempotent(t *testing.T) {
	svc, _ := newClockedService(newTestStore(), time.Hour)
	ctx := context.Background()

	sess, _ := svc.Start(ctx, "user-1", "")
	if err := svc.End(ctx, sess.ID); err != nil {
		t.Fatalf("End returned error: %v", err)
	}
	if err := svc.End(ctx, sess.ID); err != nil {
		t.Fatalf("second End returned error: %v", err)
	}
	if err := svc.End(ctx, ""); err != nil {
		t.Fatalf("End with empty id returned error: %v", err)
	}
}

func TestService_EndAllForUserAndPrune(t *testing.T) {
	store := newTestStore()
	svc, clock := newClockedService(store, time.Hour)
	ctx := context.Background()

	_, _ = svc.Start(ctx, "user-1", "")
	_, _ = svc.Start(ctx, "user-1", "")
	other, _ := svc.Start(ctx, "user-2", "")

	n, err := svc.EndAllForUser(ctx, "user-1")
	if err != nil || n != 2 {
		t.Fatalf("expected 2 sessions ended, got %d (%v)", n, err)
	}
	if _, err := svc.EndAllForUser(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	*clock = clock.Add(30 * time.Minute)
	fresh, _ := svc.Start(ctx, "user-3", "")

	*clock = clock.Add(45 * time.Minute)
	n, err = svc.Prune(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 pruned, got %d (%v)", n, err)
	}
	if _, ok := store.byID[other.ID]; ok {
		t.Fatalf("expected %s pruned", other.ID)
	}
	if _, ok := store.byID[fresh.ID]; !ok {
		t.Fatalf("expected %s kept", fresh.ID)
	}
}
