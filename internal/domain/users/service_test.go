package users

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"pet-adoption/internal/ports/notify"

	"golang.org/x/crypto/bcrypt"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == NormalizeEmail(email) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) GetMany(ctx context.Context, ids []string) (map[string]User, error) {
	out := map[string]User{}
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type testTokens struct {
	byEmail map[string]ResetToken
}

func (r *testTokens) Put(ctx context.Context, t ResetToken) error {
	r.byEmail[t.Email] = t
	return nil
}

func (r *testTokens) Get(ctx context.Context, email string) (ResetToken, error) {
	t, ok := r.byEmail[email]
	if !ok {
		return ResetToken{}, ErrNotFound
	}
	return t, nil
}

func (r *testTokens) Delete(ctx context.Context, email string) error {
	if _, ok := r.byEmail[email]; !ok {
		return ErrNotFound
	}
	delete(r.byEmail, email)
	return nil
}

type testNotifier struct {
	sent []notify.PasswordResetMessage
}

func (n *testNotifier) PasswordReset(ctx context.Context, msg notify.PasswordResetMessage) error {
	n.sent = append(n.sent, msg)
	return nil
}

type testRevoker struct {
	revoked []string
}

func (r *testRevoker) EndAllForUser(ctx context.Context, userID string) (int, error) {
	r.revoked = append(r.revoked, userID)
	return 1, nil
}

func newTestService(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	return NewService(repo, bcrypt.MinCost), repo
}

func mustRegister(t *testing.T, svc *Service, email string) User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ana",
		Phone:    "3511234567",
		City:     "Córdoba",
		Email:    email,
		Password: "secreto123",
	})
	if err != nil {
		t.Fatalf("Register(%s) returned error: %v", email, err)
	}
	return u
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_NormalizesAndHashes(t *testing.T) {
	svc, _ := newTestService(t)

	u := mustRegister(t, svc, "  Ana@Example.COM ")

	if u.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash == "secreto123" || u.PasswordHash == "" {
		t.Fatalf("expected bcrypt hash, got %q", u.PasswordHash)
	}
	if u.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	mustRegister(t, svc, "ana@example.com")

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Otra", Email: "ANA@example.com", Password: "x"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Register_RequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "secreto123"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Register_PasswordOver72Bytes(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: strings.Repeat("a", 80),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected no user stored")
	}
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	registered := mustRegister(t, svc, "ana@example.com")

	u, err := svc.Authenticate(ctx, "ANA@example.com", "secreto123")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if u.ID != registered.ID {
		t.Fatalf("expected user %s, got %s", registered.ID, u.ID)
	}

	if _, err := svc.Authenticate(ctx, "ana@example.com", "incorrecta"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nadie@example.com", "secreto123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestService_UpdateProfile_OnlyTouchesSentFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := mustRegister(t, svc, "ana@example.com")

	city := " Rosario "
	desc := "Amo los gatos"
	got, err := svc.UpdateProfile(ctx, u.ID, ProfileInput{City: &city, Description: &desc})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if got.City != "Rosario" || got.Description != desc || got.Name != "Ana" {
		t.Fatalf("unexpected profile %#v", got)
	}

	empty := "  "
	if _, err := svc.UpdateProfile(ctx, u.ID, ProfileInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, "nope", ProfileInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func newTestResets(t *testing.T) (*PasswordResets, *Service, *testTokens, *testNotifier, *testRevoker) {
	t.Helper()
	svc, _ := newTestService(t)
	tokens := &testTokens{byEmail: map[string]ResetToken{}}
	notifier := &testNotifier{}
	revoker := &testRevoker{}
	resets := NewPasswordResets(svc, tokens, notifier, revoker, "http://localhost:5173/", 60*time.Minute)
	return resets, svc, tokens, notifier, revoker
}

func tokenFrom(t *testing.T, msg notify.PasswordResetMessage) string {
	t.Helper()
	u, err := url.Parse(msg.ResetURL)
	if err != nil {
		t.Fatalf("parse reset url: %v", err)
	}
	if u.Path != "/reset-password" {
		t.Fatalf("expected /reset-password path, got %q", u.Path)
	}
	return u.Query().Get("token")
}

func TestPasswordResets_UnknownEmailIsSilent(t *testing.T) {
	resets, _, tokens, notifier, _ := newTestResets(t)

	if err := resets.RequestReset(context.Background(), "nadie@example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	if len(notifier.sent) != 0 || len(tokens.byEmail) != 0 {
		t.Fatalf("expected nothing sent or stored")
	}
}

func TestPasswordResets_FullCycle(t *testing.T) {
	resets, svc, tokens, notifier, revoker := newTestResets(t)
	ctx := context.Background()
	u := mustRegister(t, svc, "ana@example.com")

	if err := resets.RequestReset(ctx, "Ana@example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if msg.ExpiresInMinutes != 60 || msg.UserName != "Ana" {
		t.Fatalf("unexpected message %#v", msg)
	}
	token := tokenFrom(t, msg)
	if stored := tokens.byEmail["ana@example.com"]; stored.TokenHash == token || stored.TokenHash == "" {
		t.Fatalf("expected only the token hash stored")
	}

	if _, err := resets.Reset(ctx, ResetInput{Token: "otro", Email: u.Email, Password: "nueva-clave"}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong token, got %v", err)
	}

	if _, err := resets.Reset(ctx, ResetInput{Token: token, Email: u.Email, Password: "nueva-clave"}); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if _, err := svc.Authenticate(ctx, u.Email, "nueva-clave"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
	if len(revoker.revoked) != 1 || revoker.revoked[0] != u.ID {
		t.Fatalf("expected sessions revoked for %s, got %v", u.ID, revoker.revoked)
	}

	// Un solo uso
	if _, err := resets.Reset(ctx, ResetInput{Token: token, Email: u.Email, Password: "otra-clave"}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on reuse, got %v", err)
	}
}

func TestPasswordResets_ExpiredToken(t *testing.T) {
	resets, svc, tokens, notifier, _ := newTestResets(t)
	ctx := context.Background()
	u := mustRegister(t, svc, "ana@example.com")

	base := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	resets.now = func() time.Time { return base }
	if err := resets.RequestReset(ctx, u.Email); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}
	token := tokenFrom(t, notifier.sent[0])

	resets.now = func() time.Time { return base.Add(61 * time.Minute) }
	if _, err := resets.Reset(ctx, ResetInput{Token: token, Email: u.Email, Password: "nueva-clave"}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
	if _, ok := tokens.byEmail[u.Email]; ok {
		t.Fatalf("expected expired token deleted")
	}
}
