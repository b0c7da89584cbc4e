package users

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pet-adoption/internal/ports/notify"
)

var ErrInvalidToken = errors.New("invalid or expired reset token")

// SessionRevoker cierra todas las sesiones de un usuario (tras cambiar la clave).
type SessionRevoker interface {
	EndAllForUser(ctx context.Context, userID string) (int, error)
}

// PasswordResets implementa "olvidé mi contraseña": token por correo, un uso, con TTL.
type PasswordResets struct {
	users    *Service
	tokens   ResetTokenRepository
	notifier notify.Notifier
	sessions SessionRevoker

	frontendURL string
	ttl         time.Duration
	now         func() time.Time
}

func NewPasswordResets(users *Service, tokens ResetTokenRepository, notifier notify.Notifier, sessions SessionRevoker, frontendURL string, ttl time.Duration) *PasswordResets {
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	return &PasswordResets{
		users:       users,
		tokens:      tokens,
		notifier:    notifier,
		sessions:    sessions,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		ttl:         ttl,
		now:         time.Now,
	}
}

// RequestReset no revela si el email existe: sin usuario no hace nada y devuelve nil.
func (p *PasswordResets) RequestReset(ctx context.Context, email string) error {
	u, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := p.tokens.Put(ctx, ResetToken{
		Email:     u.Email,
		TokenHash: hashToken(token),
		CreatedAt: p.now(),
	}); err != nil {
		return err
	}

	return p.notifier.PasswordReset(ctx, notify.PasswordResetMessage{
		Email:            u.Email,
		UserName:         u.Name,
		ResetURL:         p.resetURL(token, u.Email),
		ExpiresInMinutes: int(p.ttl / time.Minute),
	})
}

type ResetInput struct {
	Token    string
	Email    string
	Password string
}

// Reset cambia la clave, consume el token y revoca todas las sesiones del usuario.
func (p *PasswordResets) Reset(ctx context.Context, in ResetInput) (User, error) {
	u, err := p.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidToken
		}
		return User{}, err
	}

	stored, err := p.tokens.Get(ctx, u.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidToken
		}
		return User{}, err
	}
	if !p.now().Before(stored.CreatedAt.Add(p.ttl)) {
		_ = p.tokens.Delete(ctx, u.Email)
		return User{}, ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(stored.TokenHash), []byte(hashToken(in.Token))) != 1 {
		return User{}, ErrInvalidToken
	}

	u, err = p.users.setPassword(ctx, u, in.Password)
	if err != nil {
		return User{}, err
	}
	if err := p.tokens.Delete(ctx, u.Email); err != nil && !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	if p.sessions != nil {
		if _, err := p.sessions.EndAllForUser(ctx, u.ID); err != nil {
			return User{}, fmt.Errorf("revoke sessions: %w", err)
		}
	}
	return u, nil
}

func (p *PasswordResets) resetURL(token, email string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return p.frontendURL + "/reset-password?" + q.Encode()
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:])
}
