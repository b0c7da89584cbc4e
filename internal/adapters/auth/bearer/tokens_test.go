package bearer

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/sessions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueAndParse(t *testing.T) {
	tokens := NewTokens("s3cret", "pet-adoption")
	sess := sessions.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Email:     "ana@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	raw, err := tokens.Issue(sess)
	require.NoError(t, err)

	c, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", c.ID)
	assert.Equal(t, "user-1", c.Subject)
	assert.Equal(t, "ana@example.com", c.Email)
}

func TestTokens_Parse_Rejects(t *testing.T) {
	tokens := NewTokens("s3cret", "pet-adoption")
	sess := sessions.Session{ID: "sess-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	raw, err := tokens.Issue(sess)
	require.NoError(t, err)

	t.Run("otra clave", func(t *testing.T) {
		_, err := NewTokens("otra", "pet-adoption").Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("otro issuer", func(t *testing.T) {
		_, err := NewTokens("s3cret", "otro").Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("vencido", func(t *testing.T) {
		late := NewTokens("s3cret", "pet-adoption")
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("sin secreto", func(t *testing.T) {
		_, err := NewTokens("", "").Issue(sess)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestVerifier_RequiresLiveSession(t *testing.T) {
	ctx := context.Background()
	svc := sessions.NewService(memory.NewSessionStore(), time.Hour)
	tokens := NewTokens("s3cret", "pet-adoption")
	v := NewVerifier(tokens, svc)

	sess, err := svc.Start(ctx, "user-1", "ana@example.com")
	require.NoError(t, err)
	raw, err := tokens.Issue(sess)
	require.NoError(t, err)

	claims, err := v.Verify(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, sess.ID, claims.SessionID)

	_, err = v.Verify(ctx, "  ")
	assert.True(t, errors.Is(err, ErrTokenEmpty))

	require.NoError(t, svc.End(ctx, sess.ID))
	_, err = v.Verify(ctx, raw)
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}
