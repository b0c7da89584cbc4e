package bearer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-adoption/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier: el token debe ser válido y su sesión (jti)
// seguir viva, así el logout invalida también los tokens emitidos.
type Verifier struct {
	tokens   *Tokens
	sessions auth.SessionResolver
}

func NewVerifier(tokens *Tokens, sessions auth.SessionResolver) *Verifier {
	return &Verifier{tokens: tokens, sessions: sessions}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	c, err := v.tokens.Parse(token)
	if err != nil {
		return auth.Claims{}, err
	}

	claims, err := v.sessions.ResolveClaims(ctx, c.ID)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("bearer session: %w", err)
	}
	if claims.UserID != c.Subject {
		return auth.Claims{}, ErrInvalidToken
	}
	return claims, nil
}
