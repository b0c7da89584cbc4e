package auth

import "context"

// AuthVerifier verifica un token Bearer y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// SessionResolver resuelve el id de sesión guardado en la cookie.
type SessionResolver interface {
	ResolveClaims(ctx context.Context, sessionID string) (Claims, error)
}
