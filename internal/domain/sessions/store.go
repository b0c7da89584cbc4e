package sessions

import (
	"context"
	"time"
)

// Store persiste sesiones (memoria, Postgres o Redis).
// Get devuelve ErrNotFound si la sesión no existe.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
