package users

import "context"

// Repository: GetByEmail compara sin distinguir mayúsculas; Create devuelve
// ErrEmailTaken si el email ya existe.
type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetMany(ctx context.Context, ids []string) (map[string]User, error)
}

type ResetTokenRepository interface {
	// Put reemplaza el token vigente del email.
	Put(ctx context.Context, t ResetToken) error
	Get(ctx context.Context, email string) (ResetToken, error)
	Delete(ctx context.Context, email string) error
}
