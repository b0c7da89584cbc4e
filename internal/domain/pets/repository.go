package pets

import "context"

// Repository: GetByID devuelve ErrNotFound si no existe. Los listados van del más nuevo al más viejo.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context, f ListFilter) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
}
