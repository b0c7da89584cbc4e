package adoptions

import "context"

// Repository: los listados vienen ordenados del más nuevo al más viejo.
type Repository interface {
	Create(ctx context.Context, a Adoption) error
	Update(ctx context.Context, a Adoption) error
	GetByID(ctx context.Context, id string) (Adoption, error)
	ListByPet(ctx context.Context, petID string) ([]Adoption, error)
	ListByAdopter(ctx context.Context, adopterUserID string) ([]Adoption, error)
	ListByCreator(ctx context.Context, creatorUserID string) ([]Adoption, error)
	DeleteByPet(ctx context.Context, petID string) (int, error)
}
