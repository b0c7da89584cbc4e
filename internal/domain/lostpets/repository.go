package lostpets

import "context"

type Repository interface {
	Create(ctx context.Context, p LostPet) error
	Update(ctx context.Context, p LostPet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (LostPet, error)
	// List: del más nuevo al más viejo.
	List(ctx context.Context) ([]LostPet, error)
}
