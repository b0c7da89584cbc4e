package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption/internal/domain/adoptions"
)

type adoptionsRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptions.Adoption
}

func NewAdoptionsRepo() adoptions.Repository {
	return &adoptionsRepo{
		byID: make(map[string]adoptions.Adoption),
	}
}

func (r *adoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("adoption id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("adoption already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *adoptionsRepo) Update(ctx context.Context, a adoptions.Adoption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return adoptions.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *adoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return adoptions.Adoption{}, adoptions.ErrNotFound
	}
	return a, nil
}

func (r *adoptionsRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Adoption, error) {
	return r.list(func(a adoptions.Adoption) bool { return a.PetID == petID }), nil
}

func (r *adoptionsRepo) ListByAdopter(ctx context.Context, adopterUserID string) ([]adoptions.Adoption, error) {
	return r.list(func(a adoptions.Adoption) bool { return a.AdopterUserID == adopterUserID }), nil
}

func (r *adoptionsRepo) ListByCreator(ctx context.Context, creatorUserID string) ([]adoptions.Adoption, error) {
	return r.list(func(a adoptions.Adoption) bool { return a.CreatorUserID == creatorUserID }), nil
}

func (r *adoptionsRepo) DeleteByPet(ctx context.Context, petID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, a := range r.byID {
		if a.PetID == petID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *adoptionsRepo) list(keep func(adoptions.Adoption) bool) []adoptions.Adoption {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Adoption, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
