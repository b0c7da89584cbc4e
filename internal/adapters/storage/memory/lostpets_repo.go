package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption/internal/domain/lostpets"
)

type lostPetRepo struct {
	mu   sync.RWMutex
	byID map[string]lostpets.LostPet
}

func NewLostPetRepo() lostpets.Repository {
	return &lostPetRepo{
		byID: make(map[string]lostpets.LostPet),
	}
}

func (r *lostPetRepo) Create(ctx context.Context, p lostpets.LostPet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("lost pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("lost pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *lostPetRepo) Update(ctx context.Context, p lostpets.LostPet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return lostpets.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *lostPetRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return lostpets.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *lostPetRepo) GetByID(ctx context.Context, id string) (lostpets.LostPet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return lostpets.LostPet{}, lostpets.ErrNotFound
	}
	return p, nil
}

func (r *lostPetRepo) List(ctx context.Context) ([]lostpets.LostPet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lostpets.LostPet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
