package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption/internal/domain/users"
)

type userRepo struct {
	mu      sync.RWMutex
	byID    map[string]users.User
	byEmail map[string]string // email normalizado -> id
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:    make(map[string]users.User),
		byEmail: make(map[string]string),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	key := users.NormalizeEmail(u.Email)
	if _, taken := r.byEmail[key]; taken {
		return users.ErrEmailTaken
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}
	r.byID[u.ID] = u
	r.byEmail[key] = u.ID
	return nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[u.ID]
	if !exists {
		return users.ErrNotFound
	}
	oldKey, newKey := users.NormalizeEmail(prev.Email), users.NormalizeEmail(u.Email)
	if oldKey != newKey {
		if _, taken := r.byEmail[newKey]; taken {
			return users.ErrEmailTaken
		}
		delete(r.byEmail, oldKey)
		r.byEmail[newKey] = u.ID
	}
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[users.NormalizeEmail(email)]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *userRepo) GetMany(ctx context.Context, ids []string) (map[string]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]users.User, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type resetTokenRepo struct {
	mu      sync.Mutex
	byEmail map[string]users.ResetToken
}

func NewResetTokenRepo() users.ResetTokenRepository {
	return &resetTokenRepo{byEmail: make(map[string]users.ResetToken)}
}

func (r *resetTokenRepo) Put(ctx context.Context, t users.ResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEmail[users.NormalizeEmail(t.Email)] = t
	return nil
}

func (r *resetTokenRepo) Get(ctx context.Context, email string) (users.ResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byEmail[users.NormalizeEmail(email)]
	if !ok {
		return users.ResetToken{}, users.ErrNotFound
	}
	return t, nil
}

func (r *resetTokenRepo) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := users.NormalizeEmail(email)
	if _, ok := r.byEmail[key]; !ok {
		return users.ErrNotFound
	}
	delete(r.byEmail, key)
	return nil
}
