package social

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"pet-adoption/internal/domain/users"
)

type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (users.User, error)
}

type Service struct {
	providers map[string]Provider
	users     UserFinder
}

func NewService(finder UserFinder, providers ...Provider) *Service {
	s := &Service{
		providers: map[string]Provider{},
		users:     finder,
	}
	for _, p := range providers {
		if p == nil {
			continue
		}
		s.providers[strings.ToLower(p.Name())] = p
	}
	return s
}

// Providers devuelve los nombres configurados, ordenados.
func (s *Service) Providers() []string {
	out := make([]string, 0, len(s.providers))
	for name := range s.providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *Service) provider(name string) (Provider, error) {
	p, ok := s.providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

func (s *Service) RedirectURL(name string) (string, error) {
	p, err := s.provider(name)
	if err != nil {
		return "", err
	}
	return p.AuthCodeURL(), nil
}

// Callback canjea el code y busca la cuenta local por email.
func (s *Service) Callback(ctx context.Context, name, code string) (users.User, error) {
	p, err := s.provider(name)
	if err != nil {
		return users.User{}, err
	}
	if strings.TrimSpace(code) == "" {
		return users.User{}, ErrMissingCode
	}

	prof, err := p.Exchange(ctx, code)
	if err != nil {
		return users.User{}, err
	}
	if strings.TrimSpace(prof.Email) == "" {
		return users.User{}, ErrNoEmail
	}

	u, err := s.users.GetByEmail(ctx, prof.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return users.User{}, ErrNoAccount
		}
		return users.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}
