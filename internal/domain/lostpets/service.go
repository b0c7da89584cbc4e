package lostpets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/media"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("lost pet not found")
	ErrForbidden    = errors.New("forbidden")
)

const (
	PhotoFolder   = "lost_pets"
	PhotoIDPrefix = "lost_"
)

type Service struct {
	repo     Repository
	uploader media.Uploader
	now      func() time.Time
}

func NewService(repo Repository, uploader media.Uploader) *Service {
	if uploader == nil {
		uploader = media.Disabled{}
	}
	return &Service{
		repo:     repo,
		uploader: uploader,
		now:      time.Now,
	}
}

type Input struct {
	Name        string
	LastSeen    string
	LostDate    *time.Time
	Species     string
	Description string

	// nil = sin foto nueva
	Photo *media.Upload
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in Input) (LostPet, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(in.Species) == "" {
		return LostPet{}, ErrInvalidInput
	}

	now := s.now()
	p := LostPet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	apply(&p, in)

	if in.Photo != nil {
		url, err := s.upload(ctx, *in.Photo)
		if err != nil {
			return LostPet{}, err
		}
		p.PhotoURL = &url
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return LostPet{}, err
	}
	metrics.Listing("lost_pet", "create")
	return p, nil
}

func (s *Service) Update(ctx context.Context, id, actorUserID string, in Input) (LostPet, error) {
	if strings.TrimSpace(in.Species) == "" {
		return LostPet{}, ErrInvalidInput
	}

	p, err := s.Authorize(ctx, id, actorUserID)
	if err != nil {
		return LostPet{}, err
	}

	apply(&p, in)
	if in.Photo != nil {
		url, err := s.upload(ctx, *in.Photo)
		if err != nil {
			return LostPet{}, err
		}
		p.PhotoURL = &url
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return LostPet{}, err
	}
	metrics.Listing("lost_pet", "update")
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id, actorUserID string) error {
	if _, err := s.Authorize(ctx, id, actorUserID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.Listing("lost_pet", "delete")
	return nil
}

// Authorize devuelve el reporte y ErrForbidden si actorUserID no es quien lo publicó.
func (s *Service) Authorize(ctx context.Context, id, actorUserID string) (LostPet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return LostPet{}, err
	}
	if p.OwnerUserID != actorUserID {
		return p, ErrForbidden
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (LostPet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return LostPet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]LostPet, error) {
	return s.repo.List(ctx)
}

func (s *Service) upload(ctx context.Context, up media.Upload) (string, error) {
	up.Folder = PhotoFolder
	// sufijo aleatorio: dos subidas en el mismo segundo no se pisan
	up.PublicID = fmt.Sprintf("%s%d_%s", PhotoIDPrefix, s.now().Unix(), uuid.NewString()[:8])
	url, err := s.uploader.Upload(ctx, up)
	metrics.Upload(PhotoFolder, err)
	if err != nil {
		return "", fmt.Errorf("upload lost pet photo: %w", err)
	}
	return url, nil
}

func apply(p *LostPet, in Input) {
	p.Name = strings.TrimSpace(in.Name)
	p.LastSeen = strings.TrimSpace(in.LastSeen)
	p.LostDate = in.LostDate
	p.Species = strings.TrimSpace(in.Species)
	p.Description = strings.TrimSpace(in.Description)
}
