package pets

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
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

// PhotoFolder y el prefijo del public id en el host de medios.
const (
	PhotoFolder   = "pets"
	PhotoIDPrefix = "pet_"
)

// DeleteHook corre antes de borrar una mascota (p.ej. borrar sus adopciones).
type DeleteHook func(ctx context.Context, petID string) error

type Service struct {
	repo     Repository
	uploader media.Uploader
	now      func() time.Time

	onDelete []DeleteHook
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

func (s *Service) OnDelete(h DeleteHook) {
	s.onDelete = append(s.onDelete, h)
}

type Input struct {
	Name            string
	Location        string
	Species         string
	Description     string
	HealthCondition string
	Castrated       bool

	// nil = sin foto nueva
	Photo *media.Upload
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Location) == "" || strings.TrimSpace(in.Species) == "" {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in Input) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	apply(&p, in)

	if in.Photo != nil {
		url, err := s.upload(ctx, *in.Photo)
		if err != nil {
			return Pet{}, err
		}
		p.PhotoURL = &url
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	metrics.Listing("pet", "create")
	return p, nil
}

// Update reemplaza los datos; la foto solo cambia si viene una nueva.
func (s *Service) Update(ctx context.Context, petID, actorUserID string, in Input) (Pet, error) {
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	p, err := s.Authorize(ctx, petID, actorUserID)
	if err != nil {
		return Pet{}, err
	}

	apply(&p, in)
	if in.Photo != nil {
		url, err := s.upload(ctx, *in.Photo)
		if err != nil {
			return Pet{}, err
		}
		p.PhotoURL = &url
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	metrics.Listing("pet", "update")
	return p, nil
}

func (s *Service) Delete(ctx context.Context, petID, actorUserID string) error {
	if _, err := s.Authorize(ctx, petID, actorUserID); err != nil {
		return err
	}

	for _, h := range s.onDelete {
		if err := h(ctx, petID); err != nil {
			return fmt.Errorf("pet delete hook: %w", err)
		}
	}
	if err := s.repo.Delete(ctx, petID); err != nil {
		return err
	}
	metrics.Listing("pet", "delete")
	return nil
}

// SetStatus lo usa el flujo de adopciones (no chequea dueño).
func (s *Service) SetStatus(ctx context.Context, petID string, status Status) (Pet, error) {
	if !status.Valid() {
		return Pet{}, ErrInvalidInput
	}
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.Status == status {
		return p, nil
	}
	p.Status = status
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListAvailable es el listado público: solo mascotas disponibles.
func (s *Service) ListAvailable(ctx context.Context, f ListFilter) ([]Pet, error) {
	f.Status = StatusAvailable
	f.Species = strings.TrimSpace(f.Species)
	f.Location = strings.TrimSpace(f.Location)
	return s.repo.List(ctx, f)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) upload(ctx context.Context, up media.Upload) (string, error) {
	up.Folder = PhotoFolder
	// sufijo aleatorio: dos subidas en el mismo segundo no se pisan
	up.PublicID = fmt.Sprintf("%s%d_%s", PhotoIDPrefix, s.now().Unix(), uuid.NewString()[:8])
	url, err := s.uploader.Upload(ctx, up)
	metrics.Upload(PhotoFolder, err)
	if err != nil {
		return "", fmt.Errorf("upload pet photo: %w", err)
	}
	return url, nil
}

func apply(p *Pet, in Input) {
	p.Name = strings.TrimSpace(in.Name)
	p.Location = strings.TrimSpace(in.Location)
	p.Species = strings.TrimSpace(in.Species)
	p.Description = strings.TrimSpace(in.Description)
	p.HealthCondition = strings.TrimSpace(in.HealthCondition)
	p.Castrated = in.Castrated
}
