package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("adoption not found")
	ErrPetNotFound  = errors.New("pet not found")
	ErrBadState     = errors.New("invalid state")
)

// PetCatalog evita que pets dependa de adoptions (pets.Service lo implementa).
type PetCatalog interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	SetStatus(ctx context.Context, petID string, status pets.Status) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetCatalog
	now  func() time.Time

	// un mutex por mascota: las transiciones de sus adopciones van en serie
	locks sync.Map
}

func NewService(repo Repository, catalog PetCatalog) *Service {
	return &Service{
		repo: repo,
		pets: catalog,
		now:  time.Now,
	}
}

type RequestInput struct {
	PetID         string
	AdopterUserID string
	Message       string
}

// Request crea la solicitud y pasa la mascota a pending.
// Una solicitud abierta del mismo adoptante se reutiliza (solo cambia el mensaje).
func (s *Service) Request(ctx context.Context, in RequestInput) (Adoption, error) {
	petID := strings.TrimSpace(in.PetID)
	adopterID := strings.TrimSpace(in.AdopterUserID)
	if petID == "" || adopterID == "" {
		return Adoption{}, ErrInvalidInput
	}
	defer s.lockPet(petID)()

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Adoption{}, ErrPetNotFound
		}
		return Adoption{}, err
	}
	if pet.OwnerUserID == adopterID {
		return Adoption{}, ErrForbidden
	}
	if pet.Status != pets.StatusAvailable && pet.Status != pets.StatusPending {
		return Adoption{}, ErrBadState
	}

	now := s.now()
	msg := strings.TrimSpace(in.Message)

	existing, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return Adoption{}, err
	}
	for _, a := range existing {
		if a.AdopterUserID != adopterID || !a.Status.Open() {
			continue
		}
		a.Message = msg
		a.UpdatedAt = now
		if err := s.repo.Update(ctx, a); err != nil {
			return Adoption{}, err
		}
		return a, nil
	}

	a := Adoption{
		ID:            uuid.NewString(),
		PetID:         petID,
		CreatorUserID: pet.OwnerUserID,
		AdopterUserID: adopterID,
		Message:       msg,
		Status:        StatusRequested,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Adoption{}, err
	}

	if pet.Status == pets.StatusAvailable {
		if _, err := s.pets.SetStatus(ctx, petID, pets.StatusPending); err != nil {
			return Adoption{}, fmt.Errorf("mark pet pending: %w", err)
		}
	}
	metrics.Adoption(string(StatusRequested))
	return a, nil
}

// Approve: solo el creador. Idempotente si ya estaba aprobada.
func (s *Service) Approve(ctx context.Context, adoptionID, creatorUserID string) (Adoption, error) {
	a, err := s.load(ctx, adoptionID, creatorUserID)
	if err != nil {
		return Adoption{}, err
	}
	if a.CreatorUserID != creatorUserID {
		return Adoption{}, ErrForbidden
	}

	defer s.lockPet(a.PetID)()
	if a, err = s.repo.GetByID(ctx, a.ID); err != nil {
		return Adoption{}, err
	}
	if a.Status == StatusApproved {
		return a, nil
	}
	if !a.Status.Open() {
		return Adoption{}, ErrBadState
	}

	siblings, err := s.repo.ListByPet(ctx, a.PetID)
	if err != nil {
		return Adoption{}, err
	}
	for _, o := range siblings {
		if o.ID != a.ID && o.Status == StatusApproved {
			return Adoption{}, ErrBadState
		}
	}

	now := s.now()
	a.Status = StatusApproved
	a.AdoptionDate = &now
	a.UpdatedAt = now
	if err := s.repo.Update(ctx, a); err != nil {
		return Adoption{}, err
	}

	for _, o := range siblings {
		if o.ID == a.ID || !o.Status.Open() {
			continue
		}
		o.Status = StatusRejected
		o.UpdatedAt = now
		if err := s.repo.Update(ctx, o); err != nil {
			return Adoption{}, fmt.Errorf("reject sibling %s: %w", o.ID, err)
		}
		metrics.Adoption(string(StatusRejected))
	}

	if _, err := s.pets.SetStatus(ctx, a.PetID, pets.StatusAdopted); err != nil {
		return Adoption{}, fmt.Errorf("mark pet adopted: %w", err)
	}
	metrics.Adoption(string(StatusApproved))
	return a, nil
}

// Reject: solo el creador, sobre una solicitud abierta.
func (s *Service) Reject(ctx context.Context, adoptionID, creatorUserID string) (Adoption, error) {
	a, err := s.load(ctx, adoptionID, creatorUserID)
	if err != nil {
		return Adoption{}, err
	}
	if a.CreatorUserID != creatorUserID {
		return Adoption{}, ErrForbidden
	}
	return s.close(ctx, a, StatusRejected)
}

// Cancel: solo el adoptante, sobre una solicitud abierta.
func (s *Service) Cancel(ctx context.Context, adoptionID, adopterUserID string) (Adoption, error) {
	a, err := s.load(ctx, adoptionID, adopterUserID)
	if err != nil {
		return Adoption{}, err
	}
	if a.AdopterUserID != adopterUserID {
		return Adoption{}, ErrForbidden
	}
	return s.close(ctx, a, StatusCancelled)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Adoption, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

// ListMine: role vacío = adoptante.
func (s *Service) ListMine(ctx context.Context, userID string, role Role) ([]Adoption, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	switch role {
	case "", RoleAdopter:
		return s.repo.ListByAdopter(ctx, userID)
	case RoleCreator:
		return s.repo.ListByCreator(ctx, userID)
	default:
		return nil, ErrInvalidInput
	}
}

// PurgePet borra las adopciones de una mascota; se engancha en pets.Service.OnDelete.
func (s *Service) PurgePet(ctx context.Context, petID string) error {
	unlock := s.lockPet(petID)
	_, err := s.repo.DeleteByPet(ctx, petID)
	unlock()
	s.locks.Delete(petID)
	return err
}

func (s *Service) lockPet(petID string) func() {
	m, _ := s.locks.LoadOrStore(petID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) load(ctx context.Context, adoptionID, actorUserID string) (Adoption, error) {
	adoptionID = strings.TrimSpace(adoptionID)
	if adoptionID == "" || strings.TrimSpace(actorUserID) == "" {
		return Adoption{}, ErrInvalidInput
	}
	a, err := s.repo.GetByID(ctx, adoptionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Adoption{}, ErrNotFound
		}
		return Adoption{}, err
	}
	return a, nil
}

func (s *Service) close(ctx context.Context, a Adoption, to Status) (Adoption, error) {
	defer s.lockPet(a.PetID)()
	a, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return Adoption{}, err
	}
	if a.Status == to {
		return a, nil
	}
	if !a.Status.Open() {
		return Adoption{}, ErrBadState
	}

	a.Status = to
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Adoption{}, err
	}
	if err := s.releasePet(ctx, a.PetID); err != nil {
		return Adoption{}, err
	}
	metrics.Adoption(string(to))
	return a, nil
}

// releasePet devuelve la mascota a available si quedó pending sin solicitudes abiertas.
func (s *Service) releasePet(ctx context.Context, petID string) error {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return err
	}
	for _, a := range items {
		if a.Status.Open() {
			return nil
		}
	}

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return nil
		}
		return err
	}
	if pet.Status != pets.StatusPending {
		return nil
	}
	if _, err := s.pets.SetStatus(ctx, petID, pets.StatusAvailable); err != nil {
		return fmt.Errorf("release pet: %w", err)
	}
	return nil
}
