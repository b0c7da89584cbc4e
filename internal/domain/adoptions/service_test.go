package adoptions

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"pet-adoption/internal/domain/pets"
)

// -------------------------
// Test repo + catálogo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Adoption
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Adoption{}}
}

func (r *testRepo) Create(ctx context.Context, a Adoption) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Adoption) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Adoption, error) {
	a, ok := r.byID[id]
	if !ok {
		return Adoption{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) filter(keep func(Adoption) bool) []Adoption {
	out := make([]Adoption, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Adoption, error) {
	return r.filter(func(a Adoption) bool { return a.PetID == petID }), nil
}

func (r *testRepo) ListByAdopter(ctx context.Context, adopterUserID string) ([]Adoption, error) {
	return r.filter(func(a Adoption) bool { return a.AdopterUserID == adopterUserID }), nil
}

func (r *testRepo) ListByCreator(ctx context.Context, creatorUserID string) ([]Adoption, error) {
	return r.filter(func(a Adoption) bool { return a.CreatorUserID == creatorUserID }), nil
}

func (r *testRepo) DeleteByPet(ctx context.Context, petID string) (int, error) {
	n := 0
	for id, a := range r.byID {
		if a.PetID == petID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

type testCatalog struct {
	byID map[string]pets.Pet
}

func (c *testCatalog) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	p, ok := c.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (c *testCatalog) SetStatus(ctx context.Context, petID string, status pets.Status) (pets.Pet, error) {
	p, ok := c.byID[petID]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	p.Status = status
	c.byID[petID] = p
	return p, nil
}

func newTestService(t *testing.T) (*Service, *testRepo, *testCatalog) {
	t.Helper()

	repo := newTestRepo()
	catalog := &testCatalog{byID: map[string]pets.Pet{
		"pet-1": {ID: "pet-1", OwnerUserID: "owner-1", Name: "Luna", Status: pets.StatusAvailable},
		"pet-2": {ID: "pet-2", OwnerUserID: "owner-1", Name: "Tom", Status: pets.StatusAdopted},
	}}
	svc := NewService(repo, catalog)

	// reloj que avanza 1s por llamada, para que el orden sea estable
	base := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc, repo, catalog
}

func mustRequest(t *testing.T, svc *Service, petID, adopterID string) Adoption {
	t.Helper()
	a, err := svc.Request(context.Background(), RequestInput{PetID: petID, AdopterUserID: adopterID, Message: "hola"})
	if err != nil {
		t.Fatalf("Request(%s, %s) returned error: %v", petID, adopterID, err)
	}
	return a
}

// -------------------------
// Tests
// -------------------------

func TestService_Request_MarksPetPending(t *testing.T) {
	svc, _, catalog := newTestService(t)

	a := mustRequest(t, svc, "pet-1", "adopter-1")

	if a.Status != StatusRequested {
		t.Fatalf("expected status requested, got %s", a.Status)
	}
	if a.CreatorUserID != "owner-1" {
		t.Fatalf("expected creator owner-1, got %s", a.CreatorUserID)
	}
	if a.AdoptionDate != nil {
		t.Fatalf("expected no adoption date before approval")
	}
	if got := catalog.byID["pet-1"].Status; got != pets.StatusPending {
		t.Fatalf("expected pet pending, got %s", got)
	}
}

func TestService_Request_OwnerCannotAdoptOwnPet(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Request(context.Background(), RequestInput{PetID: "pet-1", AdopterUserID: "owner-1"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Request_AdoptedPetIsConflict(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Request(context.Background(), RequestInput{PetID: "pet-2", AdopterUserID: "adopter-1"})
	if !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState, got %v", err)
	}
}

func TestService_Request_UnknownPet(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Request(context.Background(), RequestInput{PetID: "nope", AdopterUserID: "adopter-1"})
	if !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
}

func TestService_Request_DedupsOpenRequest(t *testing.T) {
	svc, repo, _ := newTestService(t)

	first := mustRequest(t, svc, "pet-1", "adopter-1")
	second, err := svc.Request(context.Background(), RequestInput{PetID: "pet-1", AdopterUserID: "adopter-1", Message: "sigo interesada"})
	if err != nil {
		t.Fatalf("second Request returned error: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected same adoption id, got %s vs %s", second.ID, first.ID)
	}
	if second.Message != "sigo interesada" {
		t.Fatalf("expected message updated, got %q", second.Message)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 adoption stored, got %d", len(repo.byID))
	}
}

func TestService_Approve_RejectsSiblingsAndAdoptsPet(t *testing.T) {
	svc, repo, catalog := newTestService(t)
	ctx := context.Background()

	winner := mustRequest(t, svc, "pet-1", "adopter-1")
	loser := mustRequest(t, svc, "pet-1", "adopter-2")

	got, err := svc.Approve(ctx, winner.ID, "owner-1")
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if got.Status != StatusApproved || got.AdoptionDate == nil {
		t.Fatalf("expected approved with adoption date, got %#v", got)
	}
	if s := repo.byID[loser.ID].Status; s != StatusRejected {
		t.Fatalf("expected sibling rejected, got %s", s)
	}
	if s := catalog.byID["pet-1"].Status; s != pets.StatusAdopted {
		t.Fatalf("expected pet adopted, got %s", s)
	}

	// Idempotente
	again, err := svc.Approve(ctx, winner.ID, "owner-1")
	if err != nil {
		t.Fatalf("second Approve returned error: %v", err)
	}
	if !again.AdoptionDate.Equal(*got.AdoptionDate) {
		t.Fatalf("expected adoption date unchanged on idempotent approve")
	}

	// Un rechazado no se puede aprobar
	if _, err := svc.Approve(ctx, loser.ID, "owner-1"); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState approving rejected, got %v", err)
	}
}

func TestService_Approve_OnlyCreator(t *testing.T) {
	svc, _, _ := newTestService(t)

	a := mustRequest(t, svc, "pet-1", "adopter-1")
	if _, err := svc.Approve(context.Background(), a.ID, "adopter-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Reject_LastOpenRequestReleasesPet(t *testing.T) {
	svc, _, catalog := newTestService(t)
	ctx := context.Background()

	a := mustRequest(t, svc, "pet-1", "adopter-1")
	b := mustRequest(t, svc, "pet-1", "adopter-2")

	if _, err := svc.Reject(ctx, a.ID, "owner-1"); err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if s := catalog.byID["pet-1"].Status; s != pets.StatusPending {
		t.Fatalf("expected pet still pending with one open request, got %s", s)
	}

	if _, err := svc.Cancel(ctx, b.ID, "adopter-2"); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if s := catalog.byID["pet-1"].Status; s != pets.StatusAvailable {
		t.Fatalf("expected pet available again, got %s", s)
	}
}

func TestService_Cancel_OnlyAdopter(t *testing.T) {
	svc, _, _ := newTestService(t)

	a := mustRequest(t, svc, "pet-1", "adopter-1")
	if _, err := svc.Cancel(context.Background(), a.ID, "owner-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Cancel_ApprovedIsBadState(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	a := mustRequest(t, svc, "pet-1", "adopter-1")
	if _, err := svc.Approve(ctx, a.ID, "owner-1"); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if _, err := svc.Cancel(ctx, a.ID, "adopter-1"); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState, got %v", err)
	}
}

func TestService_ListMine_ByRole(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	mustRequest(t, svc, "pet-1", "adopter-1")

	mine, err := svc.ListMine(ctx, "adopter-1", "")
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected 1 adoption as adopter, got %d (err=%v)", len(mine), err)
	}
	created, err := svc.ListMine(ctx, "owner-1", RoleCreator)
	if err != nil || len(created) != 1 {
		t.Fatalf("expected 1 adoption as creator, got %d (err=%v)", len(created), err)
	}
	if _, err := svc.ListMine(ctx, "owner-1", Role("admin")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestService_PurgePet(t *testing.T) {
	svc, repo, _ := newTestService(t)

	mustRequest(t, svc, "pet-1", "adopter-1")
	mustRequest(t, svc, "pet-1", "adopter-2")

	if err := svc.PurgePet(context.Background(), "pet-1"); err != nil {
		t.Fatalf("PurgePet returned error: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected no adoptions left, got %d", len(repo.byID))
	}
}
