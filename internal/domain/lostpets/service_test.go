package lostpets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pet-adoption/internal/ports/media"
)

type testRepo struct {
	byID map[string]LostPet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]LostPet{}}
}

func (r *testRepo) Create(ctx context.Context, p LostPet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p LostPet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (LostPet, error) {
	p, ok := r.byID[id]
	if !ok {
		return LostPet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context) ([]LostPet, error) {
	out := make([]LostPet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

type testUploader struct {
	last media.Upload
	err  error
}

func (u *testUploader) Upload(ctx context.Context, in media.Upload) (string, error) {
	u.last = in
	if u.err != nil {
		return "", u.err
	}
	return "https://res.example/" + in.PublicID, nil
}

func TestService_Create_OnlySpeciesRequired(t *testing.T) {
	svc := NewService(newTestRepo(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", Input{Name: "Michi"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without species, got %v", err)
	}

	p, err := svc.Create(ctx, "user-1", Input{Species: " Gato "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Species != "Gato" || p.Name != "" || p.LostDate != nil || p.PhotoURL != nil {
		t.Fatalf("unexpected lost pet %#v", p)
	}
}

func TestService_Create_PhotoPublicID(t *testing.T) {
	up := &testUploader{}
	svc := NewService(newTestRepo(), up)
	base := time.Date(2025, 12, 20, 18, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	lost := base.AddDate(0, 0, -2)
	p, err := svc.Create(context.Background(), "user-1", Input{
		Species:  "Perro",
		LostDate: &lost,
		Photo:    &media.Upload{Filename: "rex.png", Body: strings.NewReader("png")},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if up.last.Folder != "lost_pets" {
		t.Fatalf("expected lost_pets folder, got %q", up.last.Folder)
	}
	if !strings.HasPrefix(up.last.PublicID, "lost_1766255400_") || len(up.last.PublicID) != len("lost_1766255400_")+8 {
		t.Fatalf("unexpected public id %q", up.last.PublicID)
	}
	if p.PhotoURL == nil || *p.PhotoURL != "https://res.example/"+up.last.PublicID {
		t.Fatalf("unexpected photo url %v", p.PhotoURL)
	}
	if p.LostDate == nil || !p.LostDate.Equal(lost) {
		t.Fatalf("expected lost date kept")
	}
}

func TestService_PhotoPublicIDsDifferWithinSameSecond(t *testing.T) {
	up := &testUploader{}
	svc := NewService(newTestRepo(), up)
	base := time.Date(2025, 12, 20, 18, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), "user-1", Input{
			Species: "Gato",
			Photo:   &media.Upload{Filename: "michi.png", Body: strings.NewReader("png")},
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if seen[up.last.PublicID] {
			t.Fatalf("public id %q reused", up.last.PublicID)
		}
		seen[up.last.PublicID] = true
	}
}

func TestService_Create_UploadErrorAborts(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &testUploader{err: errors.New("cloud down")})

	_, err := svc.Create(context.Background(), "user-1", Input{
		Species: "Perro",
		Photo:   &media.Upload{Filename: "rex.png", Body: strings.NewReader("png")},
	})
	if err == nil {
		t.Fatalf("expected upload error")
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing stored after failed upload")
	}
}

func TestService_UpdateDelete_OwnerOnly(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, "user-1", Input{Species: "Perro", LastSeen: "Plaza España"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Update(ctx, p.ID, "user-2", Input{Species: "Perro"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on update, got %v", err)
	}
	if _, err := svc.Update(ctx, p.ID, "user-1", Input{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on update without species, got %v", err)
	}

	got, err := svc.Update(ctx, p.ID, "user-1", Input{Species: "Perro", Name: "Rex"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	// El update reemplaza: last_seen no enviado queda vacío
	if got.Name != "Rex" || got.LastSeen != "" {
		t.Fatalf("unexpected update result %#v", got)
	}

	if err := svc.Delete(ctx, p.ID, "user-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
	if err := svc.Delete(ctx, p.ID, "user-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, p.ID, "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
