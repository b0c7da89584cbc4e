package pets_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/ports/media"
)

type recordingUploader struct {
	uploads []media.Upload
}

func (u *recordingUploader) Upload(ctx context.Context, in media.Upload) (string, error) {
	u.uploads = append(u.uploads, in)
	return "https://res.example/" + in.Folder + "/" + in.PublicID + ".jpg", nil
}

func lunaInput() pets.Input {
	return pets.Input{
		Name:      " Luna ",
		Location:  "Córdoba",
		Species:   "Perro",
		Castrated: true,
	}
}

func mustCreate(t *testing.T, svc *pets.Service, owner string, in pets.Input) pets.Pet {
	t.Helper()
	p, err := svc.Create(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return p
}

func TestService_Create_UploadsPhoto(t *testing.T) {
	up := &recordingUploader{}
	svc := pets.NewService(memory.NewPetRepo(), up)

	in := lunaInput()
	in.Photo = &media.Upload{Filename: "luna.jpg", Body: strings.NewReader("jpeg")}
	p := mustCreate(t, svc, "owner-1", in)

	if p.Status != pets.StatusAvailable {
		t.Fatalf("expected available, got %s", p.Status)
	}
	if p.Name != "Luna" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}
	if len(up.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(up.uploads))
	}
	got := up.uploads[0]
	if got.Folder != pets.PhotoFolder || !strings.HasPrefix(got.PublicID, pets.PhotoIDPrefix) {
		t.Fatalf("unexpected upload target %s/%s", got.Folder, got.PublicID)
	}
	if p.PhotoURL == nil || !strings.HasPrefix(*p.PhotoURL, "https://") {
		t.Fatalf("expected secure photo url, got %v", p.PhotoURL)
	}
}

func TestService_Create_DisabledUploaderFails(t *testing.T) {
	svc := pets.NewService(memory.NewPetRepo(), nil)

	in := lunaInput()
	in.Photo = &media.Upload{Filename: "luna.jpg", Body: io.NopCloser(strings.NewReader("jpeg"))}
	_, err := svc.Create(context.Background(), "owner-1", in)
	if !errors.Is(err, media.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	// Sin foto no hace falta el host de medios
	mustCreate(t, svc, "owner-1", lunaInput())
}

func TestService_Create_RequiresFields(t *testing.T) {
	svc := pets.NewService(memory.NewPetRepo(), nil)

	_, err := svc.Create(context.Background(), "owner-1", pets.Input{Name: "Luna", Species: "Perro"})
	if !errors.Is(err, pets.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_OwnerOnlyAndKeepsPhoto(t *testing.T) {
	up := &recordingUploader{}
	svc := pets.NewService(memory.NewPetRepo(), up)
	ctx := context.Background()

	in := lunaInput()
	in.Photo = &media.Upload{Filename: "luna.jpg", Body: strings.NewReader("jpeg")}
	p := mustCreate(t, svc, "owner-1", in)

	if _, err := svc.Update(ctx, p.ID, "other-1", lunaInput()); !errors.Is(err, pets.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	changed := lunaInput()
	changed.Name = "Luna II"
	changed.Castrated = false
	got, err := svc.Update(ctx, p.ID, "owner-1", changed)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Name != "Luna II" || got.Castrated {
		t.Fatalf("update not applied: %#v", got)
	}
	if got.PhotoURL == nil || *got.PhotoURL != *p.PhotoURL {
		t.Fatalf("expected photo kept without new upload")
	}
	if len(up.uploads) != 1 {
		t.Fatalf("expected no extra upload, got %d", len(up.uploads))
	}
}

func TestService_Delete_RunsHooksFirst(t *testing.T) {
	svc := pets.NewService(memory.NewPetRepo(), nil)
	ctx := context.Background()

	p := mustCreate(t, svc, "owner-1", lunaInput())

	fail := true
	var purged []string
	svc.OnDelete(func(ctx context.Context, petID string) error {
		if fail {
			return errors.New("adoptions store down")
		}
		purged = append(purged, petID)
		return nil
	})

	if err := svc.Delete(ctx, p.ID, "owner-1"); err == nil {
		t.Fatalf("expected hook error to abort delete")
	}
	if _, err := svc.GetByID(ctx, p.ID); err != nil {
		t.Fatalf("expected pet still present, got %v", err)
	}

	fail = false
	if err := svc.Delete(ctx, p.ID, "other-1"); !errors.Is(err, pets.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, p.ID, "owner-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(purged) != 1 || purged[0] != p.ID {
		t.Fatalf("expected hook called with %s, got %v", p.ID, purged)
	}
	if _, err := svc.GetByID(ctx, p.ID); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestService_ListAvailable_FiltersAndHidesPending(t *testing.T) {
	svc := pets.NewService(memory.NewPetRepo(), nil)
	ctx := context.Background()

	dog := mustCreate(t, svc, "owner-1", lunaInput())
	cat := mustCreate(t, svc, "owner-1", pets.Input{Name: "Tom", Location: "Rosario", Species: "Gato"})
	pending := mustCreate(t, svc, "owner-2", pets.Input{Name: "Rex", Location: "Córdoba Capital", Species: "perro"})

	if _, err := svc.SetStatus(ctx, pending.ID, pets.StatusPending); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	all, err := svc.ListAvailable(ctx, pets.ListFilter{})
	if err != nil {
		t.Fatalf("ListAvailable returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 available pets, got %d", len(all))
	}

	dogs, _ := svc.ListAvailable(ctx, pets.ListFilter{Species: " PERRO ", Location: "córd"})
	if len(dogs) != 1 || dogs[0].ID != dog.ID {
		t.Fatalf("expected only %s, got %#v", dog.ID, dogs)
	}

	mine, _ := svc.ListByOwner(ctx, "owner-1")
	if len(mine) != 2 || (mine[0].ID != cat.ID && mine[1].ID != cat.ID) {
		t.Fatalf("expected both owner pets, got %#v", mine)
	}

	if _, err := svc.SetStatus(ctx, dog.ID, pets.Status("lost")); !errors.Is(err, pets.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}
