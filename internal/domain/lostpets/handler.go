package lostpets

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/form"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/validation"
	"pet-adoption/internal/ports/media"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

type UserDirectory interface {
	GetMany(ctx context.Context, ids []string) (map[string]users.User, error)
}

func RegisterRoutes(r chi.Router, svc *Service, dir UserDirectory) {
	r.Route("/lostpets", func(lr chi.Router) {
		lr.Get("/", listLostPetsHandler(svc, dir))
		lr.Get("/{lostPetID}", getLostPetHandler(svc, dir))

		lr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAuth)
			ar.Post("/", createLostPetHandler(svc))
			ar.Put("/{lostPetID}", updateLostPetHandler(svc))
			ar.Delete("/{lostPetID}", deleteLostPetHandler(svc))
		})
	})
}

type lostPetRequest struct {
	PetName     string `json:"pet_name" validate:"max=255"`
	LastSeen    string `json:"last_seen" validate:"max=255"`
	LostDate    string `json:"lost_date" validate:"omitempty,datetime=2006-01-02"`
	PetSpecies  string `json:"pet_species" validate:"required,max=255"`
	Description string `json:"description"`
}

type lostPetResponse struct {
	ID          string          `json:"id"`
	PetName     *string         `json:"pet_name"`
	LastSeen    *string         `json:"last_seen"`
	LostDate    *string         `json:"lost_date"`
	PetSpecies  string          `json:"pet_species"`
	PetPhoto    *string         `json:"pet_photo"`
	Description string          `json:"description"`
	UserID      string          `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	User        *users.Response `json:"user,omitempty"`
}

// @Summary  Listar mascotas perdidas
// @Tags     lostpets
// @Produce  json
// @Success  200 {array} lostPetResponse
// @Router   /api/lostpets [get]
func listLostPetsHandler(svc *Service, dir UserDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			logger.FromContext(r.Context(), nil).Error("list lost pets failed", map[string]any{"error": err})
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		out, err := withOwners(r.Context(), dir, items)
		if err != nil {
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// @Summary  Ver reporte de mascota perdida
// @Tags     lostpets
// @Produce  json
// @Param    lostPetID path string true "id"
// @Success  200 {object} lostPetResponse
// @Failure  404 {object} map[string]string
// @Router   /api/lostpets/{lostPetID} [get]
func getLostPetHandler(svc *Service, dir UserDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "lostPetID"))
		if err != nil {
			writeLookupError(w, err)
			return
		}
		out, err := withOwners(r.Context(), dir, []LostPet{p})
		if err != nil {
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out[0])
	}
}

// @Summary  Reportar mascota perdida
// @Tags     lostpets
// @Accept   mpfd,json
// @Produce  json
// @Param    pet_species formData string true  "especie"
// @Param    pet_name    formData string false "nombre"
// @Param    last_seen   formData string false "último lugar visto"
// @Param    lost_date   formData string false "fecha (YYYY-MM-DD)"
// @Param    description formData string false "descripción"
// @Param    pet_photo   formData file   false "foto (máx 2048 KB)"
// @Success  201 {object} lostPetResponse
// @Failure  422 {object} map[string]any
// @Router   /api/lostpets [post]
func createLostPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		in, closer, errs, err := readLostPetForm(r)
		if err != nil {
			httpx.WriteMessage(w, http.StatusBadRequest, "invalid body")
			return
		}
		defer closer()
		if errs.Any() {
			validation.Write(w, errs)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			logger.FromContext(r.Context(), nil).Error("error al registrar la publicación", map[string]any{"error": err, "user_id": claims.UserID})
			httpx.WriteJSON(w, http.StatusInternalServerError, map[string]string{
				"message": "Error al registrar la publicación",
				"error":   err.Error(),
			})
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toLostPetResponse(p, nil))
	}
}

// @Summary  Editar reporte
// @Tags     lostpets
// @Accept   mpfd,json
// @Produce  json
// @Param    lostPetID path string true "id"
// @Success  200 {object} lostPetResponse
// @Failure  403 {object} map[string]string
// @Failure  422 {object} map[string]any
// @Router   /api/lostpets/{lostPetID} [put]
func updateLostPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		id := chi.URLParam(r, "lostPetID")

		if current, err := svc.Authorize(r.Context(), id, claims.UserID); err != nil {
			if errors.Is(err, ErrForbidden) {
				warnOwnership(r, "update", claims.UserID, current)
				httpx.WriteMessage(w, http.StatusForbidden, "No autorizado para editar esta mascota perdida")
				return
			}
			writeLookupError(w, err)
			return
		}

		in, closer, errs, err := readLostPetForm(r)
		if err != nil {
			httpx.WriteMessage(w, http.StatusBadRequest, "invalid body")
			return
		}
		defer closer()
		if errs.Any() {
			validation.Write(w, errs)
			return
		}

		p, err := svc.Update(r.Context(), id, claims.UserID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				httpx.WriteMessage(w, http.StatusForbidden, "No autorizado para editar esta mascota perdida")
			case errors.Is(err, ErrNotFound):
				writeLookupError(w, err)
			default:
				logger.FromContext(r.Context(), nil).Error("error al actualizar la publicación", map[string]any{"error": err, "lost_pet_id": id})
				httpx.WriteMessage(w, http.StatusInternalServerError, "Error al actualizar la publicación")
			}
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toLostPetResponse(p, nil))
	}
}

// @Summary  Eliminar reporte
// @Tags     lostpets
// @Produce  json
// @Param    lostPetID path string true "id"
// @Success  200 {object} map[string]string
// @Failure  403 {object} map[string]string
// @Router   /api/lostpets/{lostPetID} [delete]
func deleteLostPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		id := chi.URLParam(r, "lostPetID")

		if current, err := svc.Authorize(r.Context(), id, claims.UserID); err != nil {
			if errors.Is(err, ErrForbidden) {
				warnOwnership(r, "delete", claims.UserID, current)
				httpx.WriteMessage(w, http.StatusForbidden, "No autorizado")
				return
			}
			writeLookupError(w, err)
			return
		}

		if err := svc.Delete(r.Context(), id, claims.UserID); err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				httpx.WriteMessage(w, http.StatusForbidden, "No autorizado")
			case errors.Is(err, ErrNotFound):
				writeLookupError(w, err)
			default:
				logger.FromContext(r.Context(), nil).Error("error al eliminar la publicación", map[string]any{"error": err, "lost_pet_id": id})
				httpx.WriteMessage(w, http.StatusInternalServerError, "Error al eliminar la mascota")
			}
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Publicación eliminada con éxito")
	}
}

func readLostPetForm(r *http.Request) (Input, func(), validation.Errors, error) {
	noop := func() {}

	vals, err := form.Parse(r)
	if err != nil {
		return Input{}, noop, nil, err
	}

	req := lostPetRequest{
		PetName:     strings.TrimSpace(vals.Get("pet_name")),
		LastSeen:    strings.TrimSpace(vals.Get("last_seen")),
		LostDate:    strings.TrimSpace(vals.Get("lost_date")),
		PetSpecies:  strings.TrimSpace(vals.Get("pet_species")),
		Description: vals.Get("description"),
	}
	errs := validation.Struct(req)
	if errs == nil {
		errs = validation.Errors{}
	}

	in := Input{
		Name:        req.PetName,
		LastSeen:    req.LastSeen,
		Species:     req.PetSpecies,
		Description: req.Description,
	}
	if req.LostDate != "" {
		if d, err := time.Parse(dateLayout, req.LostDate); err == nil {
			in.LostDate = &d
		}
	}

	closer := noop
	if fh := vals.File("pet_photo"); fh != nil {
		f, err := media.OpenImage(fh)
		if err != nil {
			errs.Add("pet_photo", validation.PhotoError("pet_photo", err))
		} else {
			closer = func() { _ = f.Close() }
			in.Photo = &media.Upload{Filename: fh.Filename, Body: f}
		}
	}

	if errs.Any() {
		closer()
		return Input{}, noop, errs, nil
	}
	return in, closer, nil, nil
}

func withOwners(ctx context.Context, dir UserDirectory, items []LostPet) ([]lostPetResponse, error) {
	ids := make([]string, 0, len(items))
	seen := map[string]struct{}{}
	for _, p := range items {
		if _, ok := seen[p.OwnerUserID]; ok {
			continue
		}
		seen[p.OwnerUserID] = struct{}{}
		ids = append(ids, p.OwnerUserID)
	}

	owners, err := dir.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]lostPetResponse, 0, len(items))
	for _, p := range items {
		var owner *users.Response
		if u, ok := owners[p.OwnerUserID]; ok {
			resp := users.ToResponse(u)
			owner = &resp
		}
		out = append(out, toLostPetResponse(p, owner))
	}
	return out, nil
}

func toLostPetResponse(p LostPet, owner *users.Response) lostPetResponse {
	var lostDate *string
	if p.LostDate != nil {
		d := p.LostDate.Format(dateLayout)
		lostDate = &d
	}
	return lostPetResponse{
		ID:          p.ID,
		PetName:     nullable(p.Name),
		LastSeen:    nullable(p.LastSeen),
		LostDate:    lostDate,
		PetSpecies:  p.Species,
		PetPhoto:    p.PhotoURL,
		Description: p.Description,
		UserID:      p.OwnerUserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		User:        owner,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.WriteMessage(w, http.StatusNotFound, "Publicación no encontrada")
		return
	}
	httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
}

func warnOwnership(r *http.Request, action, userID string, p LostPet) {
	logger.FromContext(r.Context(), nil).Warn("403 forbidden: user id mismatch for lost pet "+action, map[string]any{
		"authenticated_user_id": userID,
		"owner_user_id":         p.OwnerUserID,
		"lost_pet_id":           p.ID,
	})
}
