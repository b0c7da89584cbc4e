package pets

import (
	"context"
	"errors"
	"io"
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

// UserDirectory resuelve los dueños para embeberlos como "user".
type UserDirectory interface {
	GetMany(ctx context.Context, ids []string) (map[string]users.User, error)
}

func RegisterRoutes(r chi.Router, svc *Service, dir UserDirectory) {
	r.Route("/pets", func(pr chi.Router) {
		// Públicos
		pr.Get("/", listPetsHandler(svc, dir))
		pr.Get("/{petID}", getPetHandler(svc, dir))

		// Dueño
		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAuth)
			ar.Post("/", createPetHandler(svc))
			ar.Put("/{petID}", updatePetHandler(svc))
			ar.Delete("/{petID}", deletePetHandler(svc))
		})
	})

	r.With(middleware.RequireAuth).Get("/me/pets", listMyPetsHandler(svc))
}

// petRequest solo existe para validar (los valores llegan como multipart o JSON).
type petRequest struct {
	PetName         string `json:"pet_name" validate:"required,max=255"`
	Location        string `json:"location" validate:"required,max=255"`
	PetSpecies      string `json:"pet_species" validate:"required,max=255"`
	Castrated       string `json:"castrated" validate:"required"`
	Description     string `json:"description"`
	HealthCondition string `json:"health_condition"`
}

type petResponse struct {
	PetID           string          `json:"pet_id"`
	PetName         string          `json:"pet_name"`
	Location        string          `json:"location"`
	Description     string          `json:"description"`
	PetSpecies      string          `json:"pet_species"`
	PetStatus       Status          `json:"pet_status"`
	HealthCondition string          `json:"health_condition"`
	Castrated       bool            `json:"castrated"`
	PetPhoto        *string         `json:"pet_photo"`
	UserID          string          `json:"user_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	User            *users.Response `json:"user,omitempty"`
}

// @Summary  Listar mascotas disponibles
// @Tags     pets
// @Produce  json
// @Param    pet_species query string false "especie (exacta)"
// @Param    location    query string false "ubicación (contiene)"
// @Success  200 {array} petResponse
// @Router   /api/pets [get]
func listPetsHandler(svc *Service, dir UserDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.ListAvailable(r.Context(), ListFilter{
			Species:  q.Get("pet_species"),
			Location: q.Get("location"),
		})
		if err != nil {
			logger.FromContext(r.Context(), nil).Error("list pets failed", map[string]any{"error": err})
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

// @Summary  Ver mascota
// @Tags     pets
// @Produce  json
// @Param    petID path string true "pet id"
// @Success  200 {object} petResponse
// @Failure  404 {object} map[string]string
// @Router   /api/pets/{petID} [get]
func getPetHandler(svc *Service, dir UserDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeLookupError(w, err)
			return
		}

		out, err := withOwners(r.Context(), dir, []Pet{p})
		if err != nil {
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out[0])
	}
}

// @Summary  Publicar mascota
// @Tags     pets
// @Accept   mpfd,json
// @Produce  json
// @Param    pet_name         formData string true  "nombre"
// @Param    location         formData string true  "ubicación"
// @Param    pet_species      formData string true  "especie"
// @Param    castrated        formData string true  "castrado (true/false/1/0)"
// @Param    description      formData string false "descripción"
// @Param    health_condition formData string false "estado de salud"
// @Param    pet_photo        formData file   false "foto (máx 2048 KB)"
// @Success  201 {object} petResponse
// @Failure  401 {object} map[string]string
// @Failure  422 {object} map[string]any
// @Router   /api/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		in, closer, errs, err := readPetForm(r)
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
			logger.FromContext(r.Context(), nil).Error("error al crear mascota", map[string]any{
				"error":   err,
				"user_id": claims.UserID,
			})
			httpx.WriteMessage(w, http.StatusInternalServerError, "Error al crear la mascota: "+err.Error())
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(p, nil))
	}
}

// updatePetHandler: primero dueño (403), después validación (422). Acepta POST ?_method=PUT.
//
// @Summary  Editar mascota
// @Tags     pets
// @Accept   mpfd,json
// @Produce  json
// @Param    petID path string true "pet id"
// @Success  200 {object} petResponse
// @Failure  403 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Failure  422 {object} map[string]any
// @Router   /api/pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		petID := chi.URLParam(r, "petID")

		if current, err := svc.Authorize(r.Context(), petID, claims.UserID); err != nil {
			if errors.Is(err, ErrForbidden) {
				warnOwnership(r, "update", claims.UserID, current)
				httpx.WriteMessage(w, http.StatusForbidden, "No autorizado para editar esta mascota")
				return
			}
			writeLookupError(w, err)
			return
		}

		in, closer, errs, err := readPetForm(r)
		if err != nil {
			httpx.WriteMessage(w, http.StatusBadRequest, "invalid body")
			return
		}
		defer closer()
		if errs.Any() {
			validation.Write(w, errs)
			return
		}

		p, err := svc.Update(r.Context(), petID, claims.UserID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				httpx.WriteMessage(w, http.StatusForbidden, "No autorizado para editar esta mascota")
			case errors.Is(err, ErrNotFound):
				writeLookupError(w, err)
			default:
				logger.FromContext(r.Context(), nil).Error("error al actualizar mascota", map[string]any{"error": err, "pet_id": petID})
				httpx.WriteMessage(w, http.StatusInternalServerError, "Error al actualizar la mascota")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p, nil))
	}
}

// @Summary  Eliminar mascota
// @Tags     pets
// @Produce  json
// @Param    petID path string true "pet id"
// @Success  200 {object} map[string]string
// @Failure  403 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /api/pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		petID := chi.URLParam(r, "petID")

		if current, err := svc.Authorize(r.Context(), petID, claims.UserID); err != nil {
			if errors.Is(err, ErrForbidden) {
				warnOwnership(r, "delete", claims.UserID, current)
				httpx.WriteMessage(w, http.StatusForbidden, "No autorizado para eliminar esta mascota")
				return
			}
			writeLookupError(w, err)
			return
		}

		if err := svc.Delete(r.Context(), petID, claims.UserID); err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				httpx.WriteMessage(w, http.StatusForbidden, "No autorizado para eliminar esta mascota")
			case errors.Is(err, ErrNotFound):
				writeLookupError(w, err)
			default:
				logger.FromContext(r.Context(), nil).Error("error al eliminar mascota", map[string]any{"error": err, "pet_id": petID})
				httpx.WriteMessage(w, http.StatusInternalServerError, "Error al eliminar la mascota")
			}
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Mascota eliminada con éxito")
	}
}

// @Summary  Mis mascotas publicadas (cualquier estado)
// @Tags     pets
// @Produce  json
// @Success  200 {array} petResponse
// @Router   /api/me/pets [get]
func listMyPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p, nil))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// readPetForm parsea y valida el cuerpo. closer cierra la foto abierta (si hubo).
func readPetForm(r *http.Request) (Input, func(), validation.Errors, error) {
	noop := func() {}

	vals, err := form.Parse(r)
	if err != nil {
		return Input{}, noop, nil, err
	}

	req := petRequest{
		PetName:         strings.TrimSpace(vals.Get("pet_name")),
		Location:        strings.TrimSpace(vals.Get("location")),
		PetSpecies:      strings.TrimSpace(vals.Get("pet_species")),
		Castrated:       strings.TrimSpace(vals.Get("castrated")),
		Description:     vals.Get("description"),
		HealthCondition: vals.Get("health_condition"),
	}
	errs := validation.Struct(req)
	if errs == nil {
		errs = validation.Errors{}
	}

	in := Input{
		Name:            req.PetName,
		Location:        req.Location,
		Species:         req.PetSpecies,
		Description:     req.Description,
		HealthCondition: req.HealthCondition,
		Castrated:       validation.ParseBool(req.Castrated),
	}

	closer := noop
	if fh := vals.File("pet_photo"); fh != nil {
		f, err := media.OpenImage(fh)
		if err != nil {
			errs.Add("pet_photo", validation.PhotoError("pet_photo", err))
		} else {
			closer = func() { _ = f.Close() }
			in.Photo = &media.Upload{Filename: fh.Filename, Body: io.Reader(f)}
		}
	}

	if errs.Any() {
		closer()
		return Input{}, noop, errs, nil
	}
	return in, closer, nil, nil
}

func withOwners(ctx context.Context, dir UserDirectory, items []Pet) ([]petResponse, error) {
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

	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		var owner *users.Response
		if u, ok := owners[p.OwnerUserID]; ok {
			resp := users.ToResponse(u)
			owner = &resp
		}
		out = append(out, toPetResponse(p, owner))
	}
	return out, nil
}

func toPetResponse(p Pet, owner *users.Response) petResponse {
	return petResponse{
		PetID:           p.ID,
		PetName:         p.Name,
		Location:        p.Location,
		Description:     p.Description,
		PetSpecies:      p.Species,
		PetStatus:       p.Status,
		HealthCondition: p.HealthCondition,
		Castrated:       p.Castrated,
		PetPhoto:        p.PhotoURL,
		UserID:          p.OwnerUserID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		User:            owner,
	}
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.WriteMessage(w, http.StatusNotFound, "Mascota no encontrada")
		return
	}
	httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
}

func warnOwnership(r *http.Request, action, userID string, p Pet) {
	logger.FromContext(r.Context(), nil).Warn("403 forbidden: user id mismatch for pet "+action, map[string]any{
		"authenticated_user_id": userID,
		"owner_user_id":         p.OwnerUserID,
		"pet_id":                p.ID,
	})
}
