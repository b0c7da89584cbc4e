package adoptions

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/form"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// PetOwnerLookup evita importar el servicio de pets en los handlers.
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, petOwners PetOwnerLookup) {
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		// Acciones sobre una mascota
		ar.Route("/pets/{petID}/adoptions", func(pr chi.Router) {
			pr.Post("/", requestAdoptionHandler(svc))
			pr.Get("/", listAdoptionsByPetHandler(svc, petOwners))
		})

		// Creador / adoptante sobre una solicitud
		ar.Route("/adoptions/{adoptionID}", func(ad chi.Router) {
			ad.Post("/approve", approveAdoptionHandler(svc))
			ad.Post("/reject", rejectAdoptionHandler(svc))
			ad.Post("/cancel", cancelAdoptionHandler(svc))
		})

		ar.Get("/me/adoptions", listMyAdoptionsHandler(svc))
	})
}

type requestAdoptionRequest struct {
	Message string `json:"message" validate:"max=1000"`
}

type adoptionResponse struct {
	ID            string     `json:"adoption_id"`
	PetID         string     `json:"pet_id"`
	CreatorUserID string     `json:"creator_user_id"`
	AdopterUserID string     `json:"adopter_user_id"`
	Message       string     `json:"message"`
	Status        Status     `json:"status"`
	AdoptionDate  *time.Time `json:"adoption_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// @Summary  Solicitar adopción
// @Tags     adoptions
// @Accept   json,mpfd
// @Produce  json
// @Param    petID   path     string true  "pet id"
// @Param    message formData string false "mensaje para el dueño"
// @Success  201 {object} adoptionResponse
// @Failure  403 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /api/pets/{petID}/adoptions [post]
func requestAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		vals, err := form.Parse(r)
		if err != nil {
			httpx.WriteMessage(w, http.StatusBadRequest, "invalid body")
			return
		}
		req := requestAdoptionRequest{Message: vals.Get("message")}
		if errs := validation.Struct(req); errs.Any() {
			validation.Write(w, errs)
			return
		}

		a, err := svc.Request(r.Context(), RequestInput{
			PetID:         chi.URLParam(r, "petID"),
			AdopterUserID: claims.UserID,
			Message:       req.Message,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toAdoptionResponse(a))
	}
}

// @Summary  Solicitudes de una mascota (solo dueño)
// @Tags     adoptions
// @Produce  json
// @Param    petID path string true "pet id"
// @Success  200 {array} adoptionResponse
// @Failure  403 {object} map[string]string
// @Router   /api/pets/{petID}/adoptions [get]
func listAdoptionsByPetHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		petID := chi.URLParam(r, "petID")

		ownerID, err := petOwners.OwnerOf(r.Context(), petID)
		if err != nil || strings.TrimSpace(ownerID) == "" {
			httpx.WriteMessage(w, http.StatusNotFound, "Mascota no encontrada")
			return
		}
		if ownerID != claims.UserID {
			logger.FromContext(r.Context(), nil).Warn("403 forbidden: adoptions of someone else's pet", map[string]any{
				"authenticated_user_id": claims.UserID,
				"owner_user_id":         ownerID,
				"pet_id":                petID,
			})
			httpx.WriteMessage(w, http.StatusForbidden, "No autorizado")
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAdoptionResponses(items))
	}
}

// @Summary  Mis adopciones
// @Tags     adoptions
// @Produce  json
// @Param    role query string false "adopter (default) | creator"
// @Success  200 {array} adoptionResponse
// @Router   /api/me/adoptions [get]
func listMyAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		role := Role(strings.TrimSpace(r.URL.Query().Get("role")))
		items, err := svc.ListMine(r.Context(), claims.UserID, role)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				errs := validation.Errors{}
				errs.Add("role", "The selected role is invalid.")
				validation.Write(w, errs)
				return
			}
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAdoptionResponses(items))
	}
}

// @Summary  Aprobar solicitud
// @Tags     adoptions
// @Produce  json
// @Param    adoptionID path string true "adoption id"
// @Success  200 {object} adoptionResponse
// @Failure  409 {object} map[string]string
// @Router   /api/adoptions/{adoptionID}/approve [post]
func approveAdoptionHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Approve)
}

// @Summary  Rechazar solicitud
// @Tags     adoptions
// @Produce  json
// @Param    adoptionID path string true "adoption id"
// @Success  200 {object} adoptionResponse
// @Router   /api/adoptions/{adoptionID}/reject [post]
func rejectAdoptionHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Reject)
}

// @Summary  Cancelar solicitud propia
// @Tags     adoptions
// @Produce  json
// @Param    adoptionID path string true "adoption id"
// @Success  200 {object} adoptionResponse
// @Router   /api/adoptions/{adoptionID}/cancel [post]
func cancelAdoptionHandler(svc *Service) http.HandlerFunc {
	return transitionHandler(svc.Cancel)
}

type transition func(ctx context.Context, adoptionID, actorUserID string) (Adoption, error)

func transitionHandler(fn transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		a, err := fn(r.Context(), chi.URLParam(r, "adoptionID"), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAdoptionResponse(a))
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.WriteMessage(w, http.StatusForbidden, "No autorizado")
	case errors.Is(err, ErrPetNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "Mascota no encontrada")
	case errors.Is(err, ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "Adopción no encontrada")
	case errors.Is(err, ErrBadState):
		httpx.WriteMessage(w, http.StatusConflict, "La solicitud no admite esta acción")
	default:
		logger.FromContext(r.Context(), nil).Error("adoption request failed", map[string]any{"error": err})
		httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
	}
}

func toAdoptionResponses(items []Adoption) []adoptionResponse {
	out := make([]adoptionResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAdoptionResponse(a))
	}
	return out
}

func toAdoptionResponse(a Adoption) adoptionResponse {
	return adoptionResponse{
		ID:            a.ID,
		PetID:         a.PetID,
		CreatorUserID: a.CreatorUserID,
		AdopterUserID: a.AdopterUserID,
		Message:       a.Message,
		Status:        a.Status,
		AdoptionDate:  a.AdoptionDate,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
