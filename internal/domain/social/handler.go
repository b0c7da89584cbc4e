package social

import (
	"errors"
	"net/http"

	"pet-adoption/internal/domain/sessions"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, web *sessions.Web) {
	r.Route("/auth/{provider}", func(ar chi.Router) {
		ar.Get("/redirect", redirectHandler(svc))
		ar.Get("/callback", callbackHandler(svc, web))
	})
}

type redirectResponse struct {
	URL string `json:"url"`
}

type loginResponse struct {
	Message string         `json:"message"`
	User    users.Response `json:"user"`
	Token   string         `json:"token,omitempty"`
}

// @Summary  URL de consentimiento del proveedor
// @Tags     social
// @Produce  json
// @Param    provider path string true "google | facebook | github"
// @Success  200 {object} redirectResponse
// @Failure  404 {object} map[string]string
// @Router   /api/auth/{provider}/redirect [get]
func redirectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		log := logger.FromContext(r.Context(), nil).With(map[string]any{"provider": provider})
		log.Debug("iniciando redirección", nil)

		url, err := svc.RedirectURL(provider)
		if err != nil {
			if errors.Is(err, ErrUnknownProvider) {
				httpx.WriteError(w, http.StatusNotFound, "Proveedor no soportado: "+provider)
				return
			}
			log.Error("error al redirigir", map[string]any{"error": err})
			httpx.WriteError(w, http.StatusInternalServerError, "No se pudo redirigir a "+provider)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, redirectResponse{URL: url})
	}
}

// @Summary  Callback OAuth: inicia sesión con una cuenta existente
// @Tags     social
// @Produce  json
// @Param    provider path  string true "google | facebook | github"
// @Param    code     query string true "authorization code"
// @Success  200 {object} loginResponse
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /api/auth/{provider}/callback [get]
func callbackHandler(svc *Service, web *sessions.Web) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		log := logger.FromContext(r.Context(), nil).With(map[string]any{"provider": provider})

		u, err := svc.Callback(r.Context(), provider, r.URL.Query().Get("code"))
		if err != nil {
			if !errors.Is(err, ErrUnknownProvider) {
				metrics.Login(provider, false)
			}
			switch {
			case errors.Is(err, ErrUnknownProvider):
				httpx.WriteError(w, http.StatusNotFound, "Proveedor no soportado: "+provider)
			case errors.Is(err, ErrNoEmail):
				log.Warn("el proveedor no devolvió email", nil)
				httpx.WriteError(w, http.StatusBadRequest, "El proveedor no devolvió un correo electrónico")
			case errors.Is(err, ErrNoAccount):
				log.Warn("usuario no encontrado para el email del proveedor", nil)
				httpx.WriteError(w, http.StatusNotFound, "No encontramos una cuenta con este correo. Por favor, regístrate primero.")
			case errors.Is(err, ErrMissingCode), errors.Is(err, ErrProviderClient):
				log.Error("error de cliente en callback", map[string]any{"error": err})
				httpx.WriteError(w, http.StatusBadRequest, "Error de cliente con "+provider)
			default:
				log.Error("error en callback", map[string]any{"error": err})
				httpx.WriteError(w, http.StatusInternalServerError, "No se pudo iniciar sesión con "+provider)
			}
			return
		}

		_, token, err := web.Login(r.Context(), w, r, u.ID, u.Email)
		if err != nil {
			log.Error("start session failed", map[string]any{"error": err, "user_id": u.ID})
			httpx.WriteError(w, http.StatusInternalServerError, "No se pudo iniciar sesión con "+provider)
			return
		}

		metrics.Login(provider, true)
		log.Info("usuario autenticado", map[string]any{"user_id": u.ID})
		httpx.WriteJSON(w, http.StatusOK, loginResponse{
			Message: "Login exitoso con " + provider,
			User:    users.ToResponse(u),
			Token:   token,
		})
	}
}
