package users

import (
	"errors"
	"net/http"
	"strings"

	"pet-adoption/internal/domain/sessions"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/form"
	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta auth/cuenta. limit se aplica a los endpoints que reciben credenciales.
func RegisterRoutes(r chi.Router, svc *Service, resets *PasswordResets, web *sessions.Web, limit func(http.Handler) http.Handler) {
	r.Get("/sanctum/csrf-cookie", csrfCookieHandler(web))

	r.Group(func(pr chi.Router) {
		pr.Use(limit)
		pr.Post("/register", registerHandler(svc))
		pr.Post("/login", loginHandler(svc, web))
		pr.Post("/forgot-password", forgotPasswordHandler(resets))
		pr.Post("/reset-password", resetPasswordHandler(resets))
	})

	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)
		ar.Get("/user", currentUserHandler(svc))
		ar.Put("/user", updateProfileHandler(svc))
		ar.Get("/user/{userID}", getUserHandler(svc))
		ar.Post("/logout", logoutHandler(web))
	})
}

// Response es la forma pública de un usuario (sin password ni timestamps).
// Otros módulos la embeben como "user".
type Response struct {
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name"`
	UserPhone   string  `json:"user_phone"`
	City        string  `json:"city"`
	Email       string  `json:"email"`
	Description *string `json:"description"`
}

func ToResponse(u User) Response {
	var desc *string
	if u.Description != "" {
		d := u.Description
		desc = &d
	}
	return Response{
		UserID:      u.ID,
		UserName:    u.Name,
		UserPhone:   u.Phone,
		City:        u.City,
		Email:       u.Email,
		Description: desc,
	}
}

type registerRequest struct {
	UserName  string `json:"user_name" validate:"required,max=255"`
	UserPhone string `json:"user_phone" validate:"required,max=20"`
	City      string `json:"city" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,maxbytes=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token                string `json:"token" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,maxbytes=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
}

type profileRequest struct {
	UserName  string `json:"user_name" validate:"omitempty,max=255"`
	UserPhone string `json:"user_phone" validate:"omitempty,max=20"`
	City      string `json:"city" validate:"omitempty,max=100"`
}

type authResponse struct {
	Message string   `json:"message"`
	User    Response `json:"user"`
	Token   string   `json:"token,omitempty"`
}

type userEnvelope struct {
	User Response `json:"user"`
}

// registerHandler crea la cuenta. No inicia sesión: el SPA hace login después.
//
// @Summary  Registrar usuario
// @Tags     auth
// @Accept   json,mpfd
// @Produce  json
// @Param    body body registerRequest true "datos de la cuenta"
// @Success  201 {object} authResponse
// @Failure  422 {object} map[string]any
// @Router   /api/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vals, err := form.Parse(r)
		if err != nil {
			httpx.WriteMessage(w, http.StatusBadRequest, "invalid body")
			return
		}

		req := registerRequest{
			UserName:  strings.TrimSpace(vals.Get("user_name")),
			UserPhone: strings.TrimSpace(vals.Get("user_phone")),
			City:      strings.TrimSpace(vals.Get("city")),
			Email:     strings.TrimSpace(vals.Get("email")),
			Password:  vals.Get("password"),
		}
		if errs := validation.Struct(req); errs.Any() {
			validation.Write(w, errs)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.UserName,
			Phone:    req.UserPhone,
			City:     req.City,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				validation.Write(w, validation.Errors{"email": {validation.Taken("email")}})
				return
			}
			logger.FromContext(r.Context(), nil).Error("register failed", map[string]any{"error": err})
			httpx.WriteMessage(w, http.StatusInternalServerError, "Error al registrar")
			return
		}

		metrics.UserRegistered()
		httpx.WriteJSON(w, http.StatusCreated, authResponse{
			Message: "Registro exitoso",
			User:    ToResponse(u),
		})
	}
}

// loginHandler abre sesión (cookie) y además devuelve un token Bearer.
//
// @Summary  Login con email y password
// @Tags     auth
// @Accept   json,mpfd
// @Produce  json
// @Param    body body loginRequest true "credenciales"
// @Success  200 {object} authResponse
// @Failure  401 {object} map[string]string
// @Failure  422 {object} map[string]any
// @Router   /api/login [post]
func loginHandler(svc *Service, web *sessions.Web) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vals, err := form.Parse(r)
		if err != nil {
			httpx.WriteMessage(w, http.StatusBadRequest, "invalid body")
			return
		}

		req := loginRequest{
			Email:    strings.TrimSpace(vals.Get("email")),
			Password: vals.Get("password"),
		}
		if errs := validation.Struct(req); errs.Any() {
			validation.Write(w, errs)
			return
		}

		log := logger.FromContext(r.Context(), nil)

		u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				metrics.Login("password", false)
				httpx.WriteMessage(w, http.StatusUnauthorized, "Credenciales inválidas")
				return
			}
			log.Error("login failed", map[string]any{"error": err})
			httpx.WriteMessage(w, http.StatusInternalServerError, "Error al iniciar sesión")
			return
		}

		_, token, err := web.Login(r.Context(), w, r, u.ID, u.Email)
		if err != nil {
			log.Error("start session failed", map[string]any{"error": err, "user_id": u.ID})
			httpx.WriteMessage(w, http.StatusInternalServerError, "Error al iniciar sesión")
			return
		}

		metrics.Login("password", true)
		log.Info("login exitoso", map[string]any{"user_id": u.ID})
		httpx.WriteJSON(w, http.StatusOK, authResponse{
			Message: "Login exitoso",
			User:    ToResponse(u),
			Token:   token,
		})
	}
}

// @Summary  Emitir cookie XSRF-TOKEN
// @Tags     auth
// @Success  204
// @Router   /api/sanctum/csrf-cookie [get]
func csrfCookieHandler(web *sessions.Web) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := web.IssueXSRF(w); err != nil {
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// @Summary  Usuario autenticado
// @Tags     auth
// @Produce  json
// @Success  200 {object} userEnvelope
// @Failure  401 {object} map[string]string
// @Router   /api/user [get]
func currentUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// sesión de un usuario que ya no existe
				httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, userEnvelope{User: ToResponse(u)})
	}
}

// @Summary  Perfil público de un usuario
// @Tags     auth
// @Produce  json
// @Param    userID path string true "user id"
// @Success  200 {object} userEnvelope
// @Failure  404 {object} map[string]string
// @Router   /api/user/{userID} [get]
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.WriteMessage(w, http.StatusNotFound, "Usuario no encontrado")
				return
			}
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, userEnvelope{User: ToResponse(u)})
	}
}

// updateProfileHandler: solo se tocan los campos enviados.
//
// @Summary  Actualizar mi perfil
// @Tags     auth
// @Accept   json,mpfd
// @Produce  json
// @Success  200 {object} userEnvelope
// @Failure  422 {object} map[string]any
// @Router   /api/user [put]
func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		vals, err := form.Parse(r)
		if err != nil {
			httpx.WriteMessage(w, http.StatusBadRequest, "invalid body")
			return
		}

		req := profileRequest{
			UserName:  strings.TrimSpace(vals.Get("user_name")),
			UserPhone: strings.TrimSpace(vals.Get("user_phone")),
			City:      strings.TrimSpace(vals.Get("city")),
		}
		errs := validation.Struct(req)
		if errs == nil {
			errs = validation.Errors{}
		}
		// Enviado pero vacío cuenta como "required".
		for _, f := range []string{"user_name", "user_phone", "city"} {
			if vals.Has(f) && strings.TrimSpace(vals.Get(f)) == "" {
				errs.Add(f, "The "+strings.ReplaceAll(f, "_", " ")+" field is required.")
			}
		}
		if errs.Any() {
			validation.Write(w, errs)
			return
		}

		in := ProfileInput{
			Name:        present(vals, "user_name"),
			Phone:       present(vals, "user_phone"),
			City:        present(vals, "city"),
			Description: present(vals, "description"),
		}

		u, err := svc.UpdateProfile(r.Context(), claims.UserID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.WriteMessage(w, http.StatusNotFound, "Usuario no encontrado")
			case errors.Is(err, ErrInvalidInput):
				httpx.WriteMessage(w, http.StatusUnprocessableEntity, err.Error())
			default:
				httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			}
			return
		}
		httpx.WriteJSON(w, http.StatusOK, userEnvelope{User: ToResponse(u)})
	}
}

// @Summary  Cerrar sesión
// @Tags     auth
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /api/logout [post]
func logoutHandler(web *sessions.Web) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := web.Logout(r.Context(), w, claims.SessionID); err != nil {
			logger.FromContext(r.Context(), nil).Error("error al cerrar sesión", map[string]any{"error": err})
			httpx.WriteMessage(w, http.StatusInternalServerError, "Error al cerrar sesión")
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Sesión cerrada")
	}
}

// forgotPasswordHandler responde igual exista o no el email.
//
// @Summary  Pedir enlace de restablecimiento
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body forgotPasswordRequest true "email"
// @Success  200 {object} map[string]string
// @Failure  422 {object} map[string]any
// @Router   /api/forgot-password [post]
func forgotPasswordHandler(resets *PasswordResets) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vals, err := form.Parse(r)
		if err != nil {
			httpx.WriteMessage(w, http.StatusBadRequest, "invalid body")
			return
		}

		req := forgotPasswordRequest{Email: strings.TrimSpace(vals.Get("email"))}
		if errs := validation.Struct(req); errs.Any() {
			validation.Write(w, errs)
			return
		}

		log := logger.FromContext(r.Context(), nil)
		if err := resets.RequestReset(r.Context(), req.Email); err != nil {
			log.Error("error al enviar enlace de restablecimiento", map[string]any{"error": err})
			httpx.WriteMessage(w, http.StatusInternalServerError, "Error al enviar enlace de restablecimiento")
			return
		}

		metrics.PasswordReset("requested")
		log.Debug("reset solicitado", map[string]any{"email": req.Email})
		httpx.WriteMessage(w, http.StatusOK, "Enlace de restablecimiento enviado")
	}
}

// resetPasswordHandler: 422 {errors} si falla la validación, 400 {error} si el token no sirve.
//
// @Summary  Restablecer contraseña
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body resetPasswordRequest true "token + nueva clave"
// @Success  200 {object} map[string]string
// @Failure  400 {object} map[string]string
// @Failure  422 {object} map[string]any
// @Router   /api/reset-password [post]
func resetPasswordHandler(resets *PasswordResets) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vals, err := form.Parse(r)
		if err != nil {
			httpx.WriteMessage(w, http.StatusBadRequest, "invalid body")
			return
		}

		req := resetPasswordRequest{
			Token:                strings.TrimSpace(vals.Get("token")),
			Email:                strings.TrimSpace(vals.Get("email")),
			Password:             vals.Get("password"),
			PasswordConfirmation: vals.Get("password_confirmation"),
		}
		if errs := validation.Struct(req); errs.Any() {
			httpx.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
			return
		}

		_, err = resets.Reset(r.Context(), ResetInput{
			Token:    req.Token,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidToken) {
				metrics.PasswordReset("rejected")
				httpx.WriteError(w, http.StatusBadRequest, "No se pudo restablecer la contraseña. El token es inválido o ha expirado.")
				return
			}
			logger.FromContext(r.Context(), nil).Error("reset password failed", map[string]any{"error": err})
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			return
		}

		metrics.PasswordReset("completed")
		httpx.WriteMessage(w, http.StatusOK, "Contraseña restablecida correctamente.")
	}
}

func present(vals form.Values, key string) *string {
	if !vals.Has(key) {
		return nil
	}
	v := vals.Get(key)
	return &v
}
