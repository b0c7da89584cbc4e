package middleware

import (
	"crypto/subtle"
	"net/http"
	"net/url"

	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
)

const (
	XSRFCookie = "XSRF-TOKEN"
	XSRFHeader = "X-XSRF-TOKEN"
)

// CSRF aplica double-submit solo a requests autenticados por cookie:
// el header X-XSRF-TOKEN debe coincidir con la cookie XSRF-TOKEN.
// Bearer y dev header no llevan cookie ambiente, así que no aplica.
func CSRF(base logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			claims, ok := GetClaims(r.Context())
			if !ok || claims.Via != auth.ViaCookie {
				next.ServeHTTP(w, r)
				return
			}

			if !xsrfMatches(r) {
				logger.FromContext(r.Context(), base).Warn("csrf token mismatch", map[string]any{
					"authenticated_user_id": claims.UserID,
					"path":                  r.URL.Path,
				})
				httpx.WriteMessage(w, http.StatusForbidden, "CSRF token mismatch.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func xsrfMatches(r *http.Request) bool {
	c, err := r.Cookie(XSRFCookie)
	if err != nil || c.Value == "" {
		return false
	}
	header := r.Header.Get(XSRFHeader)
	if header == "" {
		return false
	}
	// axios manda el valor de la cookie decodificado; aceptamos ambas formas.
	cookieVal := c.Value
	if dec, err := url.QueryUnescape(cookieVal); err == nil {
		cookieVal = dec
	}
	if dec, err := url.QueryUnescape(header); err == nil {
		header = dec
	}
	return subtle.ConstantTimeCompare([]byte(cookieVal), []byte(header)) == 1
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
