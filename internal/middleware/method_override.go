package middleware

import (
	"net/http"
	"strings"
)

// MethodOverride permite POST ...?_method=PUT (multipart desde el navegador).
// Solo se acepta sobre POST y hacia PUT/PATCH/DELETE. Tiene que ir antes del ruteo.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			m := r.URL.Query().Get("_method")
			if m == "" {
				m = r.Header.Get("X-HTTP-Method-Override")
			}
			switch strings.ToUpper(strings.TrimSpace(m)) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodPatch:
				r.Method = http.MethodPatch
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
