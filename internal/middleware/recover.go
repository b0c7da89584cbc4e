package middleware

import (
	"net/http"
	"runtime/debug"

	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/platform/logger"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con el logger del request
// y responde 500 en JSON (el frontend siempre espera JSON).
func Recover(base logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.FromContext(r.Context(), base).Error("panic recovered", map[string]any{
					"panic": rec,
					"stack": string(debug.Stack()),
					"path":  r.URL.Path,
				})
				httpx.WriteMessage(w, http.StatusInternalServerError, "Server Error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
