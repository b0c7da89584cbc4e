package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-adoption/internal/platform/httpx"
	"pet-adoption/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader solo se acepta con AuthOptions.DevHeader (AUTH_DEV_HEADER=true).
const DebugUserHeader = "X-Debug-User-ID"

type AuthOptions struct {
	// Verifier valida tokens Bearer. Puede ser nil.
	Verifier auth.AuthVerifier
	// Sessions resuelve la cookie de sesión. Puede ser nil.
	Sessions   auth.SessionResolver
	CookieName string
	DevHeader  bool
}

// AuthContext:
// - DevHeader => si viene X-Debug-User-ID, setea claims sin verificar.
// - Bearer token => Verify() y setea claims.
// - Cookie de sesión => ResolveClaims() y setea claims.
// - Si no hay claims, el request sigue igual; RequireAuth decide el 401.
func AuthContext(opts AuthOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := resolveClaims(r, opts); ok {
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveClaims(r *http.Request, opts AuthOptions) (auth.Claims, bool) {
	if opts.DevHeader {
		if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
			return auth.Claims{UserID: uid, Via: auth.ViaDebug}, true
		}
	}

	if opts.Verifier != nil {
		if token := bearerToken(r.Header.Get("Authorization")); token != "" {
			claims, err := opts.Verifier.Verify(r.Context(), token)
			if err != nil {
				// Token inválido: no caemos a la cookie, el request queda anónimo.
				return auth.Claims{}, false
			}
			claims.Via = auth.ViaBearer
			return claims, true
		}
	}

	if opts.Sessions != nil && opts.CookieName != "" {
		c, err := r.Cookie(opts.CookieName)
		if err != nil || strings.TrimSpace(c.Value) == "" {
			return auth.Claims{}, false
		}
		claims, err := opts.Sessions.ResolveClaims(r.Context(), c.Value)
		if err != nil {
			return auth.Claims{}, false
		}
		claims.Via = auth.ViaCookie
		return claims, true
	}

	return auth.Claims{}, false
}

// RequireAuth corta con 401 si no hay usuario autenticado.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
