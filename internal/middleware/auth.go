package middleware

import (
	"context"
	"net/http"

	"app/internal/session"
)

// Injected key type to avoid context collisions
type contextKey string

const SessionContextKey = contextKey("session")

// ClaimsFromContext returns the verified session claims, if any.
func ClaimsFromContext(ctx context.Context) (*session.Claims, bool) {
	claims, ok := ctx.Value(SessionContextKey).(*session.Claims)
	return claims, ok
}

// Session decodes the portal cookie and, when valid, attaches the claims to
// the request context. A missing or malformed cookie is not an error here;
// the request continues unauthenticated and the route guards decide.
func Session(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := sessions.FromRequest(r)
			if err == nil {
				r = r.WithContext(context.WithValue(r.Context(), SessionContextKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser guards API routes: unauthenticated requests get a plain 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin guards admin API routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !claims.IsAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePage guards browser page routes: unauthenticated requests are
// redirected to the login page instead of receiving a structured error.
// When admin is set, non-admin sessions are redirected as well.
func RequirePage(admin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || (admin && !claims.IsAdmin) {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
