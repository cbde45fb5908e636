package middleware

import (
	"net/http"
	"strings"

	"github.com/crediya/auth/internal/handlers/authctx"
	"github.com/crediya/auth/internal/handlers/render"
	"github.com/crediya/auth/internal/models"
)

// BearerPrefix is the only accepted Authorization scheme
const BearerPrefix = "Bearer "

type authenticator interface {
	// Validate a bearer access token and build the calling principal
	Authenticate(accessToken string) (models.Principal, error)
}

// Authenticate extracts and validates a bearer token once per request
//
// No Authorization header or a different scheme leaves the request
// anonymous and lets it through: endpoints decide themselves whether
// a principal is required. A present but invalid token rejects the
// request immediately
func Authenticate(a authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, BearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := a.Authenticate(strings.TrimPrefix(header, BearerPrefix))
			if err != nil {
				render.ServiceError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := authctx.New(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authctx.FromContext(r.Context()); !ok {
			render.ServiceError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose principal lacks the given role
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := authctx.FromContext(r.Context())
			if !ok {
				render.ServiceError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if !principal.HasRole(role) {
				render.ServiceError(w, "insufficient role", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
