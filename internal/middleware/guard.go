package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joblane/joblane/internal/auth"
	"github.com/joblane/joblane/internal/model"
)

// Authorization guards. Each policy is split into a pure predicate,
// testable in isolation, and a middleware adapter that turns a failed
// predicate into a 401. The predicates accept a nil identity as a
// normal input: anonymous is a state, not an error.
//
// Guards must be applied after Authenticate and before handlers, so a
// forbidden caller is rejected before any existence check can leak
// whether the target resource exists.

// IsLoggedIn reports whether any identity is attached.
func IsLoggedIn(id *model.Identity) bool {
	return id != nil
}

// IsAdmin reports whether an attached identity carries the admin flag.
func IsAdmin(id *model.Identity) bool {
	return IsLoggedIn(id) && id.IsAdmin
}

// IsSelfOrAdmin reports whether the identity is an admin or names the
// subject user.
func IsSelfOrAdmin(id *model.Identity, subject string) bool {
	return IsLoggedIn(id) && (id.IsAdmin || id.Username == subject)
}

// RequireLoggedIn rejects anonymous requests.
func RequireLoggedIn() func(http.Handler) http.Handler {
	return requireGuard(func(id *model.Identity, _ *http.Request) bool {
		return IsLoggedIn(id)
	})
}

// RequireAdmin rejects requests without an admin identity.
func RequireAdmin() func(http.Handler) http.Handler {
	return requireGuard(func(id *model.Identity, _ *http.Request) bool {
		return IsAdmin(id)
	})
}

// RequireSelfOrAdmin rejects requests unless the identity is an admin
// or matches the username carried in the named URL parameter.
func RequireSelfOrAdmin(param string) func(http.Handler) http.Handler {
	return requireGuard(func(id *model.Identity, r *http.Request) bool {
		return IsSelfOrAdmin(id, chi.URLParam(r, param))
	})
}

// requireGuard adapts a predicate into middleware.
func requireGuard(allowed func(*model.Identity, *http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed(auth.IdentityFromContext(r.Context()), r) {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeUnauthorized writes a 401 response.
// Uses the same message for all guard failures to prevent enumeration.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Unauthorized"}}`))
}
