package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/joblane/joblane/internal/auth"
	"github.com/joblane/joblane/internal/model"
)

func TestIsLoggedIn(t *testing.T) {
	if IsLoggedIn(nil) {
		t.Error("expected anonymous to fail")
	}
	if !IsLoggedIn(&model.Identity{Username: "u1"}) {
		t.Error("expected any identity to pass")
	}
}

func TestIsAdmin(t *testing.T) {
	testCases := []struct {
		name     string
		identity *model.Identity
		want     bool
	}{
		{"no identity", nil, false},
		{"non-admin", &model.Identity{Username: "u1"}, false},
		{"admin", &model.Identity{Username: "u1", IsAdmin: true}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAdmin(tc.identity); got != tc.want {
				t.Errorf("IsAdmin = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsSelfOrAdmin(t *testing.T) {
	testCases := []struct {
		name     string
		identity *model.Identity
		subject  string
		want     bool
	}{
		{"no identity", nil, "alice", false},
		{"self", &model.Identity{Username: "alice"}, "alice", true},
		{"other user", &model.Identity{Username: "bob"}, "alice", false},
		{"admin for other user", &model.Identity{Username: "bob", IsAdmin: true}, "alice", true},
		{"self and admin", &model.Identity{Username: "alice", IsAdmin: true}, "alice", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSelfOrAdmin(tc.identity, tc.subject); got != tc.want {
				t.Errorf("IsSelfOrAdmin = %v, want %v", got, tc.want)
			}
		})
	}
}

// serveGuarded routes a request through a guard-protected chi route,
// optionally with an identity attached.
func serveGuarded(t *testing.T, guard func(http.Handler) http.Handler, path string, id *model.Identity) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.With(guard).Get("/users/{username}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.With(guard).Get("/protected", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if id != nil {
		req = req.WithContext(auth.ContextWithIdentity(req.Context(), id))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireLoggedIn(t *testing.T) {
	rec := serveGuarded(t, RequireLoggedIn(), "/protected", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}

	rec = serveGuarded(t, RequireLoggedIn(), "/protected", &model.Identity{Username: "u1"})
	if rec.Code != http.StatusOK {
		t.Errorf("logged in: expected 200, got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	testCases := []struct {
		name     string
		identity *model.Identity
		want     int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"non-admin", &model.Identity{Username: "u1"}, http.StatusUnauthorized},
		{"admin", &model.Identity{Username: "u1", IsAdmin: true}, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveGuarded(t, RequireAdmin(), "/protected", tc.identity)
			if rec.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	testCases := []struct {
		name     string
		identity *model.Identity
		want     int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"self", &model.Identity{Username: "alice"}, http.StatusOK},
		{"other user", &model.Identity{Username: "bob"}, http.StatusUnauthorized},
		{"admin", &model.Identity{Username: "bob", IsAdmin: true}, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveGuarded(t, RequireSelfOrAdmin("username"), "/users/alice", tc.identity)
			if rec.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestUnauthorizedBody(t *testing.T) {
	rec := serveGuarded(t, RequireAdmin(), "/protected", nil)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	want := `{"error":{"code":"UNAUTHORIZED","message":"Unauthorized"}}`
	if rec.Body.String() != want {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
