package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joblane/joblane/internal/auth"
	"github.com/joblane/joblane/internal/model"
)

const authTestSecret = "auth-middleware-test-secret"

// identityProbe serves behind Authenticate and records what it saw.
type identityProbe struct {
	identity *model.Identity
	body     []byte
	called   bool
}

func (p *identityProbe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.called = true
	p.identity = auth.IdentityFromContext(r.Context())
	if r.Body != nil {
		p.body, _ = io.ReadAll(r.Body)
	}
	w.WriteHeader(http.StatusOK)
}

func serveAuthenticated(t *testing.T, req *http.Request) (*identityProbe, *httptest.ResponseRecorder) {
	t.Helper()

	issuer := auth.NewTokenIssuer([]byte(authTestSecret))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	probe := &identityProbe{}
	handler := Authenticate(issuer, logger)(probe)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return probe, rec
}

func issueTestToken(t *testing.T, id model.Identity) string {
	t.Helper()

	token, err := auth.NewTokenIssuer([]byte(authTestSecret)).Issue(id)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestAuthenticateNoToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/companies", nil)
	probe, rec := serveAuthenticated(t, req)

	if !probe.called {
		t.Fatal("handler was not called")
	}
	if probe.identity != nil {
		t.Errorf("expected anonymous, got %+v", probe.identity)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticateHeaderToken(t *testing.T) {
	token := issueTestToken(t, model.Identity{Username: "alice", IsAdmin: true})

	req := httptest.NewRequest(http.MethodGet, "/companies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	probe, _ := serveAuthenticated(t, req)

	if probe.identity == nil {
		t.Fatal("expected identity, got anonymous")
	}
	if probe.identity.Username != "alice" || !probe.identity.IsAdmin {
		t.Errorf("unexpected identity: %+v", probe.identity)
	}
}

func TestAuthenticateBodyToken(t *testing.T) {
	token := issueTestToken(t, model.Identity{Username: "bob"})

	payload, err := json.Marshal(map[string]string{
		"name":         "Acme",
		bodyTokenField: token,
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(string(payload)))
	probe, _ := serveAuthenticated(t, req)

	if probe.identity == nil {
		t.Fatal("expected identity, got anonymous")
	}
	if probe.identity.Username != "bob" {
		t.Errorf("unexpected username: %q", probe.identity.Username)
	}

	// The token field must not reach the handler.
	var seen map[string]any
	if err := json.Unmarshal(probe.body, &seen); err != nil {
		t.Fatalf("handler saw invalid JSON: %v", err)
	}
	if _, ok := seen[bodyTokenField]; ok {
		t.Error("token field leaked into downstream body")
	}
	if seen["name"] != "Acme" {
		t.Errorf("body fields lost: %v", seen)
	}
}

func TestAuthenticateHeaderWinsOverBody(t *testing.T) {
	headerToken := issueTestToken(t, model.Identity{Username: "header"})
	bodyToken := issueTestToken(t, model.Identity{Username: "body"})

	payload := `{"` + bodyTokenField + `":"` + bodyToken + `"}`
	req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+headerToken)
	probe, _ := serveAuthenticated(t, req)

	if probe.identity == nil || probe.identity.Username != "header" {
		t.Errorf("expected header identity, got %+v", probe.identity)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", func() string {
			other, err := auth.NewTokenIssuer([]byte("other-secret")).Issue(model.Identity{Username: "eve"})
			if err != nil {
				panic(err)
			}
			return other
		}()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/companies", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			probe, rec := serveAuthenticated(t, req)

			// Invalid tokens degrade to anonymous, never reject.
			if !probe.called {
				t.Fatal("handler was not called")
			}
			if probe.identity != nil {
				t.Errorf("expected anonymous, got %+v", probe.identity)
			}
			if rec.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestAuthenticateOversizeBody(t *testing.T) {
	payload := strings.Repeat("a", maxRequestBodySize+1)
	req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(payload))
	probe, rec := serveAuthenticated(t, req)

	if probe.called {
		t.Error("handler was called with an oversize body")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
	want := `{"error":{"code":"REQUEST_TOO_LARGE","message":"request body too large"}}`
	if rec.Body.String() != want {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthenticateNonJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader("plain text, not JSON"))
	probe, _ := serveAuthenticated(t, req)

	if probe.identity != nil {
		t.Errorf("expected anonymous, got %+v", probe.identity)
	}
	if string(probe.body) != "plain text, not JSON" {
		t.Errorf("non-JSON body was altered: %q", probe.body)
	}
}
