package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joblane/joblane/internal/auth"
)

// bodyTokenField is the JSON body field clients may carry a credential
// token in, kept for compatibility with existing clients. The field is
// always stripped before the body reaches handlers so it never leaks
// into validation or logging.
const bodyTokenField = "_token"

// maxRequestBodySize bounds request bodies. Anything larger is rejected
// with 413 before authentication or handlers see it.
const maxRequestBodySize = 1 << 20 // 1 MB

// Authenticate returns a middleware that establishes who is making the
// request, never whether they are allowed. It looks for a token in the
// Authorization header (Bearer scheme) or the request body; a valid
// token attaches an Identity to the request context. A missing or
// invalid token is not an error: the request proceeds anonymously and
// decode failures are only logged. Oversize bodies are the one hard
// rejection here, since a truncated body cannot be handed on safely.
func Authenticate(issuer *auth.TokenIssuer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
			}

			token := extractBearerToken(r)

			bodyToken, err := stripBodyToken(r)
			if err != nil {
				logger.Warn("request body too large",
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeTooLarge(w)
				return
			}
			if bodyToken != "" && token == "" {
				token = bodyToken
			}

			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := issuer.Decode(token)
			if err != nil {
				logger.Warn("cannot authenticate token",
					slog.String("error", err.Error()),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls a token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// stripBodyToken removes the token field from a JSON request body and
// returns its value. The remaining body is rewritten so downstream
// handlers never see the token. Bodies that are not JSON objects pass
// through untouched. A body over the size limit returns an error.
func stripBodyToken(r *http.Request) (string, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", err
		}
		r.Body = io.NopCloser(bytes.NewReader(nil))
		return "", nil
	}
	_ = r.Body.Close()

	restore := func() {
		r.Body = io.NopCloser(bytes.NewReader(raw))
		r.ContentLength = int64(len(raw))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		restore()
		return "", nil
	}

	rawToken, ok := fields[bodyTokenField]
	if !ok {
		restore()
		return "", nil
	}

	var token string
	if err := json.Unmarshal(rawToken, &token); err != nil {
		token = ""
	}

	delete(fields, bodyTokenField)
	rewritten, err := json.Marshal(fields)
	if err != nil {
		restore()
		return token, nil
	}

	r.Body = io.NopCloser(bytes.NewReader(rewritten))
	r.ContentLength = int64(len(rewritten))
	return token, nil
}

// writeTooLarge writes a 413 response.
func writeTooLarge(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusRequestEntityTooLarge)
	_, _ = w.Write([]byte(`{"error":{"code":"REQUEST_TOO_LARGE","message":"request body too large"}}`))
}
