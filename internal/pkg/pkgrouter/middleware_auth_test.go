package pkgrouter

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shandysiswandi/gopay/internal/pkg/pkglog"
)

type verifierFunc func(token string) (string, error)

func (f verifierFunc) Verify(token string) (string, error) {
	return f(token)
}

func TestMiddlewareAuth(t *testing.T) {
	verifier := verifierFunc(func(token string) (string, error) {
		if token == "good" {
			return "1234", nil
		}
		return "", errors.New("bad token")
	})

	var gotSub string
	wrapped := MiddlewareAuth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = pkglog.GetSubject(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		status int
		sub    string
	}{
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "invalid", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid", header: "bearer good", status: http.StatusOK, sub: "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSub = ""
			req := httptest.NewRequest(http.MethodGet, "http://example.com/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			wrapped.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
			if gotSub != tt.sub {
				t.Fatalf("expected subject %q, got %q", tt.sub, gotSub)
			}
		})
	}
}
