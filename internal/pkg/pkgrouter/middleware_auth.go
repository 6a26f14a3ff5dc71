package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/gopay/internal/pkg/pkglog"
)

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// MiddlewareAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the token subject in the request context (see pkglog.GetSubject).
func MiddlewareAuth(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeJSON(w, errorResponse{Message: "missing access token"}, http.StatusUnauthorized)
				return
			}

			sub, err := v.Verify(token)
			if err != nil || sub == "" {
				writeJSON(w, errorResponse{Message: "invalid access token"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(pkglog.SetSubject(r.Context(), sub)))
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
