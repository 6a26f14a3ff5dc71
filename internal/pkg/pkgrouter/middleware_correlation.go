package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/gopay/internal/pkg/pkglog"
)

// Generator produces correlation ids for requests that arrive without one.
type Generator interface {
	Generate() string
}

const (
	HeaderCorrelationID = "X-Correlation-ID"
	HeaderRequestID     = "X-Request-ID"

	maxCorrelationIDLen = 64
)

// sanitizeCorrelationID keeps caller supplied ids only when they are short
// and made of URL-safe characters, so they can be echoed in headers and logs.
func sanitizeCorrelationID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > maxCorrelationIDLen {
		return ""
	}

	for _, c := range v {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return ""
		}
	}

	return v
}

func middlewareCorrelation(gen Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := sanitizeCorrelationID(r.Header.Get(HeaderCorrelationID))
			if cid == "" {
				cid = sanitizeCorrelationID(r.Header.Get(HeaderRequestID))
			}
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(pkglog.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
