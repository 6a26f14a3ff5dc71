package pkgrouter

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
)

const maxLoggedBodyBytes = 16 * 1024

//nolint:gochecknoglobals // read-only lookup table
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"access_token":  {},
	"refresh_token": {},
	"jwt_secret":    {},
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
}

//nolint:gochecknoglobals // read-only lookup table
var quietRoutes = map[string]struct{}{
	"/health": {},
}

func isSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

func maskHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for key, values := range headers {
		if isSensitive(key) {
			out[key] = "***"
			continue
		}
		out[key] = strings.Join(values, ", ")
	}
	return out
}

func maskData(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if isSensitive(k) {
				out[k] = "***"
				continue
			}
			out[k] = maskData(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = maskData(item)
		}
		return out
	default:
		return v
	}
}

// loggableBody decodes a JSON body and masks sensitive keys. Other payloads
// are logged as text when they are valid UTF-8.
func loggableBody(body []byte, truncated bool) any {
	if len(body) == 0 {
		return nil
	}

	var decoded any
	if !truncated && json.Unmarshal(body, &decoded) == nil {
		return maskData(decoded)
	}
	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	if truncated {
		return string(body) + "...(truncated)"
	}
	return string(body)
}

// cappedBuffer keeps at most maxLoggedBodyBytes of everything written to it.
type cappedBuffer struct {
	buf       bytes.Buffer
	truncated bool
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	remaining := maxLoggedBodyBytes - c.buf.Len()
	if len(p) > remaining {
		c.truncated = true
		p = p[:max(remaining, 0)]
	}
	c.buf.Write(p)
	return len(p), nil
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	body   cappedBuffer
}

func (w *responseRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	_, _ = w.body.Write(p)

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *responseRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

func middlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := matchedRoutePath(r)
		if _, quiet := quietRoutes[route]; quiet {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		var reqBody cappedBuffer
		if r.Body != nil {
			r.Body = struct {
				io.Reader
				io.Closer
			}{io.TeeReader(r.Body, &reqBody), r.Body}
		}

		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		slog.Log(r.Context(), level, "http request",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", rec.bytes,
			"latency_ms", time.Since(start).Milliseconds(),
			"request_headers", maskHeaders(r.Header),
			"request_body", loggableBody(reqBody.buf.Bytes(), reqBody.truncated),
			"response_body", loggableBody(rec.body.buf.Bytes(), rec.body.truncated),
		)
	})
}
