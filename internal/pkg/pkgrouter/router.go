package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
)

// Handler returns a payload to encode as the "data" of the success envelope,
// or an error that is mapped to an HTTP status.
//
// Payloads may implement StatusCode() int, Message() string and
// Meta() map[string]any to shape the response.
type Handler func(ctx context.Context, r *http.Request) (any, error)

// Router serves JSON endpoints on top of httprouter. Every route runs the
// recover, correlation and logging middleware before its own middleware.
type Router struct {
	hr  *httprouter.Router
	mws []Middleware
}

func NewRouter(gen Generator) *Router {
	ro := &Router{
		mws: []Middleware{
			middlewareRecover,
			middlewareCorrelation(gen),
			middlewareLogging,
		},
	}

	ro.hr = &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "endpoint not found"}, http.StatusNotFound)
		}), ro.mws...),
		MethodNotAllowed: Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
		}), ro.mws...),
	}

	ro.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"message": "hi from gopay"}, http.StatusOK)
	}))
	ro.Handle(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"message": "server is running well"}, http.StatusOK)
	}))

	return ro
}

// Use appends middleware for routes registered afterwards.
func (r *Router) Use(mws ...Middleware) {
	r.mws = append(r.mws, mws...)
}

func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodGet, path, h, mws...)
}

func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPost, path, h, mws...)
}

// Handle registers a plain http.Handler behind the router middleware.
func (r *Router) Handle(method, path string, h http.Handler, mws ...Middleware) {
	r.hr.Handler(method, path, Chain(h, r.stack(mws)...))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func (r *Router) endpoint(method, path string, h Handler, mws ...Middleware) {
	r.Handle(method, path, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := h(req.Context(), req)
		if err != nil {
			writeError(req.Context(), w, err)
			return
		}
		writeSuccess(w, resp)
	}), mws...)
}

func (r *Router) stack(extra []Middleware) []Middleware {
	out := make([]Middleware, 0, len(r.mws)+len(extra))
	out = append(out, r.mws...)
	return append(out, extra...)
}

type errorResponse struct {
	Message string            `json:"message"`
	Error   map[string]string `json:"error,omitempty"`
}

type successResponse struct {
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		slog.ErrorContext(ctx, "unhandled request error", "error", err)
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	if perr.Type() == pkgerror.TypeServer {
		slog.ErrorContext(ctx, "request failed", "error", perr.String())
	}

	resp := errorResponse{
		Message: perr.Msg(),
		Error:   map[string]string{"code": perr.Code().String()},
	}
	if perr.Retryable() {
		w.Header().Set("Retry-After", "1")
		resp.Error["retryable"] = "true"
	}

	writeJSON(w, resp, perr.StatusCode())
}

func writeSuccess(w http.ResponseWriter, resp any) {
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	code := http.StatusOK
	if sc, ok := resp.(interface{ StatusCode() int }); ok {
		code = sc.StatusCode()
	}
	if code == http.StatusNoContent {
		w.WriteHeader(code)
		return
	}

	msg := "request has been successfully"
	if m, ok := resp.(interface{ Message() string }); ok {
		msg = m.Message()
	}

	var meta map[string]any
	if m, ok := resp.(interface{ Meta() map[string]any }); ok {
		meta = m.Meta()
	}

	writeJSON(w, successResponse{Message: msg, Data: resp, Meta: meta}, code)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
