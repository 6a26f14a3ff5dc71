package pkgrouter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"github.com/shandysiswandi/gopay/internal/pkg/pkglog"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !reflect.DeepEqual(order, []string{"outer", "inner", "handler"}) {
		t.Fatalf("unexpected order: %#v", order)
	}
}

func TestParamInt64(t *testing.T) {
	ctx := context.WithValue(context.Background(), httprouter.ParamsKey, httprouter.Params{
		{Key: "id", Value: "40800"},
		{Key: "name", Value: "abc"},
	})

	id, err := ParamInt64(ctx, "id")
	if err != nil || id != 40800 {
		t.Fatalf("expected 40800, got %d (%v)", id, err)
	}
	if _, err := ParamInt64(ctx, "name"); err == nil {
		t.Fatal("expected error for non numeric param")
	}
	if got := Param(ctx, "missing"); got != "" {
		t.Fatalf("expected empty param, got %q", got)
	}
}

func TestCorrelationKeepsValidIncomingID(t *testing.T) {
	var seen string
	h := middlewareCorrelation(fixedGenerator("generated"))(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = pkglog.GetCorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "req-42" || rec.Header().Get(HeaderCorrelationID) != "req-42" {
		t.Fatalf("expected incoming id to be kept, got ctx=%q header=%q", seen, rec.Header().Get(HeaderCorrelationID))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderCorrelationID, "not valid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "generated" {
		t.Fatalf("expected generated id for invalid header, got %q", seen)
	}
}

func TestRecoverWritesJSON(t *testing.T) {
	h := middlewareRecover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Internal server error") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoggingPassesBodyThrough(t *testing.T) {
	var got string
	h := middlewareLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = string(b)
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"password":"x"}`)))

	if got != `{"password":"x"}` {
		t.Fatalf("handler saw %q", got)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
}
