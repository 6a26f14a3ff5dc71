package pkgrouter

import (
	"context"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that mws[0] runs first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Param returns the named path parameter of the matched route.
func Param(ctx context.Context, key string) string {
	return httprouter.ParamsFromContext(ctx).ByName(key)
}

// ParamInt64 parses the named path parameter as a base-10 int64.
func ParamInt64(ctx context.Context, key string) (int64, error) {
	return strconv.ParseInt(Param(ctx, key), 10, 64)
}
