package pkglog

import "context"

type ctxKey int

const (
	correlationKey ctxKey = iota
	subjectKey
)

// GetCorrelationID returns the id the router attached to the request, or ""
// outside a request.
func GetCorrelationID(ctx context.Context) string {
	cid, _ := ctx.Value(correlationKey).(string)
	return cid
}

func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationKey, cid)
}

// GetSubject returns the authenticated account id, or "" for anonymous calls.
func GetSubject(ctx context.Context) string {
	sub, _ := ctx.Value(subjectKey).(string)
	return sub
}

func SetSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey, sub)
}
