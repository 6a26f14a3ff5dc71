package pkglog

import (
	"context"
	"testing"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if GetCorrelationID(ctx) != "" || GetSubject(ctx) != "" {
		t.Fatal("empty context should carry no values")
	}

	ctx = SetSubject(SetCorrelationID(ctx, "cid-123"), "1234")
	if got := GetCorrelationID(ctx); got != "cid-123" {
		t.Errorf("correlation id = %q", got)
	}
	if got := GetSubject(ctx); got != "1234" {
		t.Errorf("subject = %q", got)
	}
}
