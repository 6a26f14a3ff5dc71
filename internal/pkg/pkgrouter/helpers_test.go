package pkgrouter

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

func TestSanitizeCorrelationID(t *testing.T) {
	cases := map[string]string{
		"  abc-123  ":           "abc-123",
		"trace:1.2_3":           "trace:1.2_3",
		"":                      "",
		"bad\nvalue":            "",
		"with space":            "",
		strings.Repeat("a", 65): "",
	}

	for in, want := range cases {
		if got := sanitizeCorrelationID(in); got != want {
			t.Fatalf("sanitizeCorrelationID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "secret")
	headers.Set("X-Trace", "ok")

	masked := maskHeaders(headers)
	if got := masked["Authorization"]; got != "***" {
		t.Fatalf("expected masked authorization, got %q", got)
	}
	if got := masked["X-Trace"]; got != "ok" {
		t.Fatalf("expected X-Trace to stay, got %q", got)
	}
	if got := headers.Get("Authorization"); got != "secret" {
		t.Fatalf("expected original headers unchanged, got %q", got)
	}
}

func TestMaskData(t *testing.T) {
	input := map[string]any{
		"password": "secret",
		"profile": map[string]any{
			"access_token": "token",
		},
		"items": []any{
			map[string]any{
				"refresh_token": "rt",
			},
		},
	}

	masked := maskData(input).(map[string]any)
	if masked["password"] != "***" {
		t.Fatalf("expected masked password")
	}
	if masked["profile"].(map[string]any)["access_token"] != "***" {
		t.Fatalf("expected masked access_token")
	}
	items := masked["items"].([]any)
	if items[0].(map[string]any)["refresh_token"] != "***" {
		t.Fatalf("expected masked refresh_token")
	}
}

func TestLoggableBody(t *testing.T) {
	parsed := loggableBody([]byte(`{"password":"secret","account_id":1234}`), false)

	m, ok := parsed.(map[string]any)
	if !ok {
		encoded, _ := json.Marshal(parsed)
		t.Fatalf("expected map, got %s", string(encoded))
	}
	if m["password"] != "***" {
		t.Fatalf("expected masked password")
	}
	if m["account_id"] != float64(1234) {
		t.Fatalf("expected account_id to remain, got %v", m["account_id"])
	}

	if got := loggableBody(nil, false); got != nil {
		t.Fatalf("expected nil for empty body, got %v", got)
	}
	if got := loggableBody([]byte{0xff, 0xfe}, false); !reflect.DeepEqual(got, "<binary body omitted>") {
		t.Fatalf("expected binary body omission, got %v", got)
	}
	if got := loggableBody([]byte(`{"password":"sec`), true); got != `{"password":"sec...(truncated)` {
		t.Fatalf("unexpected truncated body: %v", got)
	}
}

func TestCappedBuffer(t *testing.T) {
	var c cappedBuffer
	chunk := []byte(strings.Repeat("x", maxLoggedBodyBytes-1))

	if n, _ := c.Write(chunk); n != len(chunk) {
		t.Fatalf("unexpected write size %d", n)
	}
	_, _ = c.Write([]byte("yz"))

	if c.buf.Len() != maxLoggedBodyBytes || !c.truncated {
		t.Fatalf("expected capped buffer, len=%d truncated=%v", c.buf.Len(), c.truncated)
	}
}

func TestAppFrames(t *testing.T) {
	stack := []byte("goroutine 1 [running]:\n" +
		"main.main()\n" +
		"\t/src/gopay/internal/payments/usecase/transfer.go:42 +0x1d\n" +
		"\t/usr/local/go/src/runtime/proc.go:250 +0x2\n")

	frames := appFrames(stack)
	if !reflect.DeepEqual(frames, []string{"internal/payments/usecase/transfer.go:42"}) {
		t.Fatalf("unexpected frames: %#v", frames)
	}
}

func TestBearerToken(t *testing.T) {
	if got := bearerToken("Bearer abc"); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := bearerToken("Token abc"); got != "" {
		t.Fatalf("expected empty for other scheme, got %q", got)
	}
	if got := bearerToken("Bearer"); got != "" {
		t.Fatalf("expected empty for missing token, got %q", got)
	}
}
