package pkgerror

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestCodeCatalogue(t *testing.T) {
	tests := []struct {
		code      Code
		name      string
		status    int
		retryable bool
	}{
		{CodeInternal, "internal", http.StatusInternalServerError, false},
		{CodeInvalidFormat, "invalid_format", http.StatusBadRequest, false},
		{CodeInvalidInput, "invalid_input", http.StatusUnprocessableEntity, false},
		{CodeNotFound, "not_found", http.StatusNotFound, false},
		{CodeConflict, "conflict", http.StatusConflict, false},
		{CodeUnauthorized, "unauthorized", http.StatusUnauthorized, false},
		{CodeUnavailable, "unavailable", http.StatusServiceUnavailable, true},
		{Code(42), "internal", http.StatusInternalServerError, false},
	}

	for _, tc := range tests {
		err := &Error{code: tc.code}
		if got := tc.code.String(); got != tc.name {
			t.Errorf("code %d: name %q, want %q", tc.code, got, tc.name)
		}
		if got := err.StatusCode(); got != tc.status {
			t.Errorf("code %d: status %d, want %d", tc.code, got, tc.status)
		}
		if got := err.Retryable(); got != tc.retryable {
			t.Errorf("code %d: retryable %v, want %v", tc.code, got, tc.retryable)
		}
	}
}

func TestTypeNames(t *testing.T) {
	for typ, want := range map[Type]string{
		TypeServer:     "server",
		TypeBusiness:   "business",
		TypeValidation: "validation",
		Type(-1):       "unknown",
		Type(7):        "unknown",
	} {
		if got := typ.String(); got != want {
			t.Errorf("type %d: got %q, want %q", typ, got, want)
		}
	}
}

func TestServerErrorHidesCause(t *testing.T) {
	cause := errors.New("pq: relation accounts does not exist")
	err := NewServer(cause).(*Error)

	if err.Msg() != "Internal server error" {
		t.Fatalf("client message leaked cause: %q", err.Msg())
	}
	if err.Error() != cause.Error() {
		t.Fatalf("Error() should report the cause, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause must stay reachable through errors.Is")
	}
	if err.Type() != TypeServer || err.Code() != CodeInternal {
		t.Fatalf("unexpected classification %s/%s", err.Type(), err.Code())
	}
}

func TestErrorWithoutMessageFallsBackToType(t *testing.T) {
	err := build(nil, "", TypeBusiness, CodeConflict)
	if got := err.Error(); got != "business error" {
		t.Fatalf("got %q", got)
	}
}

func TestStringCarriesClassification(t *testing.T) {
	s := NewBusiness("insufficient funds", CodeConflict).(*Error).String()
	for _, part := range []string{"business", "conflict", "insufficient funds"} {
		if !strings.Contains(s, part) {
			t.Fatalf("%q missing %q", s, part)
		}
	}
}

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	sentinel := NewUnavailable("storage unavailable, try again later", nil)
	cause := errors.New("dial tcp 10.0.0.5:5432: i/o timeout")

	err := Wrap(sentinel, cause)
	if !errors.Is(err, sentinel) || !errors.Is(err, cause) {
		t.Fatal("wrapped error must match both sentinel and cause")
	}
	if !IsRetryable(err) {
		t.Fatal("unavailable must be retryable")
	}
	if got := err.(*Error).Msg(); got != "storage unavailable, try again later" {
		t.Fatalf("unexpected msg %q", got)
	}
	if errors.Is(err, NewUnauthorized("storage unavailable, try again later")) {
		t.Fatal("a different code must not match")
	}

	plain := Wrap(errors.New("not ours"), cause).(*Error)
	if plain.Code() != CodeInternal || !errors.Is(plain, cause) {
		t.Fatalf("foreign sentinel should degrade to a server error, got %s", plain)
	}
}

func TestSentinelsDistinguishedByMessage(t *testing.T) {
	invalidAmount := NewValidation("amount must be a positive number")
	sameAccount := NewValidation("sender and receiver must be different accounts")

	if errors.Is(invalidAmount, sameAccount) {
		t.Fatal("validation errors with different messages must not match")
	}
	if got := invalidAmount.(*Error).StatusCode(); got != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", got)
	}
	if got := NewInvalidFormat().(*Error).StatusCode(); got != http.StatusBadRequest {
		t.Fatalf("unexpected invalid format status %d", got)
	}
	if got := NewUnauthorized("invalid account id or password").(*Error).StatusCode(); got != http.StatusUnauthorized {
		t.Fatalf("unexpected unauthorized status %d", got)
	}
}

func TestIsRetryableIgnoresOtherErrors(t *testing.T) {
	if IsRetryable(NewBusiness("account not found", CodeNotFound)) {
		t.Fatal("business errors are final")
	}
	if IsRetryable(errors.New("plain")) {
		t.Fatal("plain errors are not classified")
	}
}
