package pkguid

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerateIsUniqueV7(t *testing.T) {
	gen := NewUUID()

	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		raw := gen.Generate()

		id, err := uuid.Parse(raw)
		if err != nil {
			t.Fatalf("expected valid uuid, got %q", raw)
		}
		if id.Version() != 7 {
			t.Fatalf("expected version 7, got %d", id.Version())
		}
		if _, dup := seen[raw]; dup {
			t.Fatalf("duplicate id %q", raw)
		}
		seen[raw] = struct{}{}
	}
}
