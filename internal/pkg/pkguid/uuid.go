package pkguid

import (
	"log/slog"

	"github.com/google/uuid"
)

// UUID generates version 7 UUID strings, which sort by creation time.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUIDv7. If the clock-based generator fails it falls
// back to a random (v4) UUID instead of panicking.
func (*UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		slog.Warn("uuid v7 generation failed, using v4", "error", err)
		return uuid.NewString()
	}
	return id.String()
}
