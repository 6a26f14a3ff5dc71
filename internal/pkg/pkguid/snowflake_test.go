package pkguid

import "testing"

func TestGenerateRandomNodeIDRange(t *testing.T) {
	id, err := generateRandomNodeID()
	if err != nil {
		t.Fatalf("generateRandomNodeID: %v", err)
	}
	if id < 0 || id > maxNodeID {
		t.Fatalf("expected id within 0..1023, got %d", id)
	}
}

func TestSnowflakeGenerateUniqueAndIncreasing(t *testing.T) {
	gen, err := NewSnowflake(-1)
	if err != nil {
		t.Fatalf("NewSnowflake: %v", err)
	}

	prev := gen.Generate()
	for i := 0; i < 100; i++ {
		next := gen.Generate()
		if next <= prev {
			t.Fatalf("expected increasing ids, got %d after %d", next, prev)
		}
		prev = next
	}
}

func TestSnowflakeNodeIDOutOfRange(t *testing.T) {
	if _, err := NewSnowflake(maxNodeID + 1); err == nil {
		t.Fatal("expected error for node id out of range")
	}
	if _, err := NewSnowflake(7); err != nil {
		t.Fatalf("NewSnowflake(7): %v", err)
	}
}
