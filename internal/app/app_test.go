package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  address:\n    http: \":9090\"\npayments:\n  ledger:\n    transfer_timeout: 3s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	defer cfg.Close()

	if got := cfg.GetString("server.address.http"); got != ":9090" {
		t.Fatalf("unexpected address %q", got)
	}
	if got := cfg.GetDuration("payments.ledger.transfer_timeout"); got != 3*time.Second {
		t.Fatalf("unexpected timeout %s", got)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestServerDefaults(t *testing.T) {
	if got := durationOr(0, time.Second); got != time.Second {
		t.Fatalf("expected fallback, got %s", got)
	}
	if got := durationOr(2*time.Second, time.Second); got != 2*time.Second {
		t.Fatalf("expected configured value, got %s", got)
	}
	if got := allowedOrigins(nil); !reflect.DeepEqual(got, []string{"*"}) {
		t.Fatalf("unexpected origins %v", got)
	}
	if got := allowedOrigins([]string{"https://pay.example"}); !reflect.DeepEqual(got, []string{"https://pay.example"}) {
		t.Fatalf("unexpected origins %v", got)
	}
}

func TestClosersRunInReverseOrder(t *testing.T) {
	var order []string
	a := &App{}
	a.addCloser("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	a.addCloser("second", func(context.Context) error {
		order = append(order, "second")
		return errors.New("ignored")
	})

	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].fn(context.Background())
	}

	if !reflect.DeepEqual(order, []string{"second", "first"}) {
		t.Fatalf("unexpected order %v", order)
	}
}
