package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/gopay/internal/payments/event"
	"github.com/shandysiswandi/gopay/internal/payments/inbound"
	"github.com/shandysiswandi/gopay/internal/payments/store"
	"github.com/shandysiswandi/gopay/internal/payments/usecase"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gopay/internal/pkg/pkghash"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgjwt"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gopay/internal/pkg/pkguid"
)

const (
	driverMemory   = "memory"
	driverPostgres = "postgres"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
}

// New wires the payments module, loads the ledger from storage and registers
// its HTTP endpoints. The returned func releases the module's resources.
func New(dep Dependency) (func(context.Context) error, error) {
	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}
	if dep.Context == nil {
		dep.Context = context.Background()
	}

	backend, closeBackend, err := openBackend(dep.Context, dep.Config)
	if err != nil {
		return nil, err
	}

	retrying := store.NewRetryingBackend(backend, store.RetryPolicy{
		MaxAttempts:     int(dep.Config.GetInt("payments.storage.retry.max_attempts")),
		InitialInterval: dep.Config.GetDuration("payments.storage.retry.initial_interval"),
	})

	recordID, err := pkguid.NewSnowflake(dep.Config.GetInt("payments.ids.node_id"))
	if err != nil {
		_ = closeBackend(dep.Context)
		return nil, fmt.Errorf("init record id generator: %w", err)
	}

	tokens, err := pkgjwt.NewHS256(
		dep.Config.GetBinary("payments.auth.jwt_secret"),
		"gopay",
		dep.Config.GetDuration("payments.auth.token_ttl"),
	)
	if err != nil {
		_ = closeBackend(dep.Context)
		return nil, fmt.Errorf("init token signer: %w", err)
	}

	maxAmount, err := maxTransferAmount(dep.Config)
	if err != nil {
		_ = closeBackend(dep.Context)
		return nil, err
	}

	bus := event.NewBus(int(dep.Config.GetInt("payments.notifier.buffer")))
	inbox := event.NewInbox(int(dep.Config.GetInt("payments.notifier.inbox_size")))
	consumer := event.NewNotificationConsumer(bus, inbox, event.ConsumerConfig{
		Workers:     int(dep.Config.GetInt("payments.notifier.workers")),
		MaxRetries:  int(dep.Config.GetInt("payments.notifier.max_retries")),
		BaseBackoff: dep.Config.GetDuration("payments.notifier.base_backoff"),
	})
	consumer.Start()

	var runner usecase.Runner
	if dep.Goroutine != nil {
		runner = dep.Goroutine
	}

	uc := usecase.New(usecase.Dependency{
		Directory: store.NewDirectory(),
		Records:   store.NewRecordStore(),
		Backend:   retrying,
		Notifier:  event.NewNotifier(bus, dep.ID),
		Inbox:     inbox,
		Hasher:    pkghash.NewBcrypt(int(dep.Config.GetInt("payments.auth.bcrypt_cost"))),
		Tokens:    tokens,
		Runner:    runner,
		EntryID:   dep.ID,
		RecordID:  recordID,
		Config: usecase.Config{
			TransferTimeout:   dep.Config.GetDuration("payments.ledger.transfer_timeout"),
			AllowOverdraft:    dep.Config.GetBool("payments.ledger.allow_overdraft"),
			MaxTransferAmount: maxAmount,
			RefreshInterval:   dep.Config.GetDuration("payments.directory.refresh_interval"),
		},
	})

	closer := func(ctx context.Context) error {
		return errors.Join(consumer.Stop(ctx), closeBackend(ctx))
	}

	if err := uc.Bootstrap(dep.Context); err != nil {
		_ = closer(dep.Context)
		return nil, fmt.Errorf("bootstrap ledger: %w", err)
	}
	uc.StartRefresher(dep.Context)

	inbound.RegisterHTTPEndpoint(dep.Router, uc, tokens)

	return closer, nil
}

// Migrate creates the postgres schema. It is a no-op for the memory driver.
func Migrate(ctx context.Context, cfg pkgconfig.Config) error {
	if driver(cfg) != driverPostgres {
		slog.InfoContext(ctx, "storage driver needs no migration", "driver", driver(cfg))
		return nil
	}

	pg, err := store.ConnectPostgres(ctx, cfg.GetString("payments.storage.postgres.url"), 1)
	if err != nil {
		return err
	}
	defer pg.Close(ctx)

	if err := pg.Migrate(ctx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "postgres schema is up to date")
	return nil
}

func openBackend(ctx context.Context, cfg pkgconfig.Config) (usecase.Backend, func(context.Context) error, error) {
	switch d := driver(cfg); d {
	case driverMemory:
		return store.NewMemoryBackend(), func(context.Context) error { return nil }, nil
	case driverPostgres:
		pg, err := store.ConnectPostgres(ctx,
			cfg.GetString("payments.storage.postgres.url"),
			int32(cfg.GetInt("payments.storage.postgres.max_conns")),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.GetBool("payments.storage.postgres.auto_migrate") {
			if err := pg.Migrate(ctx); err != nil {
				_ = pg.Close(ctx)
				return nil, nil, err
			}
		}
		return pg, pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", d)
	}
}

// maxTransferAmount reads payments.ledger.max_transfer_amount. Empty keeps the
// usecase default.
func maxTransferAmount(cfg pkgconfig.Config) (decimal.Decimal, error) {
	raw := strings.TrimSpace(cfg.GetString("payments.ledger.max_transfer_amount"))
	if raw == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil || usecase.CheckAmount(amount) != nil {
		return decimal.Zero, fmt.Errorf("invalid payments.ledger.max_transfer_amount %q", raw)
	}
	return amount, nil
}

func driver(cfg pkgconfig.Config) string {
	d := strings.ToLower(strings.TrimSpace(cfg.GetString("payments.storage.driver")))
	if d == "" {
		return driverMemory
	}
	return d
}
