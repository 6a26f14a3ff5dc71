package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
)

type Handler interface {
	Handle(ctx context.Context, n entity.Notification) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.Workers < 1 {
		c.Workers = 4
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = 100 * time.Millisecond
	}
	return c
}

// NotificationConsumer fans bus events out to a fixed set of workers. An
// EventID is delivered at most once; failed deliveries back off
// exponentially and are dropped after MaxRetries.
type NotificationConsumer struct {
	bus     *Bus
	handler Handler
	cfg     ConsumerConfig

	seen sync.Map
	wg   sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

func NewNotificationConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *NotificationConsumer {
	ctx, cancel := context.WithCancel(context.Background())

	return &NotificationConsumer{
		bus:     bus,
		handler: handler,
		cfg:     cfg.withDefaults(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (c *NotificationConsumer) Start() {
	c.wg.Add(c.cfg.Workers)
	for range c.cfg.Workers {
		go func() {
			defer c.wg.Done()
			for n := range c.bus.Subscribe() {
				c.deliver(n)
			}
		}()
	}
}

// Stop closes the bus and lets the workers drain it. If ctx ends first the
// in-flight handlers and backoffs are cancelled.
func (c *NotificationConsumer) Stop(ctx context.Context) error {
	c.bus.Close()

	drained := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		c.cancel()
		return nil
	case <-ctx.Done():
		c.cancel()
		return ctx.Err()
	}
}

func (c *NotificationConsumer) deliver(n entity.Notification) {
	if n.EventID != "" {
		if _, dup := c.seen.LoadOrStore(n.EventID, struct{}{}); dup {
			slog.Info("notification already delivered", "event_id", n.EventID, "account_id", n.AccountID)
			return
		}
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.cfg.BaseBackoff
	exp.RandomizationFactor = 0
	exp.Multiplier = 2
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.cfg.MaxRetries)), c.ctx)

	err := backoff.RetryNotify(func() error {
		return c.handler.Handle(c.ctx, n)
	}, policy, func(err error, wait time.Duration) {
		slog.Warn("notification delivery failed, retrying", "event_id", n.EventID, "wait_ms", wait.Milliseconds(), "error", err)
	})
	if err != nil {
		slog.Error("notification dropped", "event_id", n.EventID, "account_id", n.AccountID, "error", err)
	}
}
