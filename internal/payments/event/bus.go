package event

import (
	"context"
	"errors"
	"sync"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus is a bounded in-process queue of notifications.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan entity.Notification
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan entity.Notification, buffer),
	}
}

func (b *Bus) Publish(ctx context.Context, n entity.Notification) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.ch <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) Subscribe() <-chan entity.Notification {
	return b.ch
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
