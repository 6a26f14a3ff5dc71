package pkgroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine = 10

// ErrPanic wraps values recovered from a panicking task.
var ErrPanic = errors.New("goroutine panicked")

// Manager runs background tasks with bounded concurrency. Task errors and
// recovered panics are collected and returned by Wait.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	wg      sync.WaitGroup
	sema    chan struct{}
	running atomic.Int64
}

func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go runs f in a new goroutine once a slot is free. It blocks while the
// manager is full and gives up when ctx is done first.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) {
	select {
	case g.sema <- struct{}{}:
	case <-ctx.Done():
		slog.WarnContext(ctx, "background task not started", "error", ctx.Err())
		return
	}

	g.wg.Add(1)
	g.running.Add(1)
	go func() {
		defer func() {
			g.running.Add(-1)
			<-g.sema
			g.wg.Done()
		}()

		if err := g.run(ctx, f); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	}()
}

func (g *Manager) run(ctx context.Context, f func(ctx context.Context) error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic in background task", "panic", rvr, "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrPanic, rvr)
		}
	}()

	return f(ctx)
}

// Running reports how many tasks are in flight.
func (g *Manager) Running() int {
	return int(g.running.Load())
}

// Wait blocks until every started task returns and joins their errors.
func (g *Manager) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
