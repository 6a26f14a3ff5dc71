package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
)

// MemoryBackend is an in-process persistence backend. It stands in for the
// remote record store in local runs and tests, and can inject failures and
// latency.
type MemoryBackend struct {
	mu       sync.RWMutex
	accounts map[int64]entity.Account
	records  []entity.TransactionRecord

	fault   error
	latency time.Duration
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		accounts: make(map[int64]entity.Account),
	}
}

// FailWith makes every subsequent call return err; nil clears the fault.
func (b *MemoryBackend) FailWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fault = err
}

// SetLatency delays every subsequent call by d, honouring ctx.
func (b *MemoryBackend) SetLatency(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latency = d
}

func (b *MemoryBackend) SaveAccount(ctx context.Context, acc entity.Account) error {
	if err := b.enter(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.accounts[acc.ID] = acc.Clone()
	return nil
}

func (b *MemoryBackend) FetchAccounts(ctx context.Context) ([]entity.Account, error) {
	if err := b.enter(ctx); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]entity.Account, 0, len(b.accounts))
	for _, acc := range b.accounts {
		out = append(out, acc.Clone())
	}
	slices.SortFunc(out, func(a, b entity.Account) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return out, nil
}

func (b *MemoryBackend) SaveTransactionRecord(ctx context.Context, record entity.TransactionRecord) error {
	if err := b.enter(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append(b.records, record)
	return nil
}

func (b *MemoryBackend) FetchTransactionRecords(ctx context.Context) ([]entity.TransactionRecord, error) {
	if err := b.enter(ctx); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]entity.TransactionRecord, len(b.records))
	copy(out, b.records)
	return out, nil
}

// CommitTransfer stores both accounts and the record under one lock.
func (b *MemoryBackend) CommitTransfer(ctx context.Context, commit entity.TransferCommit) error {
	if err := b.enter(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.accounts[commit.Sender.ID]; !ok {
		return pkgerror.ErrNotFound
	}
	if _, ok := b.accounts[commit.Receiver.ID]; !ok {
		return pkgerror.ErrNotFound
	}

	b.accounts[commit.Sender.ID] = commit.Sender.Clone()
	b.accounts[commit.Receiver.ID] = commit.Receiver.Clone()
	b.records = append(b.records, commit.Record)

	return nil
}

func (b *MemoryBackend) enter(ctx context.Context) error {
	b.mu.RLock()
	fault, latency := b.fault, b.latency
	b.mu.RUnlock()

	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return fault
}
