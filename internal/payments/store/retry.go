package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/payments/usecase"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
)

type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// RetryingBackend retries transient backend failures with exponential backoff.
// Not-found errors and context cancellation are returned immediately.
type RetryingBackend struct {
	next   usecase.Backend
	policy RetryPolicy
}

func NewRetryingBackend(next usecase.Backend, policy RetryPolicy) *RetryingBackend {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 3
	}
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = 50 * time.Millisecond
	}
	if policy.MaxInterval < policy.InitialInterval {
		policy.MaxInterval = 20 * policy.InitialInterval
	}

	return &RetryingBackend{next: next, policy: policy}
}

func (b *RetryingBackend) SaveAccount(ctx context.Context, acc entity.Account) error {
	return b.do(ctx, "save_account", func() error {
		return b.next.SaveAccount(ctx, acc)
	})
}

func (b *RetryingBackend) FetchAccounts(ctx context.Context) ([]entity.Account, error) {
	var out []entity.Account
	err := b.do(ctx, "fetch_accounts", func() error {
		var err error
		out, err = b.next.FetchAccounts(ctx)
		return err
	})
	return out, err
}

func (b *RetryingBackend) SaveTransactionRecord(ctx context.Context, record entity.TransactionRecord) error {
	return b.do(ctx, "save_transaction_record", func() error {
		return b.next.SaveTransactionRecord(ctx, record)
	})
}

func (b *RetryingBackend) FetchTransactionRecords(ctx context.Context) ([]entity.TransactionRecord, error) {
	var out []entity.TransactionRecord
	err := b.do(ctx, "fetch_transaction_records", func() error {
		var err error
		out, err = b.next.FetchTransactionRecords(ctx)
		return err
	})
	return out, err
}

// CommitTransfer is safe to retry: backends write absolute balances and skip
// entries whose id already exists.
func (b *RetryingBackend) CommitTransfer(ctx context.Context, commit entity.TransferCommit) error {
	return b.do(ctx, "commit_transfer", func() error {
		return b.next.CommitTransfer(ctx, commit)
	})
}

func (b *RetryingBackend) do(ctx context.Context, op string, fn func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = b.policy.InitialInterval
	exp.MaxInterval = b.policy.MaxInterval
	exp.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(b.policy.MaxAttempts-1)), ctx)

	return backoff.RetryNotify(func() error {
		err := fn()
		if err != nil && !transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		slog.WarnContext(ctx, "retrying storage operation", "op", op, "wait_ms", wait.Milliseconds(), "error", err)
	})
}

func transient(err error) bool {
	switch {
	case errors.Is(err, pkgerror.ErrNotFound),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr.Retryable()
	}

	return true
}
