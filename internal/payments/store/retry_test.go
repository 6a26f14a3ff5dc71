package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
)

type flakyBackend struct {
	*MemoryBackend
	failures int
	err      error
	calls    int
}

func (f *flakyBackend) FetchAccounts(ctx context.Context) ([]entity.Account, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return f.MemoryBackend.FetchAccounts(ctx)
}

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func TestRetryingBackendRetriesTransient(t *testing.T) {
	mem := NewMemoryBackend()
	require.NoError(t, mem.SaveAccount(context.Background(), testAccounts()[0]))

	flaky := &flakyBackend{MemoryBackend: mem, failures: 2, err: errors.New("connection reset")}
	b := NewRetryingBackend(flaky, fastPolicy(3))

	accounts, err := b.FetchAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, 3, flaky.calls)
}

func TestRetryingBackendGivesUp(t *testing.T) {
	boom := errors.New("connection reset")
	flaky := &flakyBackend{MemoryBackend: NewMemoryBackend(), failures: 10, err: boom}
	b := NewRetryingBackend(flaky, fastPolicy(2))

	_, err := b.FetchAccounts(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, flaky.calls)
}

func TestRetryingBackendNotFoundIsPermanent(t *testing.T) {
	flaky := &flakyBackend{MemoryBackend: NewMemoryBackend(), failures: 10, err: pkgerror.ErrNotFound}
	b := NewRetryingBackend(flaky, fastPolicy(5))

	_, err := b.FetchAccounts(context.Background())
	assert.ErrorIs(t, err, pkgerror.ErrNotFound)
	assert.Equal(t, 1, flaky.calls)
}

func TestRetryingBackendValidationIsPermanent(t *testing.T) {
	invalid := pkgerror.NewValidation("bad row")
	flaky := &flakyBackend{MemoryBackend: NewMemoryBackend(), failures: 10, err: invalid}
	b := NewRetryingBackend(flaky, fastPolicy(5))

	_, err := b.FetchAccounts(context.Background())
	assert.ErrorIs(t, err, invalid)
	assert.Equal(t, 1, flaky.calls)
}
