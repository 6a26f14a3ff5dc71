package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
)

// Bootstrap hydrates the directory and record store from the backend. When the
// backend has no accounts yet, the demo seed accounts are created and saved.
func (u *Usecase) Bootstrap(ctx context.Context) error {
	if u.directory == nil || u.records == nil || u.backend == nil || u.hasher == nil {
		return pkgerror.NewServer(errors.New("missing dependency"))
	}

	accounts, err := u.backend.FetchAccounts(ctx)
	if err != nil {
		return unavailable(err)
	}

	if len(accounts) == 0 {
		accounts, err = u.seed(ctx)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "seeded demo accounts", "count", len(accounts))
	}

	records, err := u.backend.FetchTransactionRecords(ctx)
	if err != nil {
		return unavailable(err)
	}

	if err := u.directory.Replace(ctx, accounts); err != nil {
		return mapStoreErr(err)
	}
	u.records.Load(records)

	slog.InfoContext(ctx, "ledger bootstrapped", "accounts", len(accounts), "records", len(records))
	return nil
}

// Refresh re-reads accounts and records from the backend. Accounts are
// replaced under their ownership locks and only when the fetched history
// extends the one held in memory, so a snapshot older than a concurrent
// commit is ignored. Records committed remotely but missed locally are
// appended.
func (u *Usecase) Refresh(ctx context.Context) error {
	if u.directory == nil || u.records == nil || u.backend == nil {
		return pkgerror.NewServer(errors.New("missing dependency"))
	}

	accounts, err := u.backend.FetchAccounts(ctx)
	if err != nil {
		return unavailable(err)
	}
	records, err := u.backend.FetchTransactionRecords(ctx)
	if err != nil {
		return unavailable(err)
	}

	if len(accounts) > 0 {
		if err := u.directory.Replace(ctx, accounts); err != nil {
			return mapStoreErr(err)
		}
	}
	u.records.Load(records)

	return nil
}

// StartRefresher runs Refresh every RefreshInterval until ctx is done.
func (u *Usecase) StartRefresher(ctx context.Context) {
	if u.runner == nil || u.cfg.RefreshInterval <= 0 {
		return
	}

	u.runner.Go(ctx, func(ctx context.Context) error {
		ticker := time.NewTicker(u.cfg.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := u.Refresh(ctx); err != nil {
					slog.WarnContext(ctx, "failed to refresh account directory", "error", err)
				}
			}
		}
	})
}

func (u *Usecase) seed(ctx context.Context) ([]entity.Account, error) {
	seeds := entity.SeedAccounts()
	accounts := make([]entity.Account, 0, len(seeds))

	for _, s := range seeds {
		hash, err := u.hasher.Hash(s.Password)
		if err != nil {
			return nil, pkgerror.NewServer(fmt.Errorf("hash seed password for %d: %w", s.ID, err))
		}

		acc := entity.Account{
			ID:             s.ID,
			Name:           s.Name,
			InitialBalance: s.Balance,
			Balance:        s.Balance,
			PasswordHash:   hash,
			Unlimited:      s.Unlimited,
		}
		if err := u.backend.SaveAccount(ctx, acc); err != nil {
			return nil, unavailable(err)
		}

		accounts = append(accounts, acc)
	}

	return accounts, nil
}
