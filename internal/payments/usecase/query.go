package usecase

import (
	"context"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
)

func (u *Usecase) Account(ctx context.Context, id int64) (AccountView, error) {
	acc, ok := u.directory.Find(id)
	if !ok {
		return AccountView{}, ErrAccountNotFound
	}
	return toAccountView(acc), nil
}

// History returns the account's entries in the order they were posted.
func (u *Usecase) History(ctx context.Context, id int64) ([]entity.Transaction, error) {
	acc, ok := u.directory.Find(id)
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc.Transactions, nil
}

func (u *Usecase) Records(ctx context.Context) []entity.TransactionRecord {
	return u.records.All()
}

// Notifications returns alerts delivered to the account, oldest first.
func (u *Usecase) Notifications(ctx context.Context, id int64) ([]entity.Notification, error) {
	if _, ok := u.directory.Find(id); !ok {
		return nil, ErrAccountNotFound
	}
	if u.inbox == nil {
		return nil, nil
	}
	return u.inbox.List(id), nil
}
