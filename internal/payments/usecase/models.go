package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
)

type TransferInput struct {
	SenderID   int64
	ReceiverID int64
	Amount     decimal.Decimal
}

type TransferResult struct {
	Debit         entity.Transaction
	Credit        entity.Transaction
	Record        entity.TransactionRecord
	SenderBalance decimal.Decimal
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Account     AccountView
}

// AccountView is the public projection of an account; it never carries the
// password hash.
type AccountView struct {
	ID        int64
	Name      string
	Balance   decimal.Decimal
	Unlimited bool
}

func toAccountView(acc entity.Account) AccountView {
	return AccountView{
		ID:        acc.ID,
		Name:      acc.Name,
		Balance:   acc.Balance,
		Unlimited: acc.Unlimited,
	}
}
