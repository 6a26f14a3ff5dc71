package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one side of a transfer as seen by the owning account:
// negative for the sender, positive for the receiver.
type Transaction struct {
	ID         string
	SenderID   int64
	ReceiverID int64
	Amount     decimal.Decimal
	Timestamp  time.Time
}

// TransactionRecord is the global audit entry of a completed transfer. Names
// are copied at transfer time and are not updated afterwards.
type TransactionRecord struct {
	ID           int64
	SenderName   string
	ReceiverName string
	Amount       decimal.Decimal
	Timestamp    time.Time
}
