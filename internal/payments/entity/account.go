package entity

import "github.com/shopspring/decimal"

// HouseAccountID is the system account with unlimited funds.
const HouseAccountID int64 = 0

type Account struct {
	ID             int64
	Name           string
	InitialBalance decimal.Decimal
	Balance        decimal.Decimal
	PasswordHash   string
	Unlimited      bool
	Transactions   []Transaction
}

// Clone returns a copy that shares no slice memory with a.
func (a Account) Clone() Account {
	out := a
	if a.Transactions != nil {
		out.Transactions = make([]Transaction, len(a.Transactions))
		copy(out.Transactions, a.Transactions)
	}
	return out
}

// Post appends tx to the history and refreshes the cached balance.
func (a *Account) Post(tx Transaction) {
	a.Transactions = append(a.Transactions, tx)
	a.Balance = a.ComputedBalance()
}

// ComputedBalance recomputes the balance from the initial balance and history.
//
// Unlimited accounts ignore their debits so they never go below the initial
// balance.
func (a Account) ComputedBalance() decimal.Decimal {
	sum := a.InitialBalance
	for _, tx := range a.Transactions {
		if a.Unlimited && tx.Amount.IsNegative() {
			continue
		}
		sum = sum.Add(tx.Amount)
	}
	return sum
}
