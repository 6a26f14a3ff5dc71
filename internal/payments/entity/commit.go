package entity

// TransferCommit is everything a transfer changes, persisted as one unit.
// Sender and Receiver already carry the new entries and balances.
type TransferCommit struct {
	Sender   Account
	Receiver Account
	Debit    Transaction
	Credit   Transaction
	Record   TransactionRecord
}
