package usecase

import "github.com/shopspring/decimal"

const (
	amountScale = 2
	// Exponents outside ±maxAmountExponent are rejected before any arithmetic
	// touches the value.
	maxAmountExponent = 15
)

// DefaultMaxTransferAmount applies when Config.MaxTransferAmount is zero.
var DefaultMaxTransferAmount = decimal.NewFromInt(1_000_000_000)

// CheckAmount rejects amounts that are not positive, carry sub-cent digits
// or have an exponent no balance could use.
func CheckAmount(amount decimal.Decimal) error {
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return ErrInvalidAmount
	}
	if !amount.IsPositive() || !amount.Equal(amount.Round(amountScale)) {
		return ErrInvalidAmount
	}
	return nil
}
