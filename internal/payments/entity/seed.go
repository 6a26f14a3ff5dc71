package entity

import "github.com/shopspring/decimal"

// SeedAccount is a demo account used when storage has no accounts yet.
// Password is plaintext here and hashed before it reaches the directory.
type SeedAccount struct {
	ID        int64
	Name      string
	Balance   decimal.Decimal
	Password  string
	Unlimited bool
}

func SeedAccounts() []SeedAccount {
	return []SeedAccount{
		{ID: 1234, Name: "Mariana Silva", Balance: decimal.RequireFromString("1500.00"), Password: "senha1234"},
		{ID: 2345, Name: "Samuel Campos", Balance: decimal.RequireFromString("820.50"), Password: "senha2345"},
		{ID: 40800, Name: "Beatriz Rocha", Balance: decimal.RequireFromString("3200.00"), Password: "senha40800"},
		{ID: 3208, Name: "Lucas Ferreira", Balance: decimal.RequireFromString("95.75"), Password: "senha3208"},
		{ID: 3847, Name: "Ana Oliveira", Balance: decimal.RequireFromString("640.00"), Password: "senha3847"},
		{ID: HouseAccountID, Name: "Banco", Balance: decimal.Zero, Password: "senha0000", Unlimited: true},
	}
}
