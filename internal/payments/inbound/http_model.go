package inbound

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/payments/usecase"
)

type LoginRequest struct {
	AccountID int64  `json:"account_id"`
	Password  string `json:"password"`
}

type TransferRequest struct {
	ReceiverID int64           `json:"receiver_id"`
	Amount     json.RawMessage `json:"amount"`
}

type Account struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Balance   string `json:"balance"`
	Unlimited bool   `json:"unlimited,omitempty"`
}

type AccountSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Transaction struct {
	ID         string    `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Amount     string    `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

type Record struct {
	ID           string    `json:"id"`
	SenderName   string    `json:"sender_name"`
	ReceiverName string    `json:"receiver_name"`
	Amount       string    `json:"amount"`
	Timestamp    time.Time `json:"timestamp"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Account     Account   `json:"account"`
}

func (LoginResponse) Message() string {
	return "login success"
}

type TransferResponse struct {
	Record  Record      `json:"record"`
	Debit   Transaction `json:"debit"`
	Balance string      `json:"balance"`
}

func (TransferResponse) StatusCode() int {
	return http.StatusCreated
}

func (TransferResponse) Message() string {
	return "transfer completed"
}

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

func (r TransactionsResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Transactions)}
}

type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

func (r NotificationsResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Notifications)}
}

type RecordsResponse struct {
	Records []Record `json:"records"`
}

func (r RecordsResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Records)}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toHTTPAccount(v usecase.AccountView) Account {
	return Account{
		ID:        v.ID,
		Name:      v.Name,
		Balance:   money(v.Balance),
		Unlimited: v.Unlimited,
	}
}

func toHTTPTransaction(tx entity.Transaction) Transaction {
	return Transaction{
		ID:         tx.ID,
		SenderID:   tx.SenderID,
		ReceiverID: tx.ReceiverID,
		Amount:     money(tx.Amount),
		Timestamp:  tx.Timestamp,
	}
}

// Record ids are snowflakes and exceed the exact integer range of JSON
// clients, so they are sent as strings.
func toHTTPRecord(rec entity.TransactionRecord) Record {
	return Record{
		ID:           strconv.FormatInt(rec.ID, 10),
		SenderName:   rec.SenderName,
		ReceiverName: rec.ReceiverName,
		Amount:       money(rec.Amount),
		Timestamp:    rec.Timestamp,
	}
}
