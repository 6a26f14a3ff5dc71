package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/gopay/internal/payments/usecase"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gopay/internal/pkg/pkglog"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgrouter"
)

const maxBodyBytes = 1 << 20

var errInvalidSubject = pkgerror.NewUnauthorized("invalid access token")

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Login(ctx context.Context, r *http.Request) (any, error) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, pkgerror.NewValidation("password is required")
	}

	result, err := h.uc.Login(ctx, req.AccountID, req.Password)
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
		Account:     toHTTPAccount(result.Account),
	}, nil
}

func (h *HTTPEndpoint) Transfer(ctx context.Context, r *http.Request) (any, error) {
	senderID, err := subjectID(ctx)
	if err != nil {
		return nil, err
	}

	var req TransferRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Transfer(ctx, usecase.TransferInput{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Amount:     amount,
	})
	if err != nil {
		return nil, err
	}

	return TransferResponse{
		Record:  toHTTPRecord(result.Record),
		Debit:   toHTTPTransaction(result.Debit),
		Balance: money(result.SenderBalance),
	}, nil
}

func (h *HTTPEndpoint) Me(ctx context.Context, _ *http.Request) (any, error) {
	id, err := subjectID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := h.uc.Account(ctx, id)
	if err != nil {
		return nil, err
	}

	return toHTTPAccount(view), nil
}

func (h *HTTPEndpoint) MyTransactions(ctx context.Context, _ *http.Request) (any, error) {
	id, err := subjectID(ctx)
	if err != nil {
		return nil, err
	}

	history, err := h.uc.History(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]Transaction, 0, len(history))
	for _, tx := range history {
		items = append(items, toHTTPTransaction(tx))
	}

	return TransactionsResponse{Transactions: items}, nil
}

func (h *HTTPEndpoint) MyNotifications(ctx context.Context, _ *http.Request) (any, error) {
	id, err := subjectID(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := h.uc.Notifications(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]Notification, 0, len(notes))
	for _, n := range notes {
		items = append(items, Notification{
			ID:        n.EventID,
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: n.CreatedAt,
		})
	}

	return NotificationsResponse{Notifications: items}, nil
}

// LookupAccount lets a payer confirm who owns a receiver id. The balance is
// not exposed.
func (h *HTTPEndpoint) LookupAccount(ctx context.Context, _ *http.Request) (any, error) {
	id, err := pkgrouter.ParamInt64(ctx, "id")
	if err != nil {
		return nil, pkgerror.NewValidation("account id must be numeric")
	}

	view, err := h.uc.Account(ctx, id)
	if err != nil {
		return nil, err
	}

	return AccountSummary{ID: view.ID, Name: view.Name}, nil
}

func (h *HTTPEndpoint) Records(ctx context.Context, _ *http.Request) (any, error) {
	records := h.uc.Records(ctx)

	items := make([]Record, 0, len(records))
	for _, rec := range records {
		items = append(items, toHTTPRecord(rec))
	}

	return RecordsResponse{Records: items}, nil
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return pkgerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return pkgerror.NewInvalidFormat()
	}

	return nil
}

// parseAmount accepts a JSON number or a numeric string with at most two
// decimal places.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Decimal{}, usecase.ErrInvalidAmount
	}

	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw); err != nil {
		return decimal.Decimal{}, usecase.ErrInvalidAmount
	}
	if err := usecase.CheckAmount(amount); err != nil {
		return decimal.Decimal{}, err
	}

	return amount, nil
}

func subjectID(ctx context.Context) (int64, error) {
	sub := pkglog.GetSubject(ctx)
	if sub == "" {
		return 0, errInvalidSubject
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, pkgerror.Wrap(errInvalidSubject, errors.New("subject is not an account id"))
	}

	return id, nil
}
