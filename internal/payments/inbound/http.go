package inbound

import (
	"context"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/payments/usecase"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgrouter"
)

type uc interface {
	Login(ctx context.Context, id int64, password string) (usecase.LoginResult, error)
	Transfer(ctx context.Context, in usecase.TransferInput) (usecase.TransferResult, error)
	Account(ctx context.Context, id int64) (usecase.AccountView, error)
	History(ctx context.Context, id int64) ([]entity.Transaction, error)
	Records(ctx context.Context) []entity.TransactionRecord
	Notifications(ctx context.Context, id int64) ([]entity.Notification, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, verifier pkgrouter.TokenVerifier) {
	end := &HTTPEndpoint{uc: uc}
	auth := pkgrouter.MiddlewareAuth(verifier)

	r.POST("/login", end.Login)
	r.POST("/transfers", end.Transfer, auth)

	r.GET("/me", end.Me, auth)
	r.GET("/me/transactions", end.MyTransactions, auth)
	r.GET("/me/notifications", end.MyNotifications, auth)
	r.GET("/accounts/:id", end.LookupAccount, auth)

	r.GET("/records", end.Records)
}
