package usecase

import (
	"context"
	"errors"

	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
)

var (
	ErrAccountNotFound        = pkgerror.NewBusiness("account not found", pkgerror.CodeNotFound)
	ErrAuthenticationFailed   = pkgerror.NewUnauthorized("invalid account id or password")
	ErrPersistenceUnavailable = pkgerror.NewUnavailable("storage unavailable, try again later", nil)
	ErrInvalidAmount          = pkgerror.NewValidation("amount must be a positive number")
	ErrSameAccount            = pkgerror.NewValidation("sender and receiver must be different accounts")
	ErrInsufficientFunds      = pkgerror.NewBusiness("insufficient funds", pkgerror.CodeConflict)
)

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return ErrAccountNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return pkgerror.Wrap(ErrPersistenceUnavailable, err)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}

func unavailable(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) && perr.Type() != pkgerror.TypeServer {
		return perr
	}
	return pkgerror.Wrap(ErrPersistenceUnavailable, err)
}
