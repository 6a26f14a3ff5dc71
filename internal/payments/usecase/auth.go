package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
)

// Authenticate reports whether id names an account whose password matches.
// Unknown ids and wrong passwords are indistinguishable.
func (u *Usecase) Authenticate(ctx context.Context, id int64, password string) bool {
	if u.directory == nil || u.hasher == nil {
		return false
	}

	acc, ok := u.directory.Find(id)
	if !ok {
		return false
	}

	return u.hasher.Verify(acc.PasswordHash, password)
}

// Login authenticates and issues an access token whose subject is the account id.
func (u *Usecase) Login(ctx context.Context, id int64, password string) (LoginResult, error) {
	if u.tokens == nil {
		return LoginResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if !u.Authenticate(ctx, id, password) {
		slog.InfoContext(ctx, "login rejected", "account_id", id)
		return LoginResult{}, ErrAuthenticationFailed
	}

	acc, ok := u.directory.Find(id)
	if !ok {
		return LoginResult{}, ErrAuthenticationFailed
	}

	token, expiresAt, err := u.tokens.Issue(strconv.FormatInt(id, 10))
	if err != nil {
		return LoginResult{}, pkgerror.NewServer(err)
	}

	return LoginResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Account:     toAccountView(acc),
	}, nil
}
