package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/pkg/pkguid"
)

// Directory holds the accounts in memory. Implementations serialize access
// per account; WithAccounts must lock ids in a fixed global order.
type Directory interface {
	Find(id int64) (entity.Account, bool)
	Update(ctx context.Context, id int64, fn func(acc *entity.Account) error) error
	WithAccounts(ctx context.Context, ids []int64, fn func(accs map[int64]*entity.Account) error) error
	Replace(ctx context.Context, accounts []entity.Account) error
	List() []entity.Account
}

// RecordStore is the append-only log of completed transfers.
type RecordStore interface {
	Append(record entity.TransactionRecord)
	All() []entity.TransactionRecord
	Load(records []entity.TransactionRecord)
}

// Backend is the external persistence collaborator.
type Backend interface {
	SaveAccount(ctx context.Context, acc entity.Account) error
	FetchAccounts(ctx context.Context) ([]entity.Account, error)
	SaveTransactionRecord(ctx context.Context, record entity.TransactionRecord) error
	FetchTransactionRecords(ctx context.Context) ([]entity.TransactionRecord, error)
	CommitTransfer(ctx context.Context, commit entity.TransferCommit) error
}

// Notifier dispatches user-facing alerts. Delivery is not guaranteed.
type Notifier interface {
	Notify(ctx context.Context, accountID int64, title, body string) error
}

// Inbox exposes notifications already delivered to an account.
type Inbox interface {
	List(accountID int64) []entity.Notification
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
}

type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

type Clock interface {
	Now() time.Time
}

type Config struct {
	// TransferTimeout bounds a transfer including the persistence round trip.
	TransferTimeout   time.Duration
	AllowOverdraft    bool
	// MaxTransferAmount caps a single transfer; zero means DefaultMaxTransferAmount.
	MaxTransferAmount decimal.Decimal
	// RefreshInterval re-reads accounts from the backend; zero disables it.
	RefreshInterval   time.Duration
}

type Dependency struct {
	Directory Directory
	Records   RecordStore
	Backend   Backend
	Notifier  Notifier
	Inbox     Inbox
	Hasher    PasswordHasher
	Tokens    TokenIssuer
	Runner    Runner
	Clock     Clock
	EntryID   pkguid.StringID
	RecordID  pkguid.NumberID
	Config    Config
}

type Usecase struct {
	directory Directory
	records   RecordStore
	backend   Backend
	notifier  Notifier
	inbox     Inbox
	hasher    PasswordHasher
	tokens    TokenIssuer
	runner    Runner
	clock     Clock
	entryID   pkguid.StringID
	recordID  pkguid.NumberID
	cfg       Config
}

const defaultTransferTimeout = 5 * time.Second

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	cfg := dep.Config
	if cfg.TransferTimeout <= 0 {
		cfg.TransferTimeout = defaultTransferTimeout
	}
	if !cfg.MaxTransferAmount.IsPositive() {
		cfg.MaxTransferAmount = DefaultMaxTransferAmount
	}

	return &Usecase{
		directory: dep.Directory,
		records:   dep.Records,
		backend:   dep.Backend,
		notifier:  dep.Notifier,
		inbox:     dep.Inbox,
		hasher:    dep.Hasher,
		tokens:    dep.Tokens,
		runner:    dep.Runner,
		clock:     clock,
		entryID:   dep.EntryID,
		recordID:  dep.RecordID,
		cfg:       cfg,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
