package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id              BIGINT PRIMARY KEY,
	name            TEXT NOT NULL,
	initial_balance NUMERIC NOT NULL,
	balance         NUMERIC NOT NULL,
	password_hash   TEXT NOT NULL,
	unlimited       BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS account_transactions (
	seq         BIGSERIAL,
	id          TEXT PRIMARY KEY,
	account_id  BIGINT NOT NULL REFERENCES accounts (id),
	sender_id   BIGINT NOT NULL,
	receiver_id BIGINT NOT NULL,
	amount      NUMERIC NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS account_transactions_account_seq ON account_transactions (account_id, seq);

CREATE TABLE IF NOT EXISTS transaction_records (
	seq           BIGSERIAL,
	id            BIGINT PRIMARY KEY,
	sender_name   TEXT NOT NULL,
	receiver_name TEXT NOT NULL,
	amount        NUMERIC NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);
`

// PostgresBackend persists accounts, their entries and transfer records in
// PostgreSQL through a pgx pool.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a pool for url and pings it.
func ConnectPostgres(ctx context.Context, url string, maxConns int32) (*PostgresBackend, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection URL: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresBackend{pool: pool}, nil
}

// NewPostgresBackend wraps an existing pool.
func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

// Migrate creates the tables when they do not exist.
func (b *PostgresBackend) Migrate(ctx context.Context) error {
	if _, err := b.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Close(context.Context) error {
	b.pool.Close()
	return nil
}

func (b *PostgresBackend) SaveAccount(ctx context.Context, acc entity.Account) error {
	return pgx.BeginFunc(ctx, b.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO accounts (id, name, initial_balance, balance, password_hash, unlimited, updated_at)
			VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6, NOW())
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				initial_balance = EXCLUDED.initial_balance,
				balance = EXCLUDED.balance,
				password_hash = EXCLUDED.password_hash,
				unlimited = EXCLUDED.unlimited,
				updated_at = NOW()`,
			acc.ID, acc.Name, acc.InitialBalance.String(), acc.Balance.String(), acc.PasswordHash, acc.Unlimited,
		); err != nil {
			return fmt.Errorf("upsert account %d: %w", acc.ID, err)
		}

		for _, entry := range acc.Transactions {
			if err := insertEntry(ctx, tx, acc.ID, entry); err != nil {
				return err
			}
		}

		return nil
	})
}

func (b *PostgresBackend) FetchAccounts(ctx context.Context) ([]entity.Account, error) {
	rows, err := b.pool.Query(ctx, `
		SELECT id, name, initial_balance::text, balance::text, password_hash, unlimited
		FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}

	var (
		accounts []entity.Account
		index    = make(map[int64]int)
	)
	for rows.Next() {
		var (
			acc              entity.Account
			initial, balance string
		)
		if err := rows.Scan(&acc.ID, &acc.Name, &initial, &balance, &acc.PasswordHash, &acc.Unlimited); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan account: %w", err)
		}
		if acc.InitialBalance, err = decimal.NewFromString(initial); err != nil {
			rows.Close()
			return nil, fmt.Errorf("decode initial balance of %d: %w", acc.ID, err)
		}
		if acc.Balance, err = decimal.NewFromString(balance); err != nil {
			rows.Close()
			return nil, fmt.Errorf("decode balance of %d: %w", acc.ID, err)
		}

		index[acc.ID] = len(accounts)
		accounts = append(accounts, acc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	entries, err := b.pool.Query(ctx, `
		SELECT account_id, id, sender_id, receiver_id, amount::text, created_at
		FROM account_transactions ORDER BY account_id, seq`)
	if err != nil {
		return nil, fmt.Errorf("query account transactions: %w", err)
	}
	defer entries.Close()

	for entries.Next() {
		var (
			accountID int64
			amount    string
			tx        entity.Transaction
		)
		if err := entries.Scan(&accountID, &tx.ID, &tx.SenderID, &tx.ReceiverID, &amount, &tx.Timestamp); err != nil {
			return nil, fmt.Errorf("scan account transaction: %w", err)
		}
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("decode amount of %s: %w", tx.ID, err)
		}

		if i, ok := index[accountID]; ok {
			accounts[i].Transactions = append(accounts[i].Transactions, tx)
		}
	}
	if err := entries.Err(); err != nil {
		return nil, fmt.Errorf("iterate account transactions: %w", err)
	}

	return accounts, nil
}

func (b *PostgresBackend) SaveTransactionRecord(ctx context.Context, record entity.TransactionRecord) error {
	return insertRecord(ctx, b.pool, record)
}

func (b *PostgresBackend) FetchTransactionRecords(ctx context.Context) ([]entity.TransactionRecord, error) {
	rows, err := b.pool.Query(ctx, `
		SELECT id, sender_name, receiver_name, amount::text, created_at
		FROM transaction_records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query transaction records: %w", err)
	}
	defer rows.Close()

	var records []entity.TransactionRecord
	for rows.Next() {
		var (
			record entity.TransactionRecord
			amount string
		)
		if err := rows.Scan(&record.ID, &record.SenderName, &record.ReceiverName, &amount, &record.Timestamp); err != nil {
			return nil, fmt.Errorf("scan transaction record: %w", err)
		}
		if record.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("decode amount of record %d: %w", record.ID, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction records: %w", err)
	}

	return records, nil
}

// CommitTransfer writes both balances, both entries and the record in one
// database transaction.
func (b *PostgresBackend) CommitTransfer(ctx context.Context, commit entity.TransferCommit) error {
	return pgx.BeginFunc(ctx, b.pool, func(tx pgx.Tx) error {
		for _, acc := range []entity.Account{commit.Sender, commit.Receiver} {
			tag, err := tx.Exec(ctx,
				`UPDATE accounts SET balance = $2::numeric, updated_at = NOW() WHERE id = $1`,
				acc.ID, acc.Balance.String(),
			)
			if err != nil {
				return fmt.Errorf("update balance of %d: %w", acc.ID, err)
			}
			if tag.RowsAffected() != 1 {
				return pkgerror.ErrNotFound
			}
		}

		if err := insertEntry(ctx, tx, commit.Sender.ID, commit.Debit); err != nil {
			return err
		}
		if err := insertEntry(ctx, tx, commit.Receiver.ID, commit.Credit); err != nil {
			return err
		}

		return insertRecord(ctx, tx, commit.Record)
	})
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertEntry(ctx context.Context, tx execer, accountID int64, entry entity.Transaction) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO account_transactions (id, account_id, sender_id, receiver_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6)
		ON CONFLICT (id) DO NOTHING`,
		entry.ID, accountID, entry.SenderID, entry.ReceiverID, entry.Amount.String(), entry.Timestamp,
	); err != nil {
		return fmt.Errorf("insert entry %s: %w", entry.ID, err)
	}
	return nil
}

func insertRecord(ctx context.Context, db execer, record entity.TransactionRecord) error {
	if _, err := db.Exec(ctx, `
		INSERT INTO transaction_records (id, sender_name, receiver_name, amount, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5)
		ON CONFLICT (id) DO NOTHING`,
		record.ID, record.SenderName, record.ReceiverName, record.Amount.String(), record.Timestamp,
	); err != nil {
		return fmt.Errorf("insert record %d: %w", record.ID, err)
	}
	return nil
}
