package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_transactions (
	id TEXT PRIMARY KEY,
	bank_account_id TEXT NOT NULL,
	date TEXT NOT NULL,
	description TEXT NOT NULL,
	amount TEXT NOT NULL,
	type TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	is_reconciled INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ledger_account_date
	ON ledger_transactions (bank_account_id, date);
`

const dateFormat = "2006-01-02"

// SQLiteStore is the production Store backed by a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a SQLite ledger at path and
// ensures the schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring ledger schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns the account's transactions ordered by date, then
// creation time.
func (s *SQLiteStore) List(ctx context.Context, accountID string) ([]model.LedgerTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, bank_account_id, date, description, amount, type, category, is_reconciled, created_at, updated_at
		FROM ledger_transactions
		WHERE bank_account_id = ?
		ORDER BY date, created_at`, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.LedgerTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	return txns, nil
}

// InsertBatch writes all transactions inside one SQL transaction so a
// failure persists nothing.
func (s *SQLiteStore) InsertBatch(ctx context.Context, accountID string, txns []model.Transaction) ([]model.LedgerTransaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning insert batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_transactions
			(id, bank_account_id, date, description, amount, type, category, is_reconciled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	recorded := make([]model.LedgerTransaction, 0, len(txns))
	for i, txn := range txns {
		rec := model.LedgerTransaction{
			ID:            uuid.NewString(),
			BankAccountID: accountID,
			Date:          txn.Date,
			Description:   txn.Description,
			Amount:        txn.Amount,
			Type:          txn.Type,
			Category:      txn.Category,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		_, err := stmt.ExecContext(ctx,
			rec.ID, rec.BankAccountID, rec.Date.Format(dateFormat), rec.Description,
			rec.Amount.String(), string(rec.Type), rec.Category,
			rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))
		if err != nil {
			return nil, fmt.Errorf("inserting row %d: %w", i, err)
		}
		recorded = append(recorded, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing insert batch: %w", err)
	}
	return recorded, nil
}

// Count reports the number of transactions held for the account.
func (s *SQLiteStore) Count(ctx context.Context, accountID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_transactions WHERE bank_account_id = ?`, accountID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return n, nil
}

func scanTransaction(rows *sql.Rows) (model.LedgerTransaction, error) {
	var (
		txn                                 model.LedgerTransaction
		date, amount, typ, created, updated string
		reconciled                          int
	)
	err := rows.Scan(&txn.ID, &txn.BankAccountID, &date, &txn.Description,
		&amount, &typ, &txn.Category, &reconciled, &created, &updated)
	if err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("scanning transaction: %w", err)
	}

	if txn.Date, err = time.Parse(dateFormat, date); err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("parsing date %q: %w", date, err)
	}
	if txn.Amount, err = decimal.NewFromString(amount); err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	txn.Type = model.TransactionType(typ)
	txn.IsReconciled = reconciled != 0
	if txn.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("parsing created_at %q: %w", created, err)
	}
	if txn.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("parsing updated_at %q: %w", updated, err)
	}
	return txn, nil
}
