// Package ledger persists committed transactions per bank account.
package ledger

import (
	"context"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Store is the persistence contract consumed by the import engine.
type Store interface {
	// List returns all transactions recorded for the account, oldest
	// first. A missing account yields an empty slice, not an error.
	List(ctx context.Context, accountID string) ([]model.LedgerTransaction, error)

	// InsertBatch records the transactions for the account
	// all-or-nothing: on error, none of them are persisted.
	InsertBatch(ctx context.Context, accountID string, txns []model.Transaction) ([]model.LedgerTransaction, error)

	// Count reports how many transactions the account holds.
	Count(ctx context.Context, accountID string) (int, error)
}
