package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// MemoryStore is an in-memory Store used for dry runs and tests.
type MemoryStore struct {
	mu     sync.Mutex
	byAcct map[string][]model.LedgerTransaction
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byAcct: make(map[string][]model.LedgerTransaction)}
}

// List returns copies of the account's transactions.
func (s *MemoryStore) List(_ context.Context, accountID string) ([]model.LedgerTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := s.byAcct[accountID]
	out := make([]model.LedgerTransaction, len(txns))
	copy(out, txns)
	return out, nil
}

// InsertBatch records all transactions, assigning IDs and timestamps.
func (s *MemoryStore) InsertBatch(_ context.Context, accountID string, txns []model.Transaction) ([]model.LedgerTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	recorded := make([]model.LedgerTransaction, 0, len(txns))
	for _, txn := range txns {
		recorded = append(recorded, model.LedgerTransaction{
			ID:            uuid.NewString(),
			BankAccountID: accountID,
			Date:          txn.Date,
			Description:   txn.Description,
			Amount:        txn.Amount,
			Type:          txn.Type,
			Category:      txn.Category,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	s.byAcct[accountID] = append(s.byAcct[accountID], recorded...)
	return recorded, nil
}

// Count reports the number of transactions held for the account.
func (s *MemoryStore) Count(_ context.Context, accountID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byAcct[accountID]), nil
}
