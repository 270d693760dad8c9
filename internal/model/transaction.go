package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction of a transaction.
type TransactionType string

const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// RawRow is one tabular row as received from a statement extractor.
// Nothing in it is trusted; the normalizer and validator decide what
// survives.
type RawRow struct {
	Date        string
	Description string
	Amount      decimal.Decimal // signed, as exported by the bank
	Type        string
}

// Transaction is a normalized row owned by the import pipeline for the
// duration of one batch.
type Transaction struct {
	Date        time.Time // zero when DateText did not parse
	DateText    string    // original date text, kept for error reporting
	Description string
	Amount      decimal.Decimal // positive magnitude
	Type        TransactionType
	Category    string // empty = uncategorized
}

// Categorized reports whether a category has been assigned.
func (t Transaction) Categorized() bool {
	return t.Category != ""
}

// LedgerTransaction is a persisted transaction. The import engine
// creates these on commit and never mutates them afterwards.
type LedgerTransaction struct {
	ID            string
	BankAccountID string
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	Type          TransactionType
	Category      string
	IsReconciled  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SameDay reports whether the transaction was posted on the given
// calendar date, ignoring time of day.
func (t LedgerTransaction) SameDay(date time.Time) bool {
	y1, m1, d1 := t.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
