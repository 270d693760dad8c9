package model

import (
	"fmt"
	"time"
)

// ValidationError describes a single rule violation for one input row.
type ValidationError struct {
	RowIndex int
	Field    string
	Message  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d [%s]: %s", e.RowIndex, e.Field, e.Message)
}

// ValidationResult is the outcome of validating a whole batch.
type ValidationResult struct {
	IsValid bool
	Errors  []ValidationError
}

// InvalidRows returns the set of row indices with at least one error.
func (r ValidationResult) InvalidRows() map[int]bool {
	bad := make(map[int]bool, len(r.Errors))
	for _, e := range r.Errors {
		bad[e.RowIndex] = true
	}
	return bad
}

// ImportResult is the atomic outcome of one import run.
type ImportResult struct {
	Success           bool
	ImportedCount     int
	DuplicatesSkipped int
	Errors            []ValidationError
	Transactions      []LedgerTransaction
}

// DateRange spans the posting dates of the imported transactions.
// Zero values mean nothing was imported.
type DateRange struct {
	Earliest time.Time
	Latest   time.Time
}

// ImportSummary is a derived read-only view over an ImportResult.
type ImportSummary struct {
	TotalProcessed    int
	SuccessfulImports int
	DuplicatesSkipped int
	ErrorsCount       int
	CategorizedCount  int
	DateRange         DateRange
}

// Summarize projects an ImportResult into an ImportSummary. Rows that
// failed validation are excluded from TotalProcessed and reported via
// ErrorsCount; the date range covers only imported transactions.
func Summarize(result ImportResult) ImportSummary {
	s := ImportSummary{
		TotalProcessed:    result.ImportedCount + result.DuplicatesSkipped,
		SuccessfulImports: result.ImportedCount,
		DuplicatesSkipped: result.DuplicatesSkipped,
		ErrorsCount:       len(result.Errors),
	}

	for _, txn := range result.Transactions {
		if txn.Category != "" {
			s.CategorizedCount++
		}
		if s.DateRange.Earliest.IsZero() || txn.Date.Before(s.DateRange.Earliest) {
			s.DateRange.Earliest = txn.Date
		}
		if txn.Date.After(s.DateRange.Latest) {
			s.DateRange.Latest = txn.Date
		}
	}
	return s
}
