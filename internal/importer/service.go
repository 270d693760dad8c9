// Package importer orchestrates the bank statement import pipeline:
// normalize, validate, categorize, duplicate-check, commit, summarize.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bankfeed-dev/bankfeed/internal/categorize"
	"github.com/bankfeed-dev/bankfeed/internal/dedupe"
	"github.com/bankfeed-dev/bankfeed/internal/ledger"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
	"github.com/bankfeed-dev/bankfeed/internal/validate"
)

// Precondition errors, returned before any row is processed.
var (
	ErrNoAccount      = errors.New("no bank account selected")
	ErrUnknownAccount = errors.New("unknown bank account")
	ErrEmptyBatch     = errors.New("no rows to import")
)

// AccountChecker tests whether a bank account is configured.
type AccountChecker interface {
	Exists(id string) bool
}

// Options controls one import run.
type Options struct {
	// FuzzyMatch enables fuzzy duplicate detection for this batch.
	FuzzyMatch bool
	// FuzzyThreshold overrides the default similarity cutoff when > 0.
	FuzzyThreshold float64
}

// Service runs import batches against a ledger store. One import is in
// flight per bank account at a time; unrelated accounts proceed
// concurrently.
type Service struct {
	store    ledger.Store
	accounts AccountChecker
	rules    []categorize.Rule
	locks    *accountLocks
	log      *slog.Logger
}

// NewService creates an import Service. A nil logger falls back to
// slog.Default; nil rules fall back to the built-in table.
func NewService(store ledger.Store, accounts AccountChecker, rules []categorize.Rule, log *slog.Logger) *Service {
	if rules == nil {
		rules = categorize.DefaultRules()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:    store,
		accounts: accounts,
		rules:    rules,
		locks:    newAccountLocks(),
		log:      log,
	}
}

// ValidateRows normalizes and validates a batch without side effects,
// for preview before commit.
func (s *Service) ValidateRows(rows []model.RawRow) model.ValidationResult {
	return validate.Rows(normalize.Rows(rows))
}

// Categorize annotates categories without side effects, for preview.
func (s *Service) Categorize(txns []model.Transaction) []model.Transaction {
	return categorize.Apply(s.rules, txns)
}

// DetectDuplicates reports which rows already exist in the given
// ledger window, without side effects, for preview.
func (s *Service) DetectDuplicates(txns []model.Transaction, existing []model.LedgerTransaction, opts Options) []int {
	return dedupe.Detect(txns, existing, dedupe.Options{
		Fuzzy:     opts.FuzzyMatch,
		Threshold: opts.FuzzyThreshold,
	})
}

// Summarize projects an ImportResult into its reporting view.
func (s *Service) Summarize(result model.ImportResult) model.ImportSummary {
	return model.Summarize(result)
}

// Run executes the full pipeline for one account and commits the
// surviving rows as one all-or-nothing batch. Rows that fail
// validation are excluded and reported; rows recognized as duplicates
// are skipped and counted. A storage failure aborts the whole batch.
func (s *Service) Run(ctx context.Context, accountID string, rows []model.RawRow, opts Options) (model.ImportResult, error) {
	if accountID == "" {
		return model.ImportResult{}, ErrNoAccount
	}
	if s.accounts != nil && !s.accounts.Exists(accountID) {
		return model.ImportResult{}, fmt.Errorf("%w: %s", ErrUnknownAccount, accountID)
	}
	if len(rows) == 0 {
		return model.ImportResult{}, ErrEmptyBatch
	}

	txns := normalize.Rows(rows)
	validation := validate.Rows(txns)

	// Keep only rows with no errors; the full error list still reaches
	// the caller.
	invalid := validation.InvalidRows()
	valid := make([]model.Transaction, 0, len(txns))
	for i, txn := range txns {
		if !invalid[i] {
			valid = append(valid, txn)
		}
	}

	valid = categorize.Apply(s.rules, valid)

	result := model.ImportResult{Errors: validation.Errors}

	// Hold the account lock from the comparison window read through
	// commit so a concurrent import cannot dedupe against a stale
	// snapshot and double-import.
	unlock := s.locks.acquire(accountID)
	defer unlock()

	existing, err := s.store.List(ctx, accountID)
	if err != nil {
		return result, fmt.Errorf("listing existing transactions: %w", err)
	}

	dupes := dedupe.Detect(valid, existing, dedupe.Options{
		Fuzzy:     opts.FuzzyMatch,
		Threshold: opts.FuzzyThreshold,
		AccountID: accountID,
	})
	isDupe := make(map[int]bool, len(dupes))
	for _, i := range dupes {
		isDupe[i] = true
	}

	fresh := make([]model.Transaction, 0, len(valid))
	for i, txn := range valid {
		if isDupe[i] {
			continue
		}
		fresh = append(fresh, txn)
	}
	result.DuplicatesSkipped = len(dupes)

	if len(fresh) > 0 {
		recorded, err := s.store.InsertBatch(ctx, accountID, fresh)
		if err != nil {
			// All-or-nothing: the store persisted nothing.
			return result, fmt.Errorf("committing batch: %w", err)
		}
		result.Transactions = recorded
		result.ImportedCount = len(recorded)
	}

	result.Success = true
	s.log.Info("import batch committed",
		"account", accountID,
		"imported", result.ImportedCount,
		"duplicates_skipped", result.DuplicatesSkipped,
		"validation_errors", len(result.Errors),
		"fuzzy", opts.FuzzyMatch)
	return result, nil
}
