// Package dedupe detects incoming transactions that are already on the
// ledger, by exact match and optionally by fuzzy description match.
package dedupe

import (
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// DefaultThreshold is the normalized similarity cutoff for fuzzy
// description matching. Statement exports routinely truncate or
// reformat merchant strings, so exact description equality alone
// misses real duplicates.
const DefaultThreshold = 0.8

// Options controls a detection pass.
type Options struct {
	// Fuzzy additionally matches rows whose date and amount are
	// identical but whose description is merely similar.
	Fuzzy bool
	// Threshold overrides DefaultThreshold when > 0.
	Threshold float64
	// AccountID, when set, restricts comparison to existing
	// transactions of that bank account. Cross-account collisions are
	// never duplicates.
	AccountID string
}

func (o Options) threshold() float64 {
	if o.Threshold > 0 {
		return o.Threshold
	}
	return DefaultThreshold
}

// Detect returns the ordered, de-duplicated set of zero-based indices
// into txns that match an existing ledger transaction. A row matching
// several existing transactions still counts once: the first match
// wins.
func Detect(txns []model.Transaction, existing []model.LedgerTransaction, opts Options) []int {
	threshold := opts.threshold()

	var dupes []int
	for i, txn := range txns {
		for _, prior := range existing {
			if opts.AccountID != "" && prior.BankAccountID != opts.AccountID {
				continue
			}
			if isDuplicate(txn, prior, opts.Fuzzy, threshold) {
				dupes = append(dupes, i)
				break
			}
		}
	}
	return dupes
}

// isDuplicate applies exact matching always, fuzzy matching when
// enabled. Date and amount must match exactly in both modes.
func isDuplicate(txn model.Transaction, prior model.LedgerTransaction, fuzzy bool, threshold float64) bool {
	if !prior.SameDay(txn.Date) {
		return false
	}
	if !prior.Amount.Equal(txn.Amount) {
		return false
	}
	if prior.Description == txn.Description {
		return true
	}
	if !fuzzy {
		return false
	}
	return Similarity(txn.Description, prior.Description) >= threshold
}
