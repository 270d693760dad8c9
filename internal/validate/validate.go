// Package validate enforces row invariants on a normalized batch.
package validate

import (
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Rule violation messages, stable because callers render them directly.
const (
	MsgInvalidDate      = "Invalid date format"
	MsgNonPositive      = "Amount must be greater than zero"
	MsgEmptyDescription = "Description is required"
)

// Rows evaluates every rule against every row and collects all
// violations, not just the first, so one pass yields a complete report.
func Rows(txns []model.Transaction) model.ValidationResult {
	var errs []model.ValidationError

	for i, txn := range txns {
		if txn.Date.IsZero() {
			errs = append(errs, model.ValidationError{
				RowIndex: i,
				Field:    "date",
				Message:  MsgInvalidDate,
			})
		}
		if !txn.Amount.IsPositive() {
			errs = append(errs, model.ValidationError{
				RowIndex: i,
				Field:    "amount",
				Message:  MsgNonPositive,
			})
		}
		if txn.Description == "" {
			errs = append(errs, model.ValidationError{
				RowIndex: i,
				Field:    "description",
				Message:  MsgEmptyDescription,
			})
		}
	}

	return model.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
