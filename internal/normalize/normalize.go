// Package normalize coerces raw statement rows into canonical
// transactions. It never rejects a row; malformed input passes through
// so the validator can report it against the original row index.
package normalize

import (
	"strings"
	"time"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// dateLayouts are the accepted statement date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
}

// Rows normalizes a batch 1:1. The output is positionally aligned with
// the input so downstream error reports match the caller's row numbers.
func Rows(rows []model.RawRow) []model.Transaction {
	txns := make([]model.Transaction, len(rows))
	for i, row := range rows {
		txns[i] = Row(row)
	}
	return txns
}

// Row normalizes a single raw row.
func Row(row model.RawRow) model.Transaction {
	txn := model.Transaction{
		DateText:    strings.TrimSpace(row.Date),
		Description: strings.TrimSpace(row.Description),
		Amount:      row.Amount.Abs(),
		Type:        normalizeType(row.Type, row.Amount.IsNegative()),
	}
	if date, ok := parseDate(txn.DateText); ok {
		txn.Date = date
	}
	return txn
}

func parseDate(text string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, text); err == nil {
			return date.UTC(), true
		}
	}
	return time.Time{}, false
}

// normalizeType folds the bank's type text into debit/credit. When the
// export carries no usable type the sign of the amount decides.
func normalizeType(raw string, negative bool) model.TransactionType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debit":
		return model.TypeDebit
	case "credit":
		return model.TypeCredit
	}
	if negative {
		return model.TypeDebit
	}
	return model.TypeCredit
}
