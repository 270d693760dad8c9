package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// ChaseParser parses Chase bank checking CSV exports.
type ChaseParser struct{}

const (
	chaseNumFields = 7
	chaseColDate   = 1
	chaseColDesc   = 2
	chaseColAmount = 3
	chaseColType   = 4
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns RawRows. Chase marks debits with
// negative amounts and bank-specific type codes (ACH_DEBIT etc.);
// those fold down to debit/credit here.
func (p *ChaseParser) Parse(r io.Reader) ([]model.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var rows []model.RawRow
	for i, rec := range records[1:] {
		row, err := parseChaseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseChaseRow(rec []string) (model.RawRow, error) {
	amount, err := decimal.NewFromString(rec[chaseColAmount])
	if err != nil {
		return model.RawRow{}, fmt.Errorf("parsing amount %q: %w", rec[chaseColAmount], err)
	}

	return model.RawRow{
		Date:        rec[chaseColDate],
		Description: rec[chaseColDesc],
		Amount:      amount,
		Type:        chaseType(rec[chaseColType], amount.IsNegative()),
	}, nil
}

// chaseType maps Chase transaction type codes to debit/credit.
func chaseType(code string, negative bool) string {
	switch {
	case strings.Contains(code, "DEBIT"):
		return string(model.TypeDebit)
	case strings.Contains(code, "CREDIT"), strings.Contains(code, "DEPOSIT"):
		return string(model.TypeCredit)
	case negative:
		return string(model.TypeDebit)
	default:
		return string(model.TypeCredit)
	}
}
