package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// StatementParser parses generic statement CSVs whose header names the
// date, description, amount, and type columns. Extra columns are
// ignored; the type column is optional.
type StatementParser struct{}

// Format returns the parser name.
func (p *StatementParser) Format() string { return "statement" }

// Parse reads a generic statement CSV and returns RawRows. Date and
// description text pass through untouched; the pipeline validates them.
func (p *StatementParser) Parse(r io.Reader) ([]model.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	cols, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	var rows []model.RawRow
	for i, rec := range records[1:] {
		row, err := parseStatementRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// statementColumns holds header-derived column indices; -1 = absent.
type statementColumns struct {
	date, desc, amount, typ int
}

func mapColumns(header []string) (statementColumns, error) {
	cols := statementColumns{date: -1, desc: -1, amount: -1, typ: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date", "posting date", "transaction date":
			cols.date = i
		case "description", "details", "memo":
			cols.desc = i
		case "amount":
			cols.amount = i
		case "type", "transaction type":
			cols.typ = i
		}
	}
	if cols.date < 0 || cols.desc < 0 || cols.amount < 0 {
		return cols, fmt.Errorf("statement header missing date, description, or amount column")
	}
	return cols, nil
}

func parseStatementRow(rec []string, cols statementColumns) (model.RawRow, error) {
	get := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(get(cols.amount)))
	if err != nil {
		return model.RawRow{}, fmt.Errorf("parsing amount %q: %w", get(cols.amount), err)
	}

	return model.RawRow{
		Date:        get(cols.date),
		Description: get(cols.desc),
		Amount:      amount,
		Type:        get(cols.typ),
	}, nil
}
