package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRows_AllValid(t *testing.T) {
	txns := normalize.Rows([]model.RawRow{
		{Date: "2024-01-15", Description: "Coffee Shop Purchase", Amount: dec("4.50"), Type: "debit"},
		{Date: "2024-01-16", Description: "Salary", Amount: dec("3500.00"), Type: "credit"},
	})
	result := Rows(txns)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestRows_InvalidDate(t *testing.T) {
	txns := normalize.Rows([]model.RawRow{
		{Date: "invalid-date", Description: "X", Amount: dec("100"), Type: "debit"},
	})
	result := Rows(txns)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].RowIndex)
	assert.Equal(t, "date", result.Errors[0].Field)
	assert.Equal(t, MsgInvalidDate, result.Errors[0].Message)
}

func TestRows_NonPositiveAmount(t *testing.T) {
	txns := normalize.Rows([]model.RawRow{
		{Date: "2024-01-15", Description: "X", Amount: dec("0"), Type: "debit"},
	})
	result := Rows(txns)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "amount", result.Errors[0].Field)
	assert.Equal(t, MsgNonPositive, result.Errors[0].Message)
}

func TestRows_EmptyDescription(t *testing.T) {
	txns := normalize.Rows([]model.RawRow{
		{Date: "2024-01-15", Description: "   ", Amount: dec("5"), Type: "debit"},
	})
	result := Rows(txns)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "description", result.Errors[0].Field)
	assert.Equal(t, MsgEmptyDescription, result.Errors[0].Message)
}

func TestRows_CollectsAllViolationsPerRow(t *testing.T) {
	txns := normalize.Rows([]model.RawRow{
		{Date: "nope", Description: "", Amount: dec("0"), Type: "debit"},
	})
	result := Rows(txns)
	assert.Len(t, result.Errors, 3)
	for _, e := range result.Errors {
		assert.Equal(t, 0, e.RowIndex)
	}
}

func TestRows_ReportsEveryBadRow(t *testing.T) {
	txns := normalize.Rows([]model.RawRow{
		{Date: "2024-01-15", Description: "ok", Amount: dec("1"), Type: "debit"},
		{Date: "bad", Description: "also bad date", Amount: dec("2"), Type: "debit"},
		{Date: "2024-01-17", Description: "", Amount: dec("3"), Type: "credit"},
	})
	result := Rows(txns)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 1, result.Errors[0].RowIndex)
	assert.Equal(t, 2, result.Errors[1].RowIndex)

	bad := result.InvalidRows()
	assert.False(t, bad[0])
	assert.True(t, bad[1])
	assert.True(t, bad[2])
}
