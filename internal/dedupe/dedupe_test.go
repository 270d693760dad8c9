package dedupe

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func incoming(date time.Time, desc, amount string) model.Transaction {
	return model.Transaction{Date: date, Description: desc, Amount: dec(amount), Type: model.TypeDebit}
}

func existing(account string, date time.Time, desc, amount string) model.LedgerTransaction {
	return model.LedgerTransaction{
		ID:            "t-" + desc,
		BankAccountID: account,
		Date:          date,
		Description:   desc,
		Amount:        dec(amount),
		Type:          model.TypeDebit,
	}
}

func TestDetect_ExactDuplicate(t *testing.T) {
	rows := []model.Transaction{incoming(day(2024, 1, 15), "Coffee Shop Purchase", "4.50")}
	prior := []model.LedgerTransaction{existing("acct-1", day(2024, 1, 15), "Coffee Shop Purchase", "4.50")}

	dupes := Detect(rows, prior, Options{})
	assert.Equal(t, []int{0}, dupes)
}

func TestDetect_AmountMustMatchExactly(t *testing.T) {
	rows := []model.Transaction{incoming(day(2024, 1, 15), "Coffee Shop Purchase", "4.50")}
	prior := []model.LedgerTransaction{existing("acct-1", day(2024, 1, 15), "Coffee Shop Purchase", "5.50")}

	assert.Empty(t, Detect(rows, prior, Options{}))
	// Fuzzy mode does not relax the amount match.
	assert.Empty(t, Detect(rows, prior, Options{Fuzzy: true}))
}

func TestDetect_DateMustMatch(t *testing.T) {
	rows := []model.Transaction{incoming(day(2024, 1, 16), "Coffee Shop Purchase", "4.50")}
	prior := []model.LedgerTransaction{existing("acct-1", day(2024, 1, 15), "Coffee Shop Purchase", "4.50")}
	assert.Empty(t, Detect(rows, prior, Options{Fuzzy: true}))
}

func TestDetect_FuzzyDescription(t *testing.T) {
	rows := []model.Transaction{incoming(day(2024, 1, 15), "STARBUCKS #123 MAIN ST", "4.50")}
	prior := []model.LedgerTransaction{existing("acct-1", day(2024, 1, 15), "STARBUCKS MAIN STREET", "4.50")}

	assert.Empty(t, Detect(rows, prior, Options{}), "exact mode should not match reformatted descriptions")
	assert.Equal(t, []int{0}, Detect(rows, prior, Options{Fuzzy: true}))
}

func TestDetect_FuzzyIsSuperset(t *testing.T) {
	rows := []model.Transaction{
		incoming(day(2024, 1, 15), "Coffee Shop Purchase", "4.50"),
		incoming(day(2024, 1, 15), "STARBUCKS #123 MAIN ST", "4.50"),
		incoming(day(2024, 1, 16), "Totally new", "9.99"),
	}
	prior := []model.LedgerTransaction{
		existing("acct-1", day(2024, 1, 15), "Coffee Shop Purchase", "4.50"),
		existing("acct-1", day(2024, 1, 15), "STARBUCKS MAIN STREET", "4.50"),
	}

	exact := Detect(rows, prior, Options{})
	fuzzy := Detect(rows, prior, Options{Fuzzy: true})

	inFuzzy := make(map[int]bool)
	for _, i := range fuzzy {
		inFuzzy[i] = true
	}
	for _, i := range exact {
		assert.True(t, inFuzzy[i], "index %d found in exact mode but not fuzzy", i)
	}
	assert.GreaterOrEqual(t, len(fuzzy), len(exact))
}

func TestDetect_MultipleMatchesCountOnce(t *testing.T) {
	rows := []model.Transaction{incoming(day(2024, 1, 15), "Coffee Shop Purchase", "4.50")}
	prior := []model.LedgerTransaction{
		existing("acct-1", day(2024, 1, 15), "Coffee Shop Purchase", "4.50"),
		existing("acct-1", day(2024, 1, 15), "Coffee Shop Purchase", "4.50"),
	}
	dupes := Detect(rows, prior, Options{})
	assert.Equal(t, []int{0}, dupes)
}

func TestDetect_CrossAccountNeverDuplicate(t *testing.T) {
	rows := []model.Transaction{incoming(day(2024, 1, 15), "Coffee Shop Purchase", "4.50")}
	prior := []model.LedgerTransaction{existing("acct-2", day(2024, 1, 15), "Coffee Shop Purchase", "4.50")}

	assert.Empty(t, Detect(rows, prior, Options{AccountID: "acct-1"}))
	// Without an account filter the caller is responsible for scoping.
	assert.Equal(t, []int{0}, Detect(rows, prior, Options{}))
}

func TestDetect_OrderedIndices(t *testing.T) {
	rows := []model.Transaction{
		incoming(day(2024, 1, 15), "A", "1.00"),
		incoming(day(2024, 1, 15), "B", "2.00"),
		incoming(day(2024, 1, 15), "C", "3.00"),
	}
	prior := []model.LedgerTransaction{
		existing("acct-1", day(2024, 1, 15), "C", "3.00"),
		existing("acct-1", day(2024, 1, 15), "A", "1.00"),
	}
	dupes := Detect(rows, prior, Options{})
	require.Equal(t, []int{0, 2}, dupes)
}

func TestDetect_CustomThreshold(t *testing.T) {
	rows := []model.Transaction{incoming(day(2024, 1, 15), "STARBUCKS #123 MAIN ST", "4.50")}
	prior := []model.LedgerTransaction{existing("acct-1", day(2024, 1, 15), "STARBUCKS MAIN STREET", "4.50")}

	// A cutoff above the pair's similarity suppresses the match.
	assert.Empty(t, Detect(rows, prior, Options{Fuzzy: true, Threshold: 0.95}))
	assert.Equal(t, []int{0}, Detect(rows, prior, Options{Fuzzy: true, Threshold: 0.5}))
}
