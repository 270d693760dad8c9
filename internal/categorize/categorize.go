// Package categorize assigns best-effort category labels to normalized
// transactions using an ordered keyword rule table.
package categorize

import (
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Rule maps a set of description keywords to a category. Keywords are
// matched case-insensitively by substring containment.
type Rule struct {
	Keywords []string `yaml:"keywords"`
	Category string   `yaml:"category"`
}

// DefaultRules returns the built-in rule table. Order matters: the
// first matching rule wins and later rules are not consulted.
func DefaultRules() []Rule {
	return []Rule{
		{Keywords: []string{"starbucks", "coffee", "restaurant", "mcdonald", "burger", "pizza", "cafe", "diner"}, Category: "Food & Dining"},
		{Keywords: []string{"shell", "chevron", "exxon", "gas", "fuel station", "uber", "lyft", "parking", "transit"}, Category: "Transportation"},
		{Keywords: []string{"salary", "payroll", "payroll deposit", "direct deposit", "paycheck"}, Category: "Income"},
		{Keywords: []string{"grocery", "safeway", "kroger", "whole foods", "trader joe", "supermarket"}, Category: "Groceries"},
		{Keywords: []string{"amazon", "walmart", "target", "ebay", "best buy"}, Category: "Shopping"},
		{Keywords: []string{"netflix", "spotify", "hulu", "cinema", "theater", "steam"}, Category: "Entertainment"},
		{Keywords: []string{"rent", "mortgage", "landlord", "hoa"}, Category: "Housing"},
		{Keywords: []string{"electric", "water bill", "utility", "internet", "comcast", "verizon", "at&t"}, Category: "Utilities"},
	}
}

// Apply annotates each transaction with the category of the first rule
// whose keyword appears in the description. Unmatched rows keep an
// empty category so the absence stays observable downstream; no
// catch-all label is applied at this layer. The input is not mutated.
func Apply(rules []Rule, txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		out[i] = txn
		if category, ok := Match(rules, txn.Description); ok {
			out[i].Category = category
		}
	}
	return out
}

// Match returns the category for a description, or false when no rule
// keyword is contained in it.
func Match(rules []Rule, description string) (string, bool) {
	desc := strings.ToLower(description)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(desc, strings.ToLower(kw)) {
				return rule.Category, true
			}
		}
	}
	return "", false
}
