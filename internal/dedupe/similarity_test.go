package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Identical(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Coffee Shop", "Coffee Shop"))
}

func TestSimilarity_CaseAndPunctuation(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("COFFEE-SHOP", "coffee shop"))
}

func TestSimilarity_StoreNumbersIgnored(t *testing.T) {
	// All-digit tokens are dropped, so store numbers never separate
	// two exports of the same merchant.
	assert.Equal(t, 1.0, Similarity("STARBUCKS #123", "STARBUCKS #9944"))
}

func TestSimilarity_Containment(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("STARBUCKS", "STARBUCKS MAIN STREET"))
}

func TestSimilarity_ReformattedMerchant(t *testing.T) {
	score := Similarity("STARBUCKS #123 MAIN ST", "STARBUCKS MAIN STREET")
	assert.GreaterOrEqual(t, score, 0.8)
}

func TestSimilarity_UnrelatedMerchants(t *testing.T) {
	score := Similarity("Coffee Shop Purchase", "Hardware Store Refund")
	assert.Less(t, score, 0.5)
}

func TestSimilarity_Empty(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("", "Coffee"))
	// Descriptions that normalize to nothing compare equal.
	assert.Equal(t, 1.0, Similarity("#123", "456"))
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "starbucks main st", normalizeDescription("STARBUCKS #123  MAIN ST."))
	assert.Equal(t, "", normalizeDescription("12345"))
}

func TestTokenOverlap(t *testing.T) {
	assert.Equal(t, 1.0, tokenOverlap([]string{"a", "b"}, []string{"b", "a"}))
	assert.Equal(t, 0.5, tokenOverlap([]string{"a", "b", "c"}, []string{"a", "b", "d"}))
	assert.Equal(t, 0.0, tokenOverlap([]string{"a"}, []string{"b"}))
}
