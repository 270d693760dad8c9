package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("Acme LLC")
	assert.Equal(t, "Acme LLC", cfg.Business.Name)
	assert.False(t, cfg.Matching.Fuzzy)
	assert.InDelta(t, 0.8, cfg.Matching.FuzzyThreshold, 0.001)
	assert.Equal(t, "rules/categorization-rules.yaml", cfg.RulesFile)
	assert.Equal(t, "ledger.db", cfg.Storage.Path)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bankfeed.yaml")

	cfg := Default("Acme LLC")
	cfg.BankAccounts = []BankAccount{
		{ID: "checking", Name: "Business Checking", Type: "checking", LastFour: "4821"},
	}
	cfg.Matching.Fuzzy = true

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bankfeed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("business: [not: valid"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
