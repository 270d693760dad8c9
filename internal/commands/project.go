package commands

import (
	"fmt"
	"path/filepath"

	"github.com/bankfeed-dev/bankfeed/internal/accounts"
	"github.com/bankfeed-dev/bankfeed/internal/categorize"
	"github.com/bankfeed-dev/bankfeed/internal/config"
)

// project bundles the pieces every command loads from a project dir.
type project struct {
	root     string
	cfg      *config.Config
	accounts *accounts.Service
	rules    []categorize.Rule
}

// loadProject resolves dir and reads bankfeed.yaml plus the
// categorization rules file. A missing rules file falls back to the
// built-in table.
func loadProject(dir string) (*project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, "bankfeed.yaml"))
	if err != nil {
		return nil, err
	}

	rules := categorize.DefaultRules()
	if cfg.RulesFile != "" {
		if loaded, err := categorize.LoadRules(filepath.Join(root, cfg.RulesFile)); err == nil {
			rules = loaded
		}
	}

	return &project{
		root:     root,
		cfg:      cfg,
		accounts: accounts.NewService(cfg.BankAccounts),
		rules:    rules,
	}, nil
}

// storagePath resolves the ledger database path against the project root.
func (p *project) storagePath() string {
	if filepath.IsAbs(p.cfg.Storage.Path) {
		return p.cfg.Storage.Path
	}
	return filepath.Join(p.root, p.cfg.Storage.Path)
}
