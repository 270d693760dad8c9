// Package accounts provides in-memory lookup over the configured bank
// accounts.
package accounts

import (
	"github.com/bankfeed-dev/bankfeed/internal/config"
)

// Service answers bank account queries for the import engine.
type Service struct {
	accounts []config.BankAccount
	byID     map[string]config.BankAccount
}

// NewService creates a Service from a slice of configured accounts.
func NewService(accounts []config.BankAccount) *Service {
	byID := make(map[string]config.BankAccount, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// All returns all configured accounts.
func (s *Service) All() []config.BankAccount {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (config.BankAccount, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID is configured.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}
