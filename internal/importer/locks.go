package importer

import "sync"

// accountLocks serializes imports per bank account. The registry mutex
// only guards map access; the per-account mutex is held for the whole
// read-window-through-commit scope.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the account and returns its release func.
func (a *accountLocks) acquire(accountID string) func() {
	a.mu.Lock()
	lock, ok := a.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[accountID] = lock
	}
	a.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
