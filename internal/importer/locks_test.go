package importer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountLocks_Serializes(t *testing.T) {
	locks := newAccountLocks()

	var mu sync.Mutex
	active := 0
	maxActive := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.acquire("acct-1")
			defer unlock()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
}

func TestAccountLocks_DistinctAccountsIndependent(t *testing.T) {
	locks := newAccountLocks()

	unlock1 := locks.acquire("acct-1")
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2 := locks.acquire("acct-2")
		unlock2()
		close(done)
	}()
	<-done // would deadlock if accounts shared one lock
}
