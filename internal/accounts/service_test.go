package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/config"
)

func testAccounts() []config.BankAccount {
	return []config.BankAccount{
		{ID: "checking", Name: "Business Checking", Type: "checking", LastFour: "4821"},
		{ID: "savings", Name: "Business Savings", Type: "savings", LastFour: "9934"},
	}
}

func TestService_Exists(t *testing.T) {
	svc := NewService(testAccounts())
	assert.True(t, svc.Exists("checking"))
	assert.True(t, svc.Exists("savings"))
	assert.False(t, svc.Exists("brokerage"))
}

func TestService_Get(t *testing.T) {
	svc := NewService(testAccounts())

	a, ok := svc.Get("checking")
	require.True(t, ok)
	assert.Equal(t, "Business Checking", a.Name)

	_, ok = svc.Get("missing")
	assert.False(t, ok)
}

func TestService_All(t *testing.T) {
	svc := NewService(testAccounts())
	assert.Len(t, svc.All(), 2)

	empty := NewService(nil)
	assert.Empty(t, empty.All())
	assert.False(t, empty.Exists("checking"))
}
