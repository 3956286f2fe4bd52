package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAccountCreatesOnce(t *testing.T) {
	doc := NewDocument()

	acct := doc.EnsureAccount("JANE DOE", "1234")
	require.NotNil(t, acct)
	assert.Equal(t, "JANE DOE", acct.Holder)
	assert.Equal(t, "1234", acct.AccountID)
	assert.True(t, acct.Total.IsZero())
	assert.False(t, acct.Verified)

	acct.Transactions = append(acct.Transactions, Transaction{Description: "COFFEE"})
	acct.Total = decimal.RequireFromString("4.50")

	// A second header for the same holder must not reset anything.
	again := doc.EnsureAccount("JANE DOE", "1234")
	assert.Same(t, acct, again)
	assert.Len(t, again.Transactions, 1)
	assert.Equal(t, "4.50", again.Total.StringFixed(2))
}

func TestHoldersOrder(t *testing.T) {
	doc := NewDocument()
	doc.EnsureAccount("JANE DOE", "1234")
	doc.EnsureAccount("JOHN DOE", "5678")
	doc.EnsureAccount("JANE DOE", "1234")

	assert.Equal(t, []string{"JANE DOE", "JOHN DOE"}, doc.Holders())
}

func TestActive(t *testing.T) {
	doc := NewDocument()
	assert.Nil(t, doc.Active())

	acct := doc.EnsureAccount("JANE DOE", "1234")
	doc.ActiveHolder = "JANE DOE"
	assert.Same(t, acct, doc.Active())

	doc.ActiveHolder = ""
	assert.Nil(t, doc.Active())
}
