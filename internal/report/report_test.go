package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuddy-dev/finbuddy/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleDocument() *model.Document {
	doc := model.NewDocument()

	jane := doc.EnsureAccount("JANE DOE", "1234")
	jane.Transactions = []model.Transaction{
		{TransDate: "Jan 3", PostDate: "Jan 5", Description: "WALMART STORE 100", Category: model.CategoryShopping, Amount: dec("45.67")},
		{TransDate: "Jan 4", PostDate: "Jan 6", Description: "STARBUCKS 1234", Category: model.CategoryFood, Amount: dec("4.50")},
		{TransDate: "Jan 9", PostDate: "Jan 10", Description: "GONG CHA", Category: model.CategoryFood, Amount: dec("6.25")},
	}
	jane.Total = dec("56.42")
	jane.Rows = 3
	jane.Verified = true

	john := doc.EnsureAccount("JOHN SMITH", "5678")
	john.Transactions = []model.Transaction{
		{TransDate: "Feb 1", PostDate: "Feb 2", Description: "COMCAST CABLE", Category: model.CategoryUtilities, Amount: dec("89.99")},
	}
	john.Total = dec("89.99")
	john.Rows = 1

	return doc
}

func TestBuild(t *testing.T) {
	r := Build(sampleDocument(), "capitalone", "statement.pdf")

	assert.NotEmpty(t, r.ID)
	assert.False(t, r.GeneratedAt.IsZero())
	assert.Equal(t, "capitalone", r.Vendor)
	assert.Equal(t, "statement.pdf", r.Source)
	assert.Equal(t, "$146.41", r.TotalExpenses)

	require.Len(t, r.Holders, 2)
	jane := r.Holders[0]
	assert.Equal(t, "JANE DOE", jane.Holder)
	assert.Equal(t, "1234", jane.AccountID)
	assert.True(t, jane.Verified)
	assert.Equal(t, 3, jane.Rows)
	assert.Equal(t, "$56.42", jane.TotalExpenses)
	require.Len(t, jane.Transactions, 3)
	assert.Equal(t, "$45.67", jane.Transactions[0].Amount)

	require.Len(t, jane.Categories, 2)
	assert.Equal(t, CategoryExpense{Category: model.CategoryFood, Count: 2, Expense: "$10.75"}, jane.Categories[0])
	assert.Equal(t, CategoryExpense{Category: model.CategoryShopping, Count: 1, Expense: "$45.67"}, jane.Categories[1])

	john := r.Holders[1]
	assert.Equal(t, "JOHN SMITH", john.Holder)
	assert.False(t, john.Verified)
	assert.Equal(t, "$89.99", john.TotalExpenses)
}

func TestBuild_EmptyDocument(t *testing.T) {
	r := Build(model.NewDocument(), "capitalone", "statement.txt")
	assert.Empty(t, r.Holders)
	assert.Equal(t, "$0.00", r.TotalExpenses)
}

func TestReport_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "finbuddy-report.json")
	r := Build(sampleDocument(), "capitalone", "statement.pdf")
	require.NoError(t, r.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, len(data) > 0 && data[len(data)-1] == '\n')

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, r.TotalExpenses, got.TotalExpenses)
	assert.Len(t, got.Holders, 2)
}
