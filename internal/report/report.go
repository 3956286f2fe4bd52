// Package report summarizes analyzed statements for budgeting.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbuddy-dev/finbuddy/internal/model"
	"github.com/finbuddy-dev/finbuddy/internal/statement"
)

// Report is the budgeting summary for one analyzed statement. Amounts
// are formatted dollar strings; the exact figures live in the CSV
// export.
type Report struct {
	ID            string          `json:"id"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Vendor        string          `json:"vendor"`
	Source        string          `json:"source"`
	Holders       []HolderSummary `json:"holders"`
	TotalExpenses string          `json:"total_expenses"`
}

// HolderSummary is one holder's block: its reconciliation outcome, its
// per-category breakdown, and the transactions themselves.
type HolderSummary struct {
	Holder        string            `json:"holder"`
	AccountID     string            `json:"account_id"`
	Verified      bool              `json:"verified"`
	Rows          int               `json:"rows"`
	TotalExpenses string            `json:"total_expenses"`
	Categories    []CategoryExpense `json:"categories"`
	Transactions  []TransactionLine `json:"transactions"`
}

// CategoryExpense is one category's share of a holder's spending.
type CategoryExpense struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
	Expense  string         `json:"expense"`
}

// TransactionLine is one transaction as it appears in the report.
type TransactionLine struct {
	TransDate   string         `json:"trans_date"`
	PostDate    string         `json:"post_date"`
	Description string         `json:"description"`
	Category    model.Category `json:"category"`
	Amount      string         `json:"amount"`
}

// Build summarizes doc. Holders appear in statement order; categories
// within a holder are sorted by name.
func Build(doc *model.Document, vendor, source string) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Vendor:      vendor,
		Source:      source,
	}

	overall := decimal.Zero
	for _, holder := range doc.Holders() {
		acct := doc.Accounts[holder]
		overall = overall.Add(acct.Total)
		r.Holders = append(r.Holders, summarize(acct))
	}
	r.TotalExpenses = statement.FormatUSD(overall)
	return r
}

func summarize(acct *model.StatementAccount) HolderSummary {
	s := HolderSummary{
		Holder:        acct.Holder,
		AccountID:     acct.AccountID,
		Verified:      acct.Verified,
		Rows:          acct.Rows,
		TotalExpenses: statement.FormatUSD(acct.Total),
	}

	totals := make(map[model.Category]decimal.Decimal)
	counts := make(map[model.Category]int)
	for _, tx := range acct.Transactions {
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
		counts[tx.Category]++
		s.Transactions = append(s.Transactions, TransactionLine{
			TransDate:   tx.TransDate,
			PostDate:    tx.PostDate,
			Description: tx.Description,
			Category:    tx.Category,
			Amount:      statement.FormatUSD(tx.Amount),
		})
	}

	categories := make([]model.Category, 0, len(totals))
	for cat := range totals {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	for _, cat := range categories {
		s.Categories = append(s.Categories, CategoryExpense{
			Category: cat,
			Count:    counts[cat],
			Expense:  statement.FormatUSD(totals[cat]),
		})
	}
	return s
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
