package model

import "github.com/shopspring/decimal"

// Transaction is one recognized row from a holder's transaction block.
// Dates are kept exactly as printed; the statement layout omits the year.
type Transaction struct {
	TransDate   string
	PostDate    string
	Description string // raw text between the dates and the amount
	Category    Category
	Amount      decimal.Decimal
}

// StatementAccount accumulates one holder's transaction block.
type StatementAccount struct {
	Holder       string
	AccountID    string // digits from the holder header line
	Transactions []Transaction
	Total        decimal.Decimal // running sum of row amounts
	Verified     bool            // set when the trailer total reconciles
	Rows         int
}

// Document is the per-session ledger threaded through successive page
// parses. ActiveHolder and ContinuationPending carry parser state across
// page boundaries; at most one holder is active at a time.
type Document struct {
	Accounts            map[string]*StatementAccount
	ActiveHolder        string
	ContinuationPending bool

	order []string
}

// NewDocument returns an empty document for a new analysis session.
func NewDocument() *Document {
	return &Document{Accounts: make(map[string]*StatementAccount)}
}

// EnsureAccount returns the account for holder, creating it on first
// sight. Re-encountering a header never resets accumulated rows.
func (d *Document) EnsureAccount(holder, accountID string) *StatementAccount {
	if acct, ok := d.Accounts[holder]; ok {
		return acct
	}
	acct := &StatementAccount{
		Holder:    holder,
		AccountID: accountID,
		Total:     decimal.Zero,
	}
	d.Accounts[holder] = acct
	d.order = append(d.order, holder)
	return acct
}

// Active returns the account for the active holder, or nil when idle.
func (d *Document) Active() *StatementAccount {
	if d.ActiveHolder == "" {
		return nil
	}
	return d.Accounts[d.ActiveHolder]
}

// Holders returns holder names in first-seen order.
func (d *Document) Holders() []string {
	return append([]string(nil), d.order...)
}
