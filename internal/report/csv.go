package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finbuddy-dev/finbuddy/internal/model"
)

// Header is the CSV header for transaction exports.
const Header = "holder,account_id,trans_date,post_date,description,category,amount"

const (
	numFields    = 7
	colHolder    = 0
	colAccountID = 1
	colTransDate = 2
	colPostDate  = 3
	colDesc      = 4
	colCategory  = 5
	colAmount    = 6
)

// TransactionRow is one exported transaction with its holder context.
type TransactionRow struct {
	Holder      string
	AccountID   string
	TransDate   string
	PostDate    string
	Description string
	Category    model.Category
	Amount      decimal.Decimal
}

// Rows flattens a document into export rows, holders in statement
// order, transactions in row order.
func Rows(doc *model.Document) []TransactionRow {
	var rows []TransactionRow
	for _, holder := range doc.Holders() {
		acct := doc.Accounts[holder]
		for _, tx := range acct.Transactions {
			rows = append(rows, TransactionRow{
				Holder:      acct.Holder,
				AccountID:   acct.AccountID,
				TransDate:   tx.TransDate,
				PostDate:    tx.PostDate,
				Description: tx.Description,
				Category:    tx.Category,
				Amount:      tx.Amount,
			})
		}
	}
	return rows
}

// WriteRows writes rows as CSV (including header).
func WriteRows(w io.Writer, rows []TransactionRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadRows reads all transaction rows from a CSV reader.
func ReadRows(r io.Reader) ([]TransactionRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var rows []TransactionRow
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MarshalRow converts a TransactionRow to a CSV record.
func MarshalRow(row TransactionRow) []string {
	rec := make([]string, numFields)
	rec[colHolder] = row.Holder
	rec[colAccountID] = row.AccountID
	rec[colTransDate] = row.TransDate
	rec[colPostDate] = row.PostDate
	rec[colDesc] = row.Description
	rec[colCategory] = string(row.Category)
	rec[colAmount] = row.Amount.StringFixed(2)
	return rec
}

// UnmarshalRow converts a CSV record to a TransactionRow.
func UnmarshalRow(rec []string) (TransactionRow, error) {
	if len(rec) != numFields {
		return TransactionRow{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}

	category, err := model.ParseCategory(rec[colCategory])
	if err != nil {
		return TransactionRow{}, fmt.Errorf("parsing category %q: %w", rec[colCategory], err)
	}

	amount, err := decimal.NewFromString(rec[colAmount])
	if err != nil {
		return TransactionRow{}, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}

	return TransactionRow{
		Holder:      rec[colHolder],
		AccountID:   rec[colAccountID],
		TransDate:   rec[colTransDate],
		PostDate:    rec[colPostDate],
		Description: rec[colDesc],
		Category:    category,
		Amount:      amount,
	}, nil
}
