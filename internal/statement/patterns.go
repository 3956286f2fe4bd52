package statement

import (
	"regexp"
	"strings"
)

// Table holds the line patterns for one statement vendor's layout. The
// state machine only ever consults a Table, so a vendor format change
// stays contained here.
type Table struct {
	vendor       string
	header       *regexp.Regexp // holder header: name + account number
	trailer      *regexp.Regexp // block close with declared total
	row          *regexp.Regexp // transaction row
	columnHeader string         // literal line opening a row run
	continuation string         // substring marking a resumed block
}

// Vendor returns the registry name of the layout.
func (t *Table) Vendor() string { return t.vendor }

// CapitalOne returns the pattern table for Capital One credit-card
// statement text. The row description must end alphanumeric so trailing
// whitespace never leaks into the capture; store numbers like
// "WALMART STORE 100" are legitimate endings.
func CapitalOne() *Table {
	return &Table{
		vendor:       "capitalone",
		header:       regexp.MustCompile(`^([A-Z\s]+) #(\d+): Transactions`),
		trailer:      regexp.MustCompile(`^([A-Z\s]+) #(\d+): Total Transactions (\$\d+(?:,\d{3})*\.\d{2})`),
		row:          regexp.MustCompile(`^(\w{3} \d{1,2}) (\w{3} \d{1,2}) ([\w\s\*]+.*?[a-zA-Z0-9]) (\$\d{1,3}(?:,\d{3})*(?:\.\d{1,2}))`),
		columnHeader: "Trans Date Post Date Description Amount",
		continuation: "Transactions (Continued)",
	}
}

// Registry holds named vendor tables.
type Registry struct {
	tables map[string]*Table
}

// NewRegistry creates an empty table registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Register adds a table. Panics on duplicate vendor.
func (r *Registry) Register(t *Table) {
	key := strings.ToLower(t.Vendor())
	if _, ok := r.tables[key]; ok {
		panic("duplicate vendor table: " + key)
	}
	r.tables[key] = t
}

// Get returns the table for vendor, or nil.
func (r *Registry) Get(vendor string) *Table {
	return r.tables[strings.ToLower(vendor)]
}

// DefaultRegistry returns a registry with all built-in vendor tables.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(CapitalOne())
	return r
}
