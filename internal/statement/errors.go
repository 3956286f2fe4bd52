package statement

import "fmt"

// StructuralError reports a header/trailer/continuation protocol violation
// in the statement text. Always fatal to the session.
type StructuralError struct {
	Line   string // offending raw line
	Reason string
}

func (e StructuralError) Error() string {
	return fmt.Sprintf("structural parse error: %s (line %q)", e.Reason, e.Line)
}

// ReconciliationError reports a block whose accumulated total does not
// match the trailer's declared total, or that closed with no rows. Found
// and Declared carry the same currency rendering used for the comparison.
type ReconciliationError struct {
	Holder   string
	Found    string
	Declared string
}

func (e ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed for %q: found %s, statement declares %s", e.Holder, e.Found, e.Declared)
}

// AmountError reports a row or trailer amount that failed decimal parsing.
type AmountError struct {
	Raw string
	Err error
}

func (e AmountError) Error() string {
	return fmt.Sprintf("parsing amount %q: %v", e.Raw, e.Err)
}

func (e AmountError) Unwrap() error { return e.Err }
