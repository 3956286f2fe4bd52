package statement

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finbuddy-dev/finbuddy/internal/model"
)

// Categorizer assigns a spending category to a raw row description.
type Categorizer interface {
	Categorize(description string) model.Category
}

// ReconcilePolicy controls what happens when a block's accumulated total
// fails to reconcile against its trailer.
type ReconcilePolicy string

const (
	// ReconcileStrict aborts the session on any reconciliation failure.
	ReconcileStrict ReconcilePolicy = "strict"
	// ReconcileLenient logs the failure and leaves the block unverified.
	// Structural violations and malformed amounts abort in both modes.
	ReconcileLenient ReconcilePolicy = "lenient"
)

// ParsePolicy maps a configuration string to a ReconcilePolicy. Empty
// means strict.
func ParsePolicy(s string) (ReconcilePolicy, error) {
	switch ReconcilePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case ReconcileStrict, "":
		return ReconcileStrict, nil
	case ReconcileLenient:
		return ReconcileLenient, nil
	}
	return "", fmt.Errorf("unknown reconcile policy %q", s)
}

// state tracks progress through one page's lines. Cross-page position
// rides on the Document (active holder, continuation flag), never here:
// a block commonly spans a page break.
type state int

const (
	stateIdle       state = iota // no active holder
	stateHeaderSeen              // holder identified, row run not open
	stateInBlock                 // consuming transaction rows
)

// Parser reconstructs per-holder transaction blocks from page text and
// reconciles each block against its trailer total.
type Parser struct {
	table      *Table
	categorize Categorizer
	policy     ReconcilePolicy
	log        zerolog.Logger
}

// NewParser returns a strict parser over the given vendor table. A nil
// Categorizer leaves rows tagged CategoryUnknown.
func NewParser(table *Table, categorizer Categorizer) *Parser {
	return &Parser{
		table:      table,
		categorize: categorizer,
		policy:     ReconcileStrict,
		log:        zerolog.Nop(),
	}
}

// SetLogger replaces the parser's logger.
func (p *Parser) SetLogger(log zerolog.Logger) { p.log = log }

// SetPolicy replaces the reconciliation policy.
func (p *Parser) SetPolicy(policy ReconcilePolicy) { p.policy = policy }

// ParsePages feeds pages through ParsePage in order, starting at page 1.
func (p *Parser) ParsePages(doc *model.Document, pages []string) error {
	for i, page := range pages {
		if err := p.ParsePage(doc, page, i+1); err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	return nil
}

// ParsePage consumes one page's text, mutating doc. Pages must be fed in
// source order: resumption after a page break depends on the document's
// active holder, and totals accumulate as rows are seen.
//
// Line dispatch order matters. The trailer is checked first so a block
// closes before anything else can match, and the continuation marker is
// checked before the holder header because this vendor prints
// continuation lines that embed the header prefix.
func (p *Parser) ParsePage(doc *model.Document, pageText string, pageNum int) error {
	st := stateIdle
	if doc.ActiveHolder != "" {
		st = stateHeaderSeen
	}

	for _, line := range strings.Split(pageText, "\n") {
		if m := p.table.trailer.FindStringSubmatch(line); m != nil {
			if err := p.closeBlock(doc, m, line); err != nil {
				return err
			}
			st = stateIdle
			continue
		}

		if strings.Contains(line, p.table.continuation) {
			if doc.ActiveHolder == "" {
				return StructuralError{Line: line, Reason: "continuation marker with no active holder"}
			}
			p.log.Info().Int("page", pageNum).Str("holder", doc.ActiveHolder).Msg("block continues")
			doc.ContinuationPending = true
			st = stateInBlock
			continue
		}

		if m := p.table.header.FindStringSubmatch(line); m != nil {
			holder, account := m[1], m[2]
			doc.EnsureAccount(holder, account)
			doc.ActiveHolder = holder
			st = stateHeaderSeen
			p.log.Info().Str("holder", holder).Str("account", account).Msg("processing transactions")
			continue
		}

		if line == p.table.columnHeader && doc.ActiveHolder != "" {
			st = stateInBlock
			doc.ContinuationPending = false
			p.log.Debug().Int("page", pageNum).Str("holder", doc.ActiveHolder).Msg("row section open")
			continue
		}

		if st == stateInBlock {
			// Any line reaching the row stage is evidence the
			// continuation arrived, matched or not.
			doc.ContinuationPending = false
			if err := p.consumeRow(doc, line); err != nil {
				return err
			}
			continue
		}

		p.log.Debug().Str("line", line).Msg("discarding line")
	}
	return nil
}

func (p *Parser) consumeRow(doc *model.Document, line string) error {
	m := p.table.row.FindStringSubmatch(line)
	if m == nil {
		p.log.Debug().Str("line", line).Msg("discarding possible transaction line")
		return nil
	}

	amount, err := ParseAmount(m[4])
	if err != nil {
		return err
	}

	description := m[3]
	category := model.CategoryUnknown
	if p.categorize != nil {
		category = p.categorize.Categorize(description)
	}

	acct := doc.Active()
	acct.Transactions = append(acct.Transactions, model.Transaction{
		TransDate:   m[1],
		PostDate:    m[2],
		Description: description,
		Category:    category,
		Amount:      amount,
	})
	acct.Total = acct.Total.Add(amount)
	acct.Rows++

	p.log.Debug().
		Str("description", description).
		Str("category", string(category)).
		Str("amount", m[4]).
		Msg("transaction row")
	return nil
}

// closeBlock reconciles the active holder's block against the trailer's
// declared total. Both sides are compared through the same currency
// rendering so formatting noise cancels out.
func (p *Parser) closeBlock(doc *model.Document, m []string, line string) error {
	holder := m[1]
	if doc.ActiveHolder == "" {
		return StructuralError{Line: line, Reason: "trailer with no active holder"}
	}
	if holder != doc.ActiveHolder {
		reason := fmt.Sprintf("trailer holder %q does not match active holder %q", holder, doc.ActiveHolder)
		return StructuralError{Line: line, Reason: reason}
	}
	if doc.ContinuationPending {
		return StructuralError{Line: line, Reason: "block closed while a continuation was still pending"}
	}

	declared, err := ParseAmount(m[3])
	if err != nil {
		return err
	}

	acct := doc.Active()
	found := FormatUSD(acct.Total)
	declaredUSD := FormatUSD(declared)

	if acct.Total.IsZero() || found != declaredUSD {
		rerr := ReconciliationError{Holder: holder, Found: found, Declared: declaredUSD}
		if p.policy == ReconcileLenient {
			p.log.Warn().
				Str("holder", holder).
				Str("found", found).
				Str("declared", declaredUSD).
				Msg("reconciliation failed, leaving block unverified")
			p.endBlock(doc)
			return nil
		}
		return rerr
	}

	acct.Verified = true
	p.log.Info().Str("holder", holder).Str("total", found).Msg("block total verified")
	p.endBlock(doc)
	return nil
}

func (p *Parser) endBlock(doc *model.Document) {
	doc.ActiveHolder = ""
	doc.ContinuationPending = false
}
