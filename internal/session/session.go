// Package session drives the multi-step import flow as an explicit state
// machine, independent of any command-line or UI harness.
package session

import (
	"context"
	"fmt"
	"io"

	"github.com/grana-dev/grana/internal/assemble"
	"github.com/grana-dev/grana/internal/importer"
	"github.com/grana-dev/grana/internal/mapper"
	"github.com/grana-dev/grana/internal/model"
)

// Step is the current position in the import flow.
type Step string

const (
	StepSelectImporter Step = "select-importer"
	StepSelectInvoice  Step = "select-invoice"
	StepUpload         Step = "upload"
	StepCategorize     Step = "categorize"
	StepSuccess        Step = "success"
)

// InvoiceLister fetches the selectable invoices for an account.
type InvoiceLister interface {
	ListInvoicesForAccount(ctx context.Context, accountID int) ([]model.Invoice, error)
}

// Session is one import flow instance. All candidate edits happen in memory
// until Commit assembles the ready subset.
type Session struct {
	step       Step
	parser     importer.Parser
	invoiceID  string
	invoices   []model.Invoice
	candidates []model.Candidate
}

// New starts a session at the format-selection step.
func New() *Session {
	return &Session{step: StepSelectImporter}
}

// Step returns the current step.
func (s *Session) Step() Step { return s.step }

// Format returns the selected format metadata. Zero before SelectFormat.
func (s *Session) Format() importer.Format {
	if s.parser == nil {
		return importer.Format{}
	}
	return s.parser.Format()
}

// InvoiceID returns the selected invoice period, if any.
func (s *Session) InvoiceID() string { return s.invoiceID }

// Invoices returns the invoices fetched for the invoice-selection step.
func (s *Session) Invoices() []model.Invoice { return s.invoices }

// Candidates returns the parsed candidates. Every successfully parsed row is
// here, ready or not.
func (s *Session) Candidates() []model.Candidate { return s.candidates }

// Candidate returns a pointer to the i-th candidate for editing.
func (s *Session) Candidate(i int) (*model.Candidate, error) {
	if i < 0 || i >= len(s.candidates) {
		return nil, fmt.Errorf("no candidate at index %d", i)
	}
	return &s.candidates[i], nil
}

func (s *Session) require(step Step) error {
	if s.step != step {
		return fmt.Errorf("step %s not allowed at %s", step, s.step)
	}
	return nil
}

// SelectFormat picks a bank format. Invoice-scoped formats route through the
// invoice-selection step with invoices fetched for invoiceAccountID; an empty
// invoice list goes straight to upload so the user is never stuck with zero
// selectable options.
func (s *Session) SelectFormat(ctx context.Context, reg *importer.Registry, formatID string, invoices InvoiceLister, invoiceAccountID int) error {
	if err := s.require(StepSelectImporter); err != nil {
		return err
	}

	p := reg.Get(formatID)
	if p == nil {
		return fmt.Errorf("unknown format %q", formatID)
	}
	s.parser = p

	if !p.Format().RequiresInvoice {
		s.step = StepUpload
		return nil
	}

	list, err := invoices.ListInvoicesForAccount(ctx, invoiceAccountID)
	if err != nil {
		return fmt.Errorf("listing invoices: %w", err)
	}
	if len(list) == 0 {
		s.step = StepUpload
		return nil
	}
	s.invoices = list
	s.step = StepSelectInvoice
	return nil
}

// SelectInvoice picks one of the fetched invoices by period id.
func (s *Session) SelectInvoice(invoiceID string) error {
	if err := s.require(StepSelectInvoice); err != nil {
		return err
	}
	for _, inv := range s.invoices {
		if inv.ID == invoiceID {
			s.invoiceID = invoiceID
			s.step = StepUpload
			return nil
		}
	}
	return fmt.Errorf("invoice %q is not selectable", invoiceID)
}

// Upload parses the statement. A structural parse failure keeps the session
// on the upload step and returns the error. On success every parsed row
// becomes exactly one candidate and the session moves to categorize.
func (s *Session) Upload(r io.Reader) error {
	if err := s.require(StepUpload); err != nil {
		return err
	}
	cands, err := s.parser.Parse(r)
	if err != nil {
		return err
	}
	s.candidates = cands
	s.step = StepCategorize
	return nil
}

// ApplyRules runs the description mapper over uncategorized candidates.
// Returns the number of candidates mapped.
func (s *Session) ApplyRules(rs *mapper.RuleSet) (int, error) {
	if err := s.require(StepCategorize); err != nil {
		return 0, err
	}
	return rs.Apply(s.candidates), nil
}

// SetCategory assigns a category and class to the i-th candidate.
func (s *Session) SetCategory(i int, cat model.Category, class model.Class) error {
	if err := s.require(StepCategorize); err != nil {
		return err
	}
	if !model.ValidClass(class) {
		return fmt.Errorf("invalid class %q", class)
	}
	c, err := s.Candidate(i)
	if err != nil {
		return err
	}
	c.IsTransfer = false
	c.CategoryID = cat.ID
	c.CategoryName = cat.Name
	c.Class = class
	return nil
}

// SetTransfer marks the i-th candidate as a transfer between two accounts.
func (s *Session) SetTransfer(i, sourceAccountID, destinationAccountID int) error {
	if err := s.require(StepCategorize); err != nil {
		return err
	}
	c, err := s.Candidate(i)
	if err != nil {
		return err
	}
	c.IsTransfer = true
	c.CategoryID = 0
	c.CategoryName = ""
	c.Class = ""
	c.SourceAccountID = sourceAccountID
	c.DestinationAccountID = destinationAccountID
	return nil
}

// SetWedding tags the i-th candidate with a free-text wedding category.
func (s *Session) SetWedding(i int, weddingCategory string) error {
	if err := s.require(StepCategorize); err != nil {
		return err
	}
	c, err := s.Candidate(i)
	if err != nil {
		return err
	}
	c.WeddingRelated = weddingCategory != ""
	c.WeddingCategory = weddingCategory
	return nil
}

// Remove deletes the i-th candidate from the session.
func (s *Session) Remove(i int) error {
	if err := s.require(StepCategorize); err != nil {
		return err
	}
	if i < 0 || i >= len(s.candidates) {
		return fmt.Errorf("no candidate at index %d", i)
	}
	s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
	return nil
}

// ReadyCount returns how many candidates would survive Commit.
func (s *Session) ReadyCount() int {
	n := 0
	for _, c := range s.candidates {
		if c.Ready() {
			n++
		}
	}
	return n
}

// Back returns from categorize to upload, discarding parsed candidates.
func (s *Session) Back() error {
	if err := s.require(StepCategorize); err != nil {
		return err
	}
	s.candidates = nil
	s.step = StepUpload
	return nil
}

// Commit assembles the ready candidates into canonical transactions and moves
// the session to success. Persisting the result is the caller's job.
func (s *Session) Commit(account model.Account, accounts assemble.AccountNamer) (assemble.Result, error) {
	if err := s.require(StepCategorize); err != nil {
		return assemble.Result{}, err
	}
	res := assemble.Convert(s.candidates, account, accounts, s.invoiceID)
	s.step = StepSuccess
	return res, nil
}

// Restart returns a finished session to the format-selection step.
func (s *Session) Restart() error {
	if err := s.require(StepSuccess); err != nil {
		return err
	}
	*s = Session{step: StepSelectImporter}
	return nil
}
