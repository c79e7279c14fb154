package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRow maps a CSV header column name to the row's value for that column.
type RawRow map[string]string

// Candidate is a parsed but not-yet-committed transaction row awaiting
// category/class assignment.
type Candidate struct {
	ID  string // random, assigned at parse time
	Raw RawRow

	// Derived at parse time by the bank-format parser.
	Date        time.Time
	Description string
	Amount      decimal.Decimal // absolute value
	Income      bool
	Degraded    bool // amount or date fell back to a default

	// User-editable during the categorize step. CategoryID/CategoryName/Class
	// may be pre-filled by the description mapper.
	CategoryID           int
	CategoryName         string
	Class                Class
	IsTransfer           bool
	SourceAccountID      int
	DestinationAccountID int
	WeddingRelated       bool
	WeddingCategory      string
}

// Ready reports whether the candidate can be committed: it has both a
// category and a class, or it is a transfer with a destination account.
func (c Candidate) Ready() bool {
	if c.IsTransfer {
		return c.DestinationAccountID != 0
	}
	return c.CategoryID != 0 && c.Class != ""
}

// Type returns the accounting type inferred by the bank-format parser.
// The budgeting Class never feeds into this.
func (c Candidate) Type() TransactionType {
	if c.Income {
		return TypeIncome
	}
	return TypeExpense
}
