package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the accounting direction of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Class is a budgeting tag, orthogonal to TransactionType.
type Class string

const (
	ClassEssential    Class = "essential"
	ClassNonEssential Class = "non-essential"
	ClassInvestment   Class = "investment"
	ClassIncome       Class = "income"
	ClassBusiness     Class = "business"
)

// Classes lists all valid budgeting classes.
func Classes() []Class {
	return []Class{ClassEssential, ClassNonEssential, ClassInvestment, ClassIncome, ClassBusiness}
}

// ValidClass reports whether c is a known budgeting class.
func ValidClass(c Class) bool {
	for _, k := range Classes() {
		if c == k {
			return true
		}
	}
	return false
}

// TransferCategory is the synthetic category name stamped on transfer legs.
// Transfers carry no real category id.
const TransferCategory = "Transferência"

// CanonicalTransaction is the assembled output record handed to the store.
type CanonicalTransaction struct {
	ID           string
	Type         TransactionType
	Date         time.Time
	Description  string
	CategoryID   int // 0 for transfers
	Category     string
	AccountID    int
	Account      string
	AccountColor string
	Class        Class
	Amount       decimal.Decimal // always positive; direction lives in Type

	// Transfer leg. Zero values when the transaction is not a transfer.
	DestinationAccountID int
	DestinationAccount   string

	WeddingCategory string // free text, empty when not wedding-related
	InvoiceID       string // billing period id for credit-card imports
}

// IsTransfer reports whether the transaction has a destination leg.
func (t CanonicalTransaction) IsTransfer() bool {
	return t.DestinationAccountID != 0
}
