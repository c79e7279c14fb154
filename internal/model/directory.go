package model

// AccountKind classifies accounts in the account directory.
type AccountKind string

const (
	AccountChecking   AccountKind = "checking"
	AccountSavings    AccountKind = "savings"
	AccountCredit     AccountKind = "credit"
	AccountInvestment AccountKind = "investment"
	AccountCash       AccountKind = "cash"
)

// Account is a row in directories/accounts.csv.
type Account struct {
	ID    int
	Name  string
	Kind  AccountKind
	Color string // hex color stamped onto output transactions
}

// Category is a row in directories/categories.csv.
type Category struct {
	ID   int
	Name string
}

// Invoice is a credit-card billing cycle, identified by (account, month, year).
type Invoice struct {
	ID        string // period id, e.g. "2025-03"
	AccountID int
	Month     int
	Year      int
}
