// Package store persists canonical transactions and credit-card invoices in
// a local sqlite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/grana-dev/grana/internal/model"
)

const dateFormat = "2006-01-02"

// Store wraps the sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the tables exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS invoices (
			id TEXT PRIMARY KEY,
			account_id INTEGER NOT NULL,
			month INTEGER NOT NULL,
			year INTEGER NOT NULL,
			UNIQUE (account_id, month, year)
		);`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			date DATE NOT NULL,
			description TEXT,
			category_id INTEGER,
			category TEXT,
			account_id INTEGER NOT NULL,
			account TEXT,
			account_color TEXT,
			class TEXT,
			amount TEXT NOT NULL,
			destination_account_id INTEGER,
			destination_account TEXT,
			wedding_category TEXT,
			invoice_id TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// CreateTransaction stores one canonical transaction and returns its id,
// assigning one if the record has none. The amount must not be negative;
// direction is carried by the type, never by the amount sign.
func (s *Store) CreateTransaction(ctx context.Context, txn model.CanonicalTransaction) (string, error) {
	if txn.Amount.IsNegative() {
		return "", fmt.Errorf("transaction %q: negative amount %s", txn.Description, txn.Amount)
	}
	if txn.Type != model.TypeIncome && txn.Type != model.TypeExpense {
		return "", fmt.Errorf("transaction %q: invalid type %q", txn.Description, txn.Type)
	}
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions
			(id, type, date, description, category_id, category, account_id, account,
			 account_color, class, amount, destination_account_id, destination_account,
			 wedding_category, invoice_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, string(txn.Type), txn.Date.Format(dateFormat), txn.Description,
		txn.CategoryID, txn.Category, txn.AccountID, txn.Account,
		txn.AccountColor, string(txn.Class), txn.Amount.StringFixed(2),
		txn.DestinationAccountID, txn.DestinationAccount,
		txn.WeddingCategory, txn.InvoiceID)
	if err != nil {
		return "", fmt.Errorf("inserting transaction: %w", err)
	}
	return txn.ID, nil
}

// ListTransactions returns all stored transactions, newest date first.
func (s *Store) ListTransactions(ctx context.Context) ([]model.CanonicalTransaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, date, description, category_id, category, account_id, account,
			account_color, class, amount, destination_account_id, destination_account,
			wedding_category, invoice_id
		 FROM transactions ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.CanonicalTransaction
	for rows.Next() {
		var txn model.CanonicalTransaction
		var txnType, class, date, amount string
		if err := rows.Scan(&txn.ID, &txnType, &date, &txn.Description,
			&txn.CategoryID, &txn.Category, &txn.AccountID, &txn.Account,
			&txn.AccountColor, &class, &amount, &txn.DestinationAccountID,
			&txn.DestinationAccount, &txn.WeddingCategory, &txn.InvoiceID); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txn.Type = model.TransactionType(txnType)
		txn.Class = model.Class(class)
		txn.Date, err = time.ParseInLocation(dateFormat, date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", date, err)
		}
		txn.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing amount %q: %w", amount, err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// CreateInvoice stores a billing-cycle invoice.
func (s *Store) CreateInvoice(ctx context.Context, inv model.Invoice) error {
	if inv.Month < 1 || inv.Month > 12 {
		return fmt.Errorf("invalid invoice month %d", inv.Month)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invoices (id, account_id, month, year) VALUES (?, ?, ?, ?)`,
		inv.ID, inv.AccountID, inv.Month, inv.Year)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", err)
	}
	return nil
}

// ListInvoicesForAccount returns the invoices for one account, newest first.
func (s *Store) ListInvoicesForAccount(ctx context.Context, accountID int) ([]model.Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, month, year FROM invoices
		 WHERE account_id = ? ORDER BY year DESC, month DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("querying invoices: %w", err)
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		if err := rows.Scan(&inv.ID, &inv.AccountID, &inv.Month, &inv.Year); err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
