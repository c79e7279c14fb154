package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grana-dev/grana/internal/model"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTxn() model.CanonicalTransaction {
	return model.CanonicalTransaction{
		Type:         model.TypeExpense,
		Date:         time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
		Description:  "Loja X",
		CategoryID:   2,
		Category:     "Mercado",
		AccountID:    1,
		Account:      "Conta Corrente",
		AccountColor: "#820AD1",
		Class:        model.ClassEssential,
		Amount:       decimal.RequireFromString("50.00"),
	}
}

func TestCreateTransaction_RoundTrip(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	id, err := s.CreateTransaction(ctx, sampleTxn())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	txns, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)

	got := txns[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, model.TypeExpense, got.Type)
	assert.Equal(t, "Loja X", got.Description)
	assert.Equal(t, "50.00", got.Amount.StringFixed(2))
	assert.Equal(t, 5, got.Date.Day())
	assert.Equal(t, model.ClassEssential, got.Class)
	assert.Equal(t, "#820AD1", got.AccountColor)
}

func TestCreateTransaction_RejectsNegativeAmount(t *testing.T) {
	s := openTest(t)
	txn := sampleTxn()
	txn.Amount = decimal.RequireFromString("-50.00")

	_, err := s.CreateTransaction(context.Background(), txn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative amount")
}

func TestCreateTransaction_AllowsDegradedZeroAmount(t *testing.T) {
	s := openTest(t)
	txn := sampleTxn()
	txn.Amount = decimal.Zero

	_, err := s.CreateTransaction(context.Background(), txn)
	assert.NoError(t, err)
}

func TestCreateTransaction_RejectsUnknownType(t *testing.T) {
	s := openTest(t)
	txn := sampleTxn()
	txn.Type = "refund"

	_, err := s.CreateTransaction(context.Background(), txn)
	assert.Error(t, err)
}

func TestCreateTransaction_TransferLeg(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	txn := sampleTxn()
	txn.CategoryID = 0
	txn.Category = model.TransferCategory
	txn.Class = ""
	txn.DestinationAccountID = 3
	txn.DestinationAccount = "Poupança"

	_, err := s.CreateTransaction(ctx, txn)
	require.NoError(t, err)

	txns, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].IsTransfer())
	assert.Equal(t, 3, txns[0].DestinationAccountID)
	assert.Equal(t, model.TransferCategory, txns[0].Category)
}

func TestInvoices_CreateAndList(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	require.NoError(t, s.CreateInvoice(ctx, model.Invoice{ID: "2024-02", AccountID: 2, Month: 2, Year: 2024}))
	require.NoError(t, s.CreateInvoice(ctx, model.Invoice{ID: "2024-03", AccountID: 2, Month: 3, Year: 2024}))
	require.NoError(t, s.CreateInvoice(ctx, model.Invoice{ID: "2024-03-other", AccountID: 9, Month: 3, Year: 2024}))

	invoices, err := s.ListInvoicesForAccount(ctx, 2)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "2024-03", invoices[0].ID, "newest first")
	assert.Equal(t, "2024-02", invoices[1].ID)
}

func TestInvoices_EmptyAccount(t *testing.T) {
	s := openTest(t)
	invoices, err := s.ListInvoicesForAccount(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestCreateInvoice_RejectsBadMonth(t *testing.T) {
	s := openTest(t)
	err := s.CreateInvoice(context.Background(), model.Invoice{ID: "x", AccountID: 2, Month: 13, Year: 2024})
	assert.Error(t, err)
}

func TestCreateInvoice_DuplicatePeriod(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	inv := model.Invoice{ID: "2024-03", AccountID: 2, Month: 3, Year: 2024}
	require.NoError(t, s.CreateInvoice(ctx, inv))
	assert.Error(t, s.CreateInvoice(ctx, inv))
}
