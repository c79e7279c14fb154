package assemble

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grana-dev/grana/internal/model"
)

type fakeNamer map[int]string

func (f fakeNamer) AccountName(id int) string { return f[id] }

var (
	testAccount = model.Account{ID: 1, Name: "Conta Corrente", Kind: model.AccountChecking, Color: "#820AD1"}
	testNamer   = fakeNamer{1: "Conta Corrente", 2: "Cartão", 3: "Poupança"}
)

func candidate(desc string, amount string, income bool) model.Candidate {
	return model.Candidate{
		ID:           "cand-" + desc,
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		Description:  desc,
		Amount:       decimal.RequireFromString(amount),
		Income:       income,
		CategoryID:   2,
		CategoryName: "Mercado",
		Class:        model.ClassEssential,
	}
}

func TestConvert_ReadyCandidates(t *testing.T) {
	cands := []model.Candidate{
		candidate("Salary", "2500.00", true),
		candidate("Rent", "1200.00", false),
	}

	res := Convert(cands, testAccount, testNamer, "")
	require.Len(t, res.Transactions, 2)
	assert.Zero(t, res.Skipped)

	assert.Equal(t, model.TypeIncome, res.Transactions[0].Type)
	assert.Equal(t, "2500.00", res.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, model.TypeExpense, res.Transactions[1].Type)
	assert.Equal(t, "1200.00", res.Transactions[1].Amount.StringFixed(2))

	for _, txn := range res.Transactions {
		assert.True(t, txn.Amount.IsPositive())
		assert.Equal(t, 1, txn.AccountID)
		assert.Equal(t, "Conta Corrente", txn.Account)
		assert.Equal(t, "#820AD1", txn.AccountColor)
		assert.NotEmpty(t, txn.ID)
	}
}

func TestConvert_DropsUnreadyCandidates(t *testing.T) {
	noClass := candidate("sem classe", "10.00", false)
	noClass.Class = ""
	noCategory := candidate("sem categoria", "10.00", false)
	noCategory.CategoryID = 0
	transferNoDest := model.Candidate{ID: "t", IsTransfer: true, Amount: decimal.RequireFromString("10.00")}

	res := Convert([]model.Candidate{noClass, noCategory, transferNoDest}, testAccount, testNamer, "")
	assert.Empty(t, res.Transactions)
	assert.Equal(t, 3, res.Skipped)
}

func TestConvert_TypeComesFromClassificationNotClass(t *testing.T) {
	// An income-classed expense stays an expense: Class is a budgeting tag.
	c := candidate("Reembolso", "80.00", false)
	c.Class = model.ClassIncome

	res := Convert([]model.Candidate{c}, testAccount, testNamer, "")
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, model.TypeExpense, res.Transactions[0].Type)
	assert.Equal(t, model.ClassIncome, res.Transactions[0].Class)
}

func TestConvert_TransferPreservesDirection(t *testing.T) {
	c := model.Candidate{
		ID:                   "t1",
		Date:                 time.Date(2024, 3, 3, 0, 0, 0, 0, time.Local),
		Description:          "Para poupança",
		Amount:               decimal.RequireFromString("500.00"),
		IsTransfer:           true,
		SourceAccountID:      1,
		DestinationAccountID: 3,
	}

	res := Convert([]model.Candidate{c}, testAccount, testNamer, "")
	require.Len(t, res.Transactions, 1)

	txn := res.Transactions[0]
	assert.Equal(t, 1, txn.AccountID)
	assert.Equal(t, 3, txn.DestinationAccountID)
	assert.Equal(t, "Poupança", txn.DestinationAccount)
	assert.Equal(t, model.TransferCategory, txn.Category)
	assert.Zero(t, txn.CategoryID)
	assert.True(t, txn.IsTransfer())
}

func TestConvert_TransferUnknownDestinationName(t *testing.T) {
	c := model.Candidate{
		ID:                   "t2",
		Amount:               decimal.RequireFromString("50.00"),
		IsTransfer:           true,
		DestinationAccountID: 99,
	}

	res := Convert([]model.Candidate{c}, testAccount, testNamer, "")
	require.Len(t, res.Transactions, 1)
	// Missing directory reference falls back to an empty display name.
	assert.Empty(t, res.Transactions[0].DestinationAccount)
	assert.Equal(t, 99, res.Transactions[0].DestinationAccountID)
}

func TestConvert_InvoiceStamping(t *testing.T) {
	res := Convert([]model.Candidate{candidate("Loja X", "50.00", false)}, testAccount, testNamer, "2024-03")
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "2024-03", res.Transactions[0].InvoiceID)
}

func TestConvert_WeddingCategoryPassesThrough(t *testing.T) {
	c := candidate("Buffet", "3000.00", false)
	c.WeddingRelated = true
	c.WeddingCategory = "Festa"

	res := Convert([]model.Candidate{c}, testAccount, testNamer, "")
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "Festa", res.Transactions[0].WeddingCategory)
}

func TestConvert_DegradedRowsCommittedAndFlagged(t *testing.T) {
	c := candidate("linha corrompida", "0.00", false)
	c.Degraded = true
	c.Amount = decimal.Zero

	res := Convert([]model.Candidate{c, candidate("ok", "10.00", false)}, testAccount, testNamer, "")
	// One bad row does not block the good one, and it is flagged, not dropped.
	require.Len(t, res.Transactions, 2)
	assert.Equal(t, []string{c.ID}, res.DegradedIDs)
}
