// Package assemble turns reviewed candidates into canonical transactions
// ready for the store.
package assemble

import (
	"github.com/google/uuid"

	"github.com/grana-dev/grana/internal/model"
)

// AccountNamer resolves an account id to a display name. Missing ids resolve
// to the empty string.
type AccountNamer interface {
	AccountName(id int) string
}

// Result reports the outcome of assembling one import batch.
type Result struct {
	Transactions []model.CanonicalTransaction
	Skipped      int      // candidates dropped for not being ready
	DegradedIDs  []string // committed candidates whose amount or date fell back to defaults
}

// Convert assembles every ready candidate into a CanonicalTransaction for the
// importing account, stamping invoiceID when the import is invoice-scoped.
//
// Unready candidates are dropped from the output, not reported as individual
// errors; callers warn the user with Result.Skipped before commit. Degraded
// candidates are committed as-is (zero amount or fallback date) and surfaced
// through Result.DegradedIDs for operator review.
func Convert(cands []model.Candidate, account model.Account, accounts AccountNamer, invoiceID string) Result {
	var res Result
	for _, c := range cands {
		if !c.Ready() {
			res.Skipped++
			continue
		}
		if c.Degraded {
			res.DegradedIDs = append(res.DegradedIDs, c.ID)
		}

		txn := model.CanonicalTransaction{
			ID:           uuid.NewString(),
			Type:         c.Type(),
			Date:         c.Date,
			Description:  c.Description,
			CategoryID:   c.CategoryID,
			Category:     c.CategoryName,
			AccountID:    account.ID,
			Account:      account.Name,
			AccountColor: account.Color,
			Class:        c.Class,
			Amount:       c.Amount,
			InvoiceID:    invoiceID,
		}

		if c.IsTransfer {
			txn.CategoryID = 0
			txn.Category = model.TransferCategory
			txn.Class = ""
			if c.SourceAccountID != 0 {
				txn.AccountID = c.SourceAccountID
				txn.Account = accounts.AccountName(c.SourceAccountID)
			}
			txn.DestinationAccountID = c.DestinationAccountID
			txn.DestinationAccount = accounts.AccountName(c.DestinationAccountID)
		}

		if c.WeddingRelated {
			txn.WeddingCategory = c.WeddingCategory
		}

		res.Transactions = append(res.Transactions, txn)
	}
	return res
}
