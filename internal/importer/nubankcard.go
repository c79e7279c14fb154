package importer

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grana-dev/grana/internal/model"
	"github.com/grana-dev/grana/internal/normalize"
)

// NubankCardParser parses Nubank credit-card CSV exports (date, title,
// amount). Card imports are grouped by billing cycle, so the format requires
// an invoice selection.
type NubankCardParser struct{}

const nubankCardDateLayout = "2006-01-02"

const (
	nubankCardColDate   = "date"
	nubankCardColTitle  = "title"
	nubankCardColAmount = "amount"
)

// Format returns the parser metadata.
func (p *NubankCardParser) Format() Format {
	return Format{
		ID:              "nubank-card",
		Name:            "Nubank (cartão de crédito)",
		DateLayout:      nubankCardDateLayout,
		RequiresInvoice: true,
	}
}

// Parse reads a Nubank card CSV. A negative amount or a title containing
// "Pagamento" means a payment received against the invoice, classified as
// income with the description suffixed accordingly; everything else is a
// card expense.
func (p *NubankCardParser) Parse(r io.Reader) ([]model.Candidate, error) {
	rows, err := readRows(r, "nubank-card", nubankCardColDate, nubankCardColTitle, nubankCardColAmount)
	if err != nil {
		return nil, err
	}

	var cands []model.Candidate
	for _, row := range rows {
		signed, amountOK := normalize.Signed(row[nubankCardColAmount])
		date, dateOK := normalize.Date(row[nubankCardColDate], nubankCardDateLayout)
		if !dateOK {
			date = time.Now()
		}

		title := row[nubankCardColTitle]
		income := signed.IsNegative() || strings.Contains(title, "Pagamento")
		desc := title
		if income {
			desc = title + " (Pagamento)"
		}

		cands = append(cands, model.Candidate{
			ID:          uuid.NewString(),
			Raw:         row,
			Date:        date,
			Description: desc,
			Amount:      signed.Abs(),
			Income:      income,
			Degraded:    !amountOK || !dateOK,
		})
	}
	return cands, nil
}
