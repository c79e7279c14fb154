package importer

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grana-dev/grana/internal/model"
	"github.com/grana-dev/grana/internal/normalize"
)

// GenericParser parses the neutral CSV format (date, description, amount,
// optional type) used for exports from unsupported banks or spreadsheets.
type GenericParser struct{}

const genericDateLayout = "2006-01-02"

const (
	genericColDate   = "date"
	genericColDesc   = "description"
	genericColAmount = "amount"
	genericColType   = "type"
)

// Format returns the parser metadata.
func (p *GenericParser) Format() Format {
	return Format{ID: "generic", Name: "Genérico", DateLayout: genericDateLayout}
}

// Parse reads a generic CSV. The amount sign decides the direction unless an
// explicit type column overrides it. A transfer type marks the candidate as a
// transfer with no category or class, skipping classification entirely.
func (p *GenericParser) Parse(r io.Reader) ([]model.Candidate, error) {
	rows, err := readRows(r, "generic", genericColDate, genericColDesc, genericColAmount)
	if err != nil {
		return nil, err
	}

	var cands []model.Candidate
	for _, row := range rows {
		signed, amountOK := normalize.Signed(row[genericColAmount])
		date, dateOK := normalize.Date(row[genericColDate], genericDateLayout)
		if !dateOK {
			date = time.Now()
		}

		c := model.Candidate{
			ID:          uuid.NewString(),
			Raw:         row,
			Date:        date,
			Description: row[genericColDesc],
			Amount:      signed.Abs(),
			Degraded:    !amountOK || !dateOK,
		}

		rowType := strings.ToLower(row[genericColType])
		switch {
		case strings.Contains(rowType, "transfer") || strings.Contains(rowType, "transferência"):
			c.IsTransfer = true
		case strings.Contains(rowType, "income") || strings.Contains(rowType, "receita"):
			c.Income = true
		case strings.Contains(rowType, "expense") || strings.Contains(rowType, "despesa"):
			c.Income = false
		default:
			c.Income = signed.IsPositive()
		}

		cands = append(cands, c)
	}
	return cands, nil
}
