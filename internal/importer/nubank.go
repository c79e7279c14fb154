package importer

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/grana-dev/grana/internal/model"
	"github.com/grana-dev/grana/internal/normalize"
)

// NubankParser parses Nubank checking-account CSV exports
// (Data, Valor, Identificador, Descrição).
type NubankParser struct{}

const nubankDateLayout = "02/01/2006"

const (
	nubankColDate  = "Data"
	nubankColValue = "Valor"
	nubankColDesc  = "Descrição"
)

// Format returns the parser metadata.
func (p *NubankParser) Format() Format {
	return Format{ID: "nubank", Name: "Nubank (conta corrente)", DateLayout: nubankDateLayout}
}

// Parse reads a Nubank checking CSV. A positive Valor means income.
func (p *NubankParser) Parse(r io.Reader) ([]model.Candidate, error) {
	rows, err := readRows(r, "nubank", nubankColDate, nubankColValue, nubankColDesc)
	if err != nil {
		return nil, err
	}

	var cands []model.Candidate
	for _, row := range rows {
		signed, amountOK := normalize.Signed(row[nubankColValue])
		date, dateOK := normalize.Date(row[nubankColDate], nubankDateLayout)
		if !dateOK {
			date = time.Now()
		}

		cands = append(cands, model.Candidate{
			ID:          uuid.NewString(),
			Raw:         row,
			Date:        date,
			Description: row[nubankColDesc],
			Amount:      signed.Abs(),
			Income:      signed.IsPositive(),
			Degraded:    !amountOK || !dateOK,
		})
	}
	return cands, nil
}
