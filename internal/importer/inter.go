package importer

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grana-dev/grana/internal/model"
	"github.com/grana-dev/grana/internal/normalize"
)

// InterParser parses Banco Inter statement CSV exports
// (Data Lançamento, Descrição, Valor, Tipo).
type InterParser struct{}

const interDateLayout = "02/01/2006"

const (
	interColDate  = "Data Lançamento"
	interColDesc  = "Descrição"
	interColValue = "Valor"
	interColType  = "Tipo"
)

// interExpenseTypes are the Tipo markers that make a row an expense,
// matched case-insensitively. The Valor sign is not consulted.
var interExpenseTypes = []string{"saque", "pagamento", "transferência enviada"}

// Format returns the parser metadata.
func (p *InterParser) Format() Format {
	return Format{ID: "inter", Name: "Banco Inter", DateLayout: interDateLayout}
}

// Parse reads a Banco Inter CSV. The Tipo column carries the direction.
func (p *InterParser) Parse(r io.Reader) ([]model.Candidate, error) {
	rows, err := readRows(r, "inter", interColDate, interColDesc, interColValue, interColType)
	if err != nil {
		return nil, err
	}

	var cands []model.Candidate
	for _, row := range rows {
		amount, amountOK := normalize.Amount(row[interColValue])
		date, dateOK := normalize.Date(row[interColDate], interDateLayout)
		if !dateOK {
			date = time.Now()
		}

		cands = append(cands, model.Candidate{
			ID:          uuid.NewString(),
			Raw:         row,
			Date:        date,
			Description: row[interColDesc],
			Amount:      amount,
			Income:      !interIsExpense(row[interColType]),
			Degraded:    !amountOK || !dateOK,
		})
	}
	return cands, nil
}

func interIsExpense(tipo string) bool {
	t := strings.ToLower(tipo)
	for _, marker := range interExpenseTypes {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}
