package directory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/grana-dev/grana/internal/model"
)

const (
	acctNumFields = 4
	acctColID     = 0
	acctColName   = 1
	acctColKind   = 2
	acctColColor  = 3

	catNumFields = 2
	catColID     = 0
	catColName   = 1
)

// ReadAccounts reads accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = acctNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_id", "name", "kind", "color"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, acctNumFields)
	row[acctColID] = strconv.Itoa(acct.ID)
	row[acctColName] = acct.Name
	row[acctColKind] = string(acct.Kind)
	row[acctColColor] = acct.Color
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != acctNumFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", acctNumFields, len(record))
	}
	id, err := strconv.Atoi(record[acctColID])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_id %q: %w", record[acctColID], err)
	}
	return model.Account{
		ID:    id,
		Name:  record[acctColName],
		Kind:  model.AccountKind(record[acctColKind]),
		Color: record[acctColColor],
	}, nil
}

// ReadCategories reads categories.csv.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = catNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var categories []model.Category
	for i, rec := range records[1:] {
		id, err := strconv.Atoi(rec[catColID])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing category_id %q: %w", i+2, rec[catColID], err)
		}
		categories = append(categories, model.Category{ID: id, Name: rec[catColName]})
	}
	return categories, nil
}

// WriteCategories writes categories.csv.
func WriteCategories(w io.Writer, categories []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"category_id", "name"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, cat := range categories {
		row := []string{strconv.Itoa(cat.ID), cat.Name}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
