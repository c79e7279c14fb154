// Package directory provides read-only lookup over the account and category
// directories supplied to the import pipeline.
package directory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grana-dev/grana/internal/model"
)

const (
	dirName        = "directories"
	accountsFile   = "accounts.csv"
	categoriesFile = "categories.csv"
)

// Service provides in-memory lookup over accounts and categories.
type Service struct {
	accounts   []model.Account
	categories []model.Category
	acctByID   map[int]model.Account
	catByID    map[int]model.Category
}

// NewService creates a Service from account and category slices.
func NewService(accounts []model.Account, categories []model.Category) *Service {
	acctByID := make(map[int]model.Account, len(accounts))
	for _, a := range accounts {
		acctByID[a.ID] = a
	}
	catByID := make(map[int]model.Category, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}
	return &Service{accounts: accounts, categories: categories, acctByID: acctByID, catByID: catByID}
}

// Load reads both directory CSVs from <dataDir>/directories/.
func Load(dataDir string) (*Service, error) {
	af, err := os.Open(filepath.Join(dataDir, dirName, accountsFile))
	if err != nil {
		return nil, fmt.Errorf("opening accounts directory: %w", err)
	}
	defer af.Close()

	accounts, err := ReadAccounts(af)
	if err != nil {
		return nil, fmt.Errorf("reading accounts directory: %w", err)
	}

	cf, err := os.Open(filepath.Join(dataDir, dirName, categoriesFile))
	if err != nil {
		return nil, fmt.Errorf("opening categories directory: %w", err)
	}
	defer cf.Close()

	categories, err := ReadCategories(cf)
	if err != nil {
		return nil, fmt.Errorf("reading categories directory: %w", err)
	}

	return NewService(accounts, categories), nil
}

// Accounts returns all accounts.
func (s *Service) Accounts() []model.Account { return s.accounts }

// Categories returns all categories.
func (s *Service) Categories() []model.Category { return s.categories }

// Account returns an account by id.
func (s *Service) Account(id int) (model.Account, bool) {
	a, ok := s.acctByID[id]
	return a, ok
}

// Category returns a category by id.
func (s *Service) Category(id int) (model.Category, bool) {
	c, ok := s.catByID[id]
	return c, ok
}

// AccountName returns the display name for an account id, or "" when the id
// does not resolve. A missing reference never blocks categorization.
func (s *Service) AccountName(id int) string {
	return s.acctByID[id].Name
}

// CategoryName returns the display name for a category id, or "".
func (s *Service) CategoryName(id int) string {
	return s.catByID[id].Name
}

// Save writes both directory CSVs under <dataDir>/directories/.
func (s *Service) Save(dataDir string) error {
	dir := filepath.Join(dataDir, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directories dir: %w", err)
	}

	af, err := os.Create(filepath.Join(dir, accountsFile))
	if err != nil {
		return fmt.Errorf("creating accounts file: %w", err)
	}
	defer af.Close()
	if err := WriteAccounts(af, s.accounts); err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}

	cf, err := os.Create(filepath.Join(dir, categoriesFile))
	if err != nil {
		return fmt.Errorf("creating categories file: %w", err)
	}
	defer cf.Close()
	if err := WriteCategories(cf, s.categories); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}
