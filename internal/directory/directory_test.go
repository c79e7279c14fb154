package directory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grana-dev/grana/internal/model"
)

func TestService_Lookup(t *testing.T) {
	svc := NewService(DefaultAccounts(), DefaultCategories())

	a, ok := svc.Account(1)
	require.True(t, ok)
	assert.Equal(t, "Conta Corrente", a.Name)
	assert.Equal(t, model.AccountChecking, a.Kind)

	c, ok := svc.Category(2)
	require.True(t, ok)
	assert.Equal(t, "Mercado", c.Name)
}

func TestService_MissingIDResolvesEmpty(t *testing.T) {
	svc := NewService(DefaultAccounts(), DefaultCategories())

	assert.Empty(t, svc.AccountName(999))
	assert.Empty(t, svc.CategoryName(999))

	_, ok := svc.Account(999)
	assert.False(t, ok)
}

func TestService_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(DefaultAccounts(), DefaultCategories())
	require.NoError(t, svc.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, svc.Accounts(), loaded.Accounts())
	assert.Equal(t, svc.Categories(), loaded.Categories())
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestReadAccounts_BadID(t *testing.T) {
	csv := "account_id,name,kind,color\nabc,Conta,checking,#fff\n"
	_, err := ReadAccounts(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing account_id")
}

func TestReadCategories(t *testing.T) {
	csv := "category_id,name\n1,Alimentação\n2,Mercado\n"
	cats, err := ReadCategories(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Alimentação", cats[0].Name)
}

func TestDefaultRulesCategoryIDsResolve(t *testing.T) {
	// Every category id referenced by the built-in mapping rules must exist
	// in the default category directory.
	svc := NewService(nil, DefaultCategories())
	for _, id := range []int{1, 2, 3, 4, 5, 7, 10, 11} {
		assert.NotEmpty(t, svc.CategoryName(id), "category %d", id)
	}
}
