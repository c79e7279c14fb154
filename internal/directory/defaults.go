package directory

import "github.com/grana-dev/grana/internal/model"

// DefaultAccounts returns the starter account directory for a new data dir.
func DefaultAccounts() []model.Account {
	return []model.Account{
		{ID: 1, Name: "Conta Corrente", Kind: model.AccountChecking, Color: "#820AD1"},
		{ID: 2, Name: "Cartão de Crédito", Kind: model.AccountCredit, Color: "#820AD1"},
		{ID: 3, Name: "Banco Inter", Kind: model.AccountChecking, Color: "#FF7A00"},
		{ID: 4, Name: "Poupança", Kind: model.AccountSavings, Color: "#2E7D32"},
		{ID: 5, Name: "Corretora", Kind: model.AccountInvestment, Color: "#1565C0"},
	}
}

// DefaultCategories returns the starter category directory. The ids are
// referenced by the built-in mapping rules.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Alimentação"},
		{ID: 2, Name: "Mercado"},
		{ID: 3, Name: "Transporte"},
		{ID: 4, Name: "Moradia"},
		{ID: 5, Name: "Saúde"},
		{ID: 6, Name: "Lazer"},
		{ID: 7, Name: "Assinaturas"},
		{ID: 8, Name: "Educação"},
		{ID: 9, Name: "Viagem"},
		{ID: 10, Name: "Renda"},
		{ID: 11, Name: "Investimentos"},
		{ID: 12, Name: "Casamento"},
		{ID: 13, Name: "Outros"},
	}
}
