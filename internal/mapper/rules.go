package mapper

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/grana-dev/grana/internal/model"
)

// rulesFile is the on-disk shape of rules/mapping-rules.yaml.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads a mapping-rules YAML file into a RuleSet.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	rs, err := NewRuleSet(f.Rules...)
	if err != nil {
		return nil, fmt.Errorf("building ruleset: %w", err)
	}
	return rs, nil
}

// SaveRules writes a RuleSet to a mapping-rules YAML file.
func SaveRules(path string, rs *RuleSet) error {
	data, err := yaml.Marshal(rulesFile{Rules: rs.Rules()})
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// DefaultRules returns the built-in starter ruleset for Brazilian statements.
// Category ids match directory.DefaultCategories.
func DefaultRules() *RuleSet {
	rs, err := NewRuleSet(
		Rule{Pattern: "ifood", CategoryID: 1, CategoryName: "Alimentação", Class: model.ClassNonEssential},
		Rule{Pattern: "restaurante", CategoryID: 1, CategoryName: "Alimentação", Class: model.ClassNonEssential},
		Rule{Pattern: "supermercado", CategoryID: 2, CategoryName: "Mercado", Class: model.ClassEssential},
		Rule{Pattern: "mercado", CategoryID: 2, CategoryName: "Mercado", Class: model.ClassEssential},
		Rule{Pattern: "uber", CategoryID: 3, CategoryName: "Transporte", Class: model.ClassNonEssential},
		Rule{Pattern: "99app", CategoryID: 3, CategoryName: "Transporte", Class: model.ClassNonEssential},
		Rule{Pattern: "posto", CategoryID: 3, CategoryName: "Transporte", Class: model.ClassEssential},
		Rule{Pattern: "aluguel", CategoryID: 4, CategoryName: "Moradia", Class: model.ClassEssential},
		Rule{Pattern: "condomínio", CategoryID: 4, CategoryName: "Moradia", Class: model.ClassEssential},
		Rule{Pattern: `(?i)farm[aá]cia|drogaria`, Regex: true, CategoryID: 5, CategoryName: "Saúde", Class: model.ClassEssential},
		Rule{Pattern: "netflix", CategoryID: 7, CategoryName: "Assinaturas", Class: model.ClassNonEssential},
		Rule{Pattern: "spotify", CategoryID: 7, CategoryName: "Assinaturas", Class: model.ClassNonEssential},
		Rule{Pattern: `(?i)sal[aá]rio`, Regex: true, CategoryID: 10, CategoryName: "Renda", Class: model.ClassIncome},
		Rule{Pattern: `(?i)cdb|tesouro|corretora`, Regex: true, CategoryID: 11, CategoryName: "Investimentos", Class: model.ClassInvestment},
	)
	if err != nil {
		panic(err) // built-in rules must compile
	}
	return rs
}
