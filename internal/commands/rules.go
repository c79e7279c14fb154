package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grana-dev/grana/internal/config"
	"github.com/grana-dev/grana/internal/directory"
	"github.com/grana-dev/grana/internal/mapper"
	"github.com/grana-dev/grana/internal/model"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage description-to-category mapping rules",
	}
	rulesCmd.AddCommand(newRulesListCommand())
	rulesCmd.AddCommand(newRulesAddCommand())
	return rulesCmd
}

func newRulesListCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mapping rules in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(filepath.Join(dataDir, "grana.yaml"))
			if err != nil {
				return err
			}
			rules, err := mapper.LoadRules(filepath.Join(dataDir, cfg.Rules.Path))
			if err != nil {
				return err
			}

			for i, r := range rules.Rules() {
				kind := "substring"
				if r.Regex {
					kind = "regex"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-30q %-10s -> %s (%s)\n",
					i+1, r.Pattern, kind, r.CategoryName, r.Class)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	return cmd
}

func newRulesAddCommand() *cobra.Command {
	var dataDir, pattern, class string
	var categoryID int
	var regex bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a mapping rule at the lowest priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(filepath.Join(dataDir, "grana.yaml"))
			if err != nil {
				return err
			}
			if !model.ValidClass(model.Class(class)) {
				return fmt.Errorf("invalid class %q", class)
			}

			dirs, err := directory.Load(dataDir)
			if err != nil {
				return err
			}
			cat, ok := dirs.Category(categoryID)
			if !ok {
				return fmt.Errorf("unknown category %d", categoryID)
			}

			rulesPath := filepath.Join(dataDir, cfg.Rules.Path)
			rules, err := mapper.LoadRules(rulesPath)
			if err != nil {
				return err
			}

			updated, err := rules.WithRule(mapper.Rule{
				Pattern:      pattern,
				Regex:        regex,
				CategoryID:   cat.ID,
				CategoryName: cat.Name,
				Class:        model.Class(class),
			})
			if err != nil {
				return err
			}

			if err := mapper.SaveRules(rulesPath, updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added rule %d: %q -> %s\n", updated.Len(), pattern, cat.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&pattern, "pattern", "", "substring or regex pattern (required)")
	_ = cmd.MarkFlagRequired("pattern")
	cmd.Flags().BoolVar(&regex, "regex", false, "treat the pattern as a regular expression")
	cmd.Flags().IntVar(&categoryID, "category", 0, "category id (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&class, "class", "", "budgeting class (required)")
	_ = cmd.MarkFlagRequired("class")

	return cmd
}
