package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grana-dev/grana/internal/config"
	"github.com/grana-dev/grana/internal/directory"
	"github.com/grana-dev/grana/internal/mapper"
	"github.com/grana-dev/grana/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new grana data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "profile name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(dir, name string) error {
	// Create directory structure.
	dirs := []string{
		"directories",
		"rules",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write grana.yaml.
	cfg := config.Default(name)
	if err := config.Save(filepath.Join(dir, "grana.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write account and category directories.
	svc := directory.NewService(directory.DefaultAccounts(), directory.DefaultCategories())
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing directories: %w", err)
	}

	// Write the starter mapping rules.
	if err := mapper.SaveRules(filepath.Join(dir, cfg.Rules.Path), mapper.DefaultRules()); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	// Create the database with its tables.
	st, err := store.Open(filepath.Join(dir, cfg.Database.Path))
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Printf("Initialized grana data directory at %s\n", dir)
	return nil
}
