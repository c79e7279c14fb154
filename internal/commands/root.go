package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grana-dev/grana/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "grana",
		Short:   "Personal finance tracking with bank statement import",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newAccountsCommand())
	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newInvoicesCommand())

	return rootCmd
}
