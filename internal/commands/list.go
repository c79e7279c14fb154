package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grana-dev/grana/internal/config"
	"github.com/grana-dev/grana/internal/directory"
	"github.com/grana-dev/grana/internal/model"
	"github.com/grana-dev/grana/internal/period"
	"github.com/grana-dev/grana/internal/store"
)

func newAccountsCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the account directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := directory.Load(dataDir)
			if err != nil {
				return err
			}
			for _, a := range dirs.Accounts() {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-25s %-12s %s\n", a.ID, a.Name, a.Kind, a.Color)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	return cmd
}

func newCategoriesCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the category directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := directory.Load(dataDir)
			if err != nil {
				return err
			}
			for _, c := range dirs.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", c.ID, c.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	return cmd
}

func newInvoicesCommand() *cobra.Command {
	invoicesCmd := &cobra.Command{
		Use:   "invoices",
		Short: "Manage credit-card invoices",
	}
	invoicesCmd.AddCommand(newInvoicesListCommand())
	invoicesCmd.AddCommand(newInvoicesAddCommand())
	return invoicesCmd
}

func openStore(dataDir string) (*config.Config, *store.Store, error) {
	cfg, err := config.Load(filepath.Join(dataDir, "grana.yaml"))
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(filepath.Join(dataDir, cfg.Database.Path))
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

func newInvoicesListCommand() *cobra.Command {
	var dataDir string
	var accountID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := openStore(dataDir)
			if err != nil {
				return err
			}
			defer st.Close()

			if accountID == 0 {
				accountID = cfg.Accounts.Card
			}
			invoices, err := st.ListInvoicesForAccount(context.Background(), accountID)
			if err != nil {
				return err
			}
			if len(invoices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No invoices")
				return nil
			}
			for _, inv := range invoices {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  (account %d)\n", period.Label(inv.ID), inv.AccountID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	cmd.Flags().IntVar(&accountID, "account", 0, "account id (default: card account from grana.yaml)")
	return cmd
}

func newInvoicesAddCommand() *cobra.Command {
	var dataDir, periodID string
	var accountID int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an invoice for a billing period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := period.Parse(periodID)
			if err != nil {
				return err
			}

			cfg, st, err := openStore(dataDir)
			if err != nil {
				return err
			}
			defer st.Close()

			if accountID == 0 {
				accountID = cfg.Accounts.Card
			}
			inv := model.Invoice{
				ID:        periodID,
				AccountID: accountID,
				Month:     month,
				Year:      year,
			}
			if err := st.CreateInvoice(context.Background(), inv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created invoice %s for account %d\n", period.Label(periodID), accountID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&periodID, "period", "", "billing period, e.g. 2025-03 (required)")
	_ = cmd.MarkFlagRequired("period")
	cmd.Flags().IntVar(&accountID, "account", 0, "account id (default: card account from grana.yaml)")
	return cmd
}
