package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/grana-dev/grana/internal/config"
	"github.com/grana-dev/grana/internal/directory"
	"github.com/grana-dev/grana/internal/importer"
	"github.com/grana-dev/grana/internal/importlog"
	"github.com/grana-dev/grana/internal/logger"
	"github.com/grana-dev/grana/internal/mapper"
	"github.com/grana-dev/grana/internal/model"
	"github.com/grana-dev/grana/internal/period"
	"github.com/grana-dev/grana/internal/session"
	"github.com/grana-dev/grana/internal/store"
)

type importOptions struct {
	dataDir   string
	file      string
	formatID  string
	accountID int
	invoiceID string
	yes       bool
}

func newImportCommand() *cobra.Command {
	opts := importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a bank statement CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = args[0]
			absDir, err := filepath.Abs(opts.dataDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			opts.dataDir = absDir
			return runImport(opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.formatID, "format", "", "bank format id (nubank, nubank-card, inter, generic)")
	_ = cmd.MarkFlagRequired("format")
	cmd.Flags().StringVar(&opts.dataDir, "dir", ".", "data directory")
	cmd.Flags().IntVar(&opts.accountID, "account", 0, "destination account id (default from grana.yaml)")
	cmd.Flags().StringVar(&opts.invoiceID, "invoice", "", "invoice period for card imports, e.g. 2025-03")
	cmd.Flags().BoolVar(&opts.yes, "yes", false, "skip prompts and commit only ready rows")

	return cmd
}

func newScanCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List statement CSVs waiting in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := importer.Scan(dataDir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No CSV files in import/")
				return nil
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", f.Name, f.Size)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	return cmd
}

func runImport(opts importOptions, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(filepath.Join(opts.dataDir, "grana.yaml"))
	if err != nil {
		return err
	}

	dirs, err := directory.Load(opts.dataDir)
	if err != nil {
		return err
	}

	rules, err := mapper.LoadRules(filepath.Join(opts.dataDir, cfg.Rules.Path))
	if err != nil {
		return err
	}

	st, err := store.Open(filepath.Join(opts.dataDir, cfg.Database.Path))
	if err != nil {
		return err
	}
	defer st.Close()

	log := logger.New(cfg.Logging.Level)
	ctx := context.Background()
	scanner := bufio.NewScanner(in)

	sess := session.New()
	if err := sess.SelectFormat(ctx, importer.DefaultRegistry(), opts.formatID, st, cfg.Accounts.Card); err != nil {
		return err
	}

	accountID := opts.accountID
	if accountID == 0 {
		accountID = cfg.Accounts.Default
		if sess.Format().RequiresInvoice {
			accountID = cfg.Accounts.Card
		}
	}
	account, ok := dirs.Account(accountID)
	if !ok {
		return fmt.Errorf("unknown account %d", accountID)
	}

	if sess.Step() == session.StepSelectInvoice {
		if err := selectInvoice(sess, opts.invoiceID, scanner, out); err != nil {
			return err
		}
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	uploadErr := sess.Upload(f)
	f.Close()
	if uploadErr != nil {
		// Structural failure aborts the import; nothing was produced.
		color.Red("Import aborted: %v", uploadErr)
		return uploadErr
	}

	mapped, err := sess.ApplyRules(rules)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Parsed %d rows, auto-categorized %d\n", len(sess.Candidates()), mapped)

	if !opts.yes {
		if err := categorize(sess, dirs, cfg.Wedding.Enabled, accountID, scanner, out); err != nil {
			return err
		}
	}

	unready := len(sess.Candidates()) - sess.ReadyCount()
	if unready > 0 {
		color.Yellow("%d rows are not categorized and will NOT be imported", unready)
	}

	if !opts.yes {
		answer := prompt(scanner, out, fmt.Sprintf("Import %d transactions? [y/N] ", sess.ReadyCount()))
		if answer != "y" && answer != "s" {
			fmt.Fprintln(out, "Import cancelled")
			return nil
		}
	}

	res, err := sess.Commit(account, dirs)
	if err != nil {
		return err
	}
	for _, id := range res.DegradedIDs {
		log.Warn().Str("candidate", id).Msg("row committed with defaulted amount or date")
	}

	commit := store.CommitAll(ctx, st, res.Transactions)
	for _, failure := range commit.Failures {
		log.Error().Err(failure.Err).Str("description", failure.Description).Msg("transaction rejected by store")
	}

	if err := importlog.Append(opts.dataDir, importlog.Entry{
		Timestamp: time.Now(),
		Format:    opts.formatID,
		File:      filepath.Base(opts.file),
		Imported:  len(commit.CreatedIDs),
		Skipped:   res.Skipped,
		Degraded:  len(res.DegradedIDs),
		Failed:    len(commit.Failures),
	}); err != nil {
		log.Warn().Err(err).Msg("writing import log")
	}

	markProcessed(opts, log)

	color.Green("Imported %d transactions into %s", len(commit.CreatedIDs), account.Name)
	if !commit.AllSucceeded() {
		return fmt.Errorf("%d transactions failed to commit", len(commit.Failures))
	}
	return nil
}

func selectInvoice(sess *session.Session, invoiceID string, scanner *bufio.Scanner, out io.Writer) error {
	if invoiceID != "" {
		return sess.SelectInvoice(invoiceID)
	}

	fmt.Fprintln(out, "Open invoices:")
	for i, inv := range sess.Invoices() {
		fmt.Fprintf(out, "  %d) %s\n", i+1, period.Label(inv.ID))
	}
	answer := prompt(scanner, out, "Invoice: ")
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(sess.Invoices()) {
		return fmt.Errorf("invalid invoice choice %q", answer)
	}
	return sess.SelectInvoice(sess.Invoices()[idx-1].ID)
}

// categorize walks the unready candidates prompting for a category/class or a
// transfer destination. Empty input leaves a row uncategorized.
func categorize(sess *session.Session, dirs *directory.Service, wedding bool, accountID int, scanner *bufio.Scanner, out io.Writer) error {
	for i, c := range sess.Candidates() {
		if c.Ready() {
			continue
		}

		fmt.Fprintf(out, "\n%s  %-40s  %s %s\n",
			c.Date.Format("02/01/2006"), c.Description, c.Amount.StringFixed(2), c.Type())
		answer := prompt(scanner, out, "category id, t=transfer, enter=skip: ")

		switch answer {
		case "":
			continue
		case "t":
			dest := prompt(scanner, out, "destination account id: ")
			destID, err := strconv.Atoi(dest)
			if err != nil {
				return fmt.Errorf("invalid account id %q", dest)
			}
			if err := sess.SetTransfer(i, accountID, destID); err != nil {
				return err
			}
		default:
			catID, err := strconv.Atoi(answer)
			if err != nil {
				return fmt.Errorf("invalid category id %q", answer)
			}
			cat, ok := dirs.Category(catID)
			if !ok {
				// Missing reference: keep the id, leave the name empty.
				cat = model.Category{ID: catID}
			}
			class := prompt(scanner, out, "class (essential/non-essential/investment/income/business): ")
			if err := sess.SetCategory(i, cat, model.Class(class)); err != nil {
				return err
			}
		}

		if wedding {
			w := prompt(scanner, out, "wedding category (enter=none): ")
			if err := sess.SetWedding(i, w); err != nil {
				return err
			}
		}
	}
	return nil
}

// markProcessed moves the statement into import/processed/ when it was picked
// up from the data directory's import folder.
func markProcessed(opts importOptions, log zerolog.Logger) {
	abs, err := filepath.Abs(opts.file)
	if err != nil {
		return
	}
	if filepath.Dir(abs) != filepath.Join(opts.dataDir, "import") {
		return
	}
	if err := importer.MarkProcessed(opts.dataDir, filepath.Base(abs)); err != nil {
		log.Warn().Err(err).Msg("moving statement to processed")
	}
}

func prompt(scanner *bufio.Scanner, out io.Writer, msg string) string {
	fmt.Fprint(out, msg)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
