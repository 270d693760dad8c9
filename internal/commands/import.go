package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/auditlog"
	"github.com/bankfeed-dev/bankfeed/internal/extract"
	"github.com/bankfeed-dev/bankfeed/internal/importer"
	"github.com/bankfeed-dev/bankfeed/internal/ledger"
	"github.com/bankfeed-dev/bankfeed/internal/logger"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

func newImportCommand() *cobra.Command {
	var (
		dir       string
		accountID string
		format    string
		fuzzy     bool
		dryRun    bool
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a statement export into the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("provide a statement file or --all, not both")
			}

			proj, err := loadProject(dir)
			if err != nil {
				return err
			}
			log := logger.New(proj.cfg.LogLevel)

			parser := extract.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown statement format %q", format)
			}

			store, err := ledger.OpenSQLite(proj.storagePath())
			if err != nil {
				return err
			}
			defer store.Close()

			svc := importer.NewService(store, proj.accounts, proj.rules, log)
			opts := importer.Options{
				FuzzyMatch:     fuzzy || proj.cfg.Matching.Fuzzy,
				FuzzyThreshold: proj.cfg.Matching.FuzzyThreshold,
			}

			ctx := cmd.Context()
			if all {
				return importAll(ctx, proj, svc, store, parser, accountID, opts, dryRun)
			}
			return importFile(ctx, proj, svc, store, parser, accountID, args[0], opts, dryRun, false)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory")
	cmd.Flags().StringVar(&accountID, "account", "", "bank account ID (required)")
	cmd.Flags().StringVar(&format, "format", "statement", "statement format (statement, chase)")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "enable fuzzy duplicate matching")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview without committing")
	cmd.Flags().BoolVar(&all, "all", false, "process every CSV in import/")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func importAll(ctx context.Context, proj *project, svc *importer.Service, store ledger.Store, parser extract.Parser, accountID string, opts importer.Options, dryRun bool) error {
	files, err := extract.Scan(proj.root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}
	for _, file := range files {
		if err := importFile(ctx, proj, svc, store, parser, accountID, file.Path, opts, dryRun, !dryRun); err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}
	}
	return nil
}

func importFile(ctx context.Context, proj *project, svc *importer.Service, store ledger.Store, parser extract.Parser, accountID, path string, opts importer.Options, dryRun, markProcessed bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	rows, err := parser.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	if dryRun {
		return previewImport(ctx, svc, store, accountID, rows, opts)
	}

	result, err := svc.Run(ctx, accountID, rows, opts)
	if err != nil {
		return err
	}

	summary := svc.Summarize(result)
	printSummary(summary, result.Errors)

	entry := auditlog.Entry{
		Timestamp:  time.Now().UTC(),
		BatchID:    uuid.NewString(),
		AccountID:  accountID,
		SourceFile: path,
		Processed:  summary.TotalProcessed,
		Imported:   summary.SuccessfulImports,
		Duplicates: summary.DuplicatesSkipped,
		Errors:     summary.ErrorsCount,
	}
	if err := auditlog.Append(proj.root, []auditlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write import log: %v\n", err)
	}

	if markProcessed {
		if err := extract.MarkProcessed(proj.root, filepath.Base(path)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to mark processed: %v\n", err)
		}
	}
	return nil
}

// previewImport runs the side-effect-free phases and reports what a
// real run would do.
func previewImport(ctx context.Context, svc *importer.Service, store ledger.Store, accountID string, rows []model.RawRow, opts importer.Options) error {
	validation := svc.ValidateRows(rows)

	invalid := validation.InvalidRows()
	var valid []model.Transaction
	for i, txn := range normalize.Rows(rows) {
		if !invalid[i] {
			valid = append(valid, txn)
		}
	}
	txns := svc.Categorize(valid)

	existing, err := store.List(ctx, accountID)
	if err != nil {
		return fmt.Errorf("listing existing transactions: %w", err)
	}
	dupes := svc.DetectDuplicates(txns, existing, opts)

	fmt.Printf("Dry run: %d rows, %d valid, %d duplicates would be skipped, %d would be imported\n",
		len(rows), len(txns), len(dupes), len(txns)-len(dupes))
	printErrors(validation.Errors)
	return nil
}

func printSummary(s model.ImportSummary, errs []model.ValidationError) {
	fmt.Printf("Imported %d of %d transactions (%d duplicates skipped, %d categorized)\n",
		s.SuccessfulImports, s.TotalProcessed, s.DuplicatesSkipped, s.CategorizedCount)
	if !s.DateRange.Earliest.IsZero() {
		fmt.Printf("Date range: %s to %s\n",
			s.DateRange.Earliest.Format("2006-01-02"), s.DateRange.Latest.Format("2006-01-02"))
	}
	printErrors(errs)
}

func printErrors(errs []model.ValidationError) {
	for _, e := range errs {
		fmt.Printf("  error: %s\n", e.Error())
	}
}
