package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/extract"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
	"github.com/bankfeed-dev/bankfeed/internal/validate"
)

func newValidateCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a statement export without touching the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "statement", "statement format (statement, chase)")

	return cmd
}

func runValidate(path, format string) error {
	parser := extract.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return err
	}

	result := validate.Rows(normalize.Rows(rows))
	if result.IsValid {
		fmt.Printf("%d rows, all valid\n", len(rows))
		return nil
	}

	fmt.Printf("%d rows, %d problems\n", len(rows), len(result.Errors))
	for _, e := range result.Errors {
		fmt.Printf("  %s\n", e.Error())
	}
	return nil
}
