package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/invkit/recount/internal/workbook"
	pkgerrors "github.com/invkit/recount/pkg/errors"
)

var (
	validateFlagRecount   string
	validateFlagLocations string
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate source workbooks without reconciling",
	Long: `Validate opens the recount and warehouse-locations workbooks, checks
their required columns, and reports row counts. Nothing is reconciled
or written.`,
	Example: `  recount validate --recount counts.xlsx --locations locations.xlsx`,
	RunE:    runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlagRecount, "recount", "", "Recount workbook (.xlsx or .csv)")
	validateCmd.Flags().StringVar(&validateFlagLocations, "locations", "", "Warehouse-locations workbook (.xlsx or .csv)")
}

func runValidate(_ *cobra.Command, _ []string) error {
	failed := false

	if validateFlagRecount != "" {
		lines, err := workbook.LoadRecount(validateFlagRecount)
		failed = reportValidation("recount", validateFlagRecount, len(lines), err) || failed
	}
	if validateFlagLocations != "" {
		masters, err := workbook.LoadLocations(validateFlagLocations)
		failed = reportValidation("locations", validateFlagLocations, len(masters), err) || failed
	}
	if validateFlagRecount == "" && validateFlagLocations == "" {
		return fmt.Errorf("nothing to validate: pass --recount and/or --locations")
	}

	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// reportValidation prints one file's outcome and reports failure.
func reportValidation(kind, path string, rows int, err error) bool {
	if err == nil {
		fmt.Printf("%s: %s OK (%d rows)\n", kind, path, rows)
		return false
	}

	var schemaErr *pkgerrors.SchemaError
	if errors.As(err, &schemaErr) {
		fmt.Fprintf(os.Stderr, "%s: %s missing columns: %v\n", kind, path, schemaErr.Missing)
	} else {
		fmt.Fprintf(os.Stderr, "%s: %s: %v\n", kind, path, err)
	}
	return true
}
