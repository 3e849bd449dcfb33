package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	recount "github.com/invkit/recount"
	"github.com/invkit/recount/internal/cmd/output"
	"github.com/invkit/recount/pkg/inventory"
	"github.com/invkit/recount/pkg/recommend"
)

var (
	reconcileFlagRecount   string
	reconcileFlagLocations string
	reconcileFlagMode      string
	reconcileFlagWarehouse string
	reconcileFlagBuffer    string
	reconcileFlagExport    string
	reconcileFlagSession   string
	reconcileFlagShow      string
)

// reconcileCmd represents the reconcile command.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a cycle count and recommend corrective actions",
	Long: `Reconcile loads the recount workbook and the warehouse-locations
master, joins them into review lines, and applies the recommendation
engine. Results print to stdout; --export additionally writes the
four-sheet review workbook.`,
	Example: `  recount reconcile --recount counts.xlsx --locations locations.xlsx
  recount reconcile --recount counts.csv --locations locations.csv --mode TRANSFER
  recount reconcile --recount counts.xlsx --locations locations.xlsx --export review.xlsx
  recount reconcile --recount counts.xlsx --locations locations.xlsx --show transfers -o json`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVar(&reconcileFlagRecount, "recount", "", "Recount workbook (.xlsx or .csv)")
	reconcileCmd.Flags().StringVar(&reconcileFlagLocations, "locations", "", "Warehouse-locations workbook (.xlsx or .csv)")
	reconcileCmd.Flags().StringVarP(&reconcileFlagMode, "mode", "m", "", "Reconciliation mode: TRANSFER or ADJUST (default from config)")
	reconcileCmd.Flags().StringVarP(&reconcileFlagWarehouse, "warehouse", "w", "", "Primary warehouse code (default from config)")
	reconcileCmd.Flags().StringVar(&reconcileFlagBuffer, "buffer", "", "Buffer location code (default from config)")
	reconcileCmd.Flags().StringVar(&reconcileFlagExport, "export", "", "Write the review workbook to this path")
	reconcileCmd.Flags().StringVar(&reconcileFlagSession, "session", "", "Session ID (default: generated)")
	reconcileCmd.Flags().StringVar(&reconcileFlagShow, "show", "summaries", "What to print: records, transfers, or summaries")

	_ = reconcileCmd.MarkFlagRequired("recount")
	_ = reconcileCmd.MarkFlagRequired("locations")
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	session, err := newSession()
	if err != nil {
		return err
	}

	result, err := session.Run(cmd.Context(),
		reconcileFlagRecount, reconcileFlagLocations, reconcileFlagExport)
	if err != nil {
		return err
	}

	if err := printResult(result, format); err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Fprintln(os.Stderr, result.Summary())
	}
	return nil
}

// newSession builds a Session from flags layered over config defaults.
func newSession() (recount.Session, error) {
	mode, err := inventory.ParseMode(firstNonEmpty(reconcileFlagMode, cfg.Mode))
	if err != nil {
		return nil, err
	}

	engine, err := recommend.New(
		recommend.WithMode(mode),
		recommend.WithPrimaryWarehouse(firstNonEmpty(reconcileFlagWarehouse, cfg.PrimaryWarehouse)),
		recommend.WithBufferLocation(firstNonEmpty(reconcileFlagBuffer, cfg.BufferLocation)),
	)
	if err != nil {
		return nil, err
	}

	opts := []recount.Option{recount.WithEngine(engine)}
	if reconcileFlagSession != "" {
		opts = append(opts, recount.WithSessionID(reconcileFlagSession))
	}
	return recount.New(opts...)
}

func printResult(result *recommend.Result, format output.Format) error {
	switch reconcileFlagShow {
	case "records":
		return output.FormatRecords(result.Records, format)
	case "transfers":
		return output.FormatTransfers(result.Transfers, format)
	case "summaries", "":
		return output.FormatSummaries(result.Summaries, format)
	default:
		return fmt.Errorf("invalid --show %q: must be one of: records, transfers, summaries", reconcileFlagShow)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
