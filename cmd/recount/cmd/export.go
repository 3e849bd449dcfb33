package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportFlagRecount   string
	exportFlagLocations string
	exportFlagOut       string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run reconciliation and write the review workbook",
	Long: `Export runs the full pipeline and writes the four-sheet review
workbook: review lines, group summaries, transfer suggestions, and the
groups that still need a net adjustment. Nothing prints to stdout
beyond the run summary.`,
	Example: `  recount export --recount counts.xlsx --locations locations.xlsx --out review.xlsx
  recount export --recount counts.csv --locations locations.csv --out review.xlsx --mode TRANSFER`,
	RunE: runExportWorkbook,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFlagRecount, "recount", "", "Recount workbook (.xlsx or .csv)")
	exportCmd.Flags().StringVar(&exportFlagLocations, "locations", "", "Warehouse-locations workbook (.xlsx or .csv)")
	exportCmd.Flags().StringVar(&exportFlagOut, "out", "", "Output review workbook path")
	exportCmd.Flags().StringVarP(&reconcileFlagMode, "mode", "m", "", "Reconciliation mode: TRANSFER or ADJUST (default from config)")
	exportCmd.Flags().StringVarP(&reconcileFlagWarehouse, "warehouse", "w", "", "Primary warehouse code (default from config)")
	exportCmd.Flags().StringVar(&reconcileFlagBuffer, "buffer", "", "Buffer location code (default from config)")
	exportCmd.Flags().StringVar(&reconcileFlagSession, "session", "", "Session ID (default: generated)")

	_ = exportCmd.MarkFlagRequired("recount")
	_ = exportCmd.MarkFlagRequired("locations")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExportWorkbook(cmd *cobra.Command, _ []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}

	result, err := session.Run(cmd.Context(), exportFlagRecount, exportFlagLocations, exportFlagOut)
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "%s\nSession %s written to %s\n",
			result.Summary(), session.ID(), exportFlagOut)
	}
	return nil
}
