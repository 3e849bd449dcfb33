// Package export writes a reconciliation result to a review workbook.
// The workbook carries four sheets: the enriched review lines, one
// summary row per group, the transfer suggestions, and the groups that
// still need a net adjustment after transfers.
package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/invkit/recount/pkg/errors"
	"github.com/invkit/recount/pkg/inventory"
	"github.com/invkit/recount/pkg/recommend"
)

// Sheet names in the exported workbook.
const (
	SheetReviewLines = "Review_Lines"
	SheetSummary     = "Group_Summary"
	SheetTransfers   = "Transfer_Suggestions"
	SheetAdjustments = "Adjustment_Suggestions"
)

var reviewHeaders = []string{
	"Whs", "Item", "Batch/lot", "Location", "Default Location", "Role",
	"System Qty", "Count Qty", "Counted", "Variance Qty",
	"Location Type", "Allocation Category", "Missing Master",
	"Action", "Recommended Qty", "From", "To",
	"Remaining Adjustment Qty", "Reason", "Confidence", "Severity",
	"Group Headline",
}

var summaryHeaders = []string{
	"Whs", "Item", "Batch/lot", "Default Location",
	"System Total", "Count Total", "Net Variance", "Buffer Qty",
	"Default After", "Default Count",
	"Flags", "Headline", "Remaining Adjustment Qty", "Confidence", "Severity",
}

var transferHeaders = []string{
	"Whs", "Item", "Batch/lot", "Qty", "From", "To",
	"Reason", "Confidence", "Severity",
}

var adjustmentHeaders = []string{
	"Whs", "Item", "Batch/lot", "Default Location",
	"Remaining Adjustment Qty", "Headline", "Confidence", "Severity",
}

// Workbook writes result to an xlsx workbook at path. Sheets are always
// present; a run with no transfers still gets an empty Transfer_Suggestions
// sheet with headers so reviewers see the same layout every time.
func Workbook(path string, result *recommend.Result) error {
	if result == nil {
		return errors.NewValidationError("result", nil, "nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetReviewLines); err != nil {
		return errors.WrapIO("export", path, err)
	}
	for _, sheet := range []string{SheetSummary, SheetTransfers, SheetAdjustments} {
		if _, err := f.NewSheet(sheet); err != nil {
			return errors.WrapIO("export", path, err)
		}
	}

	if err := writeReviewLines(f, result.Records); err != nil {
		return errors.WrapIO("export", path, err)
	}
	if err := writeSummaries(f, result.Summaries); err != nil {
		return errors.WrapIO("export", path, err)
	}
	if err := writeTransfers(f, result.Transfers); err != nil {
		return errors.WrapIO("export", path, err)
	}
	if err := writeAdjustments(f, result.Summaries); err != nil {
		return errors.WrapIO("export", path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("save", path, err)
	}
	return nil
}

func writeReviewLines(f *excelize.File, records []inventory.ReviewRecord) error {
	rows := make([][]any, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, []any{
			r.Warehouse, r.Item, r.Lot, r.Location, r.DefaultLocation, string(r.Role),
			r.SystemQty, r.CountQty, r.Counted, r.VarianceQty,
			r.LocationType, r.AllocationCategory, r.MissingMaster,
			string(r.Action), r.RecommendedQty, r.FromLocation, r.ToLocation,
			r.RemainingAdjustmentQty, r.Reason, string(r.Confidence), r.Severity,
			r.GroupHeadline,
		})
	}
	return writeSheet(f, SheetReviewLines, reviewHeaders, rows)
}

func writeSummaries(f *excelize.File, summaries []recommend.GroupSummary) error {
	rows := make([][]any, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []any{
			s.Key.Warehouse, s.Key.Item, s.Key.Lot, s.DefaultLocation,
			s.SystemTotal, s.CountTotal, s.NetVariance, s.BufferQty,
			optional(s.DefaultAfter), optional(s.DefaultCount),
			s.Flags.String(), s.Headline, s.RemainingAdj, string(s.Confidence), s.Severity,
		})
	}
	return writeSheet(f, SheetSummary, summaryHeaders, rows)
}

func writeTransfers(f *excelize.File, transfers []recommend.TransferSuggestion) error {
	rows := make([][]any, 0, len(transfers))
	for _, t := range transfers {
		rows = append(rows, []any{
			t.Warehouse, t.Item, t.Lot, t.Qty, t.From, t.To,
			t.Reason, string(t.Confidence), t.Severity,
		})
	}
	return writeSheet(f, SheetTransfers, transferHeaders, rows)
}

// writeAdjustments lists the groups whose balance is not covered by
// transfers alone, the operator's worklist for inventory adjustments.
func writeAdjustments(f *excelize.File, summaries []recommend.GroupSummary) error {
	var rows [][]any
	for _, s := range summaries {
		if s.RemainingAdj == 0 {
			continue
		}
		rows = append(rows, []any{
			s.Key.Warehouse, s.Key.Item, s.Key.Lot, s.DefaultLocation,
			s.RemainingAdj, s.Headline, string(s.Confidence), s.Severity,
		})
	}
	return writeSheet(f, SheetAdjustments, adjustmentHeaders, rows)
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	// Freeze the header row and enable filtering across the data range.
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, Split: false, YSplit: 1,
		TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	ref := fmt.Sprintf("A1:%s%s", last, strconv.Itoa(len(rows)+1))
	return f.AutoFilter(sheet, ref, nil)
}

func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
