package export_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/invkit/recount/internal/export"
	"github.com/invkit/recount/pkg/inventory"
	"github.com/invkit/recount/pkg/recommend"
)

func TestWorkbookWritesAllSheets(t *testing.T) {
	after := 12.0
	count := 12.0
	result := &recommend.Result{
		Records: []inventory.ReviewRecord{
			{Warehouse: "50", Item: "itm-1", Location: "A01",
				DefaultLocation: "A01", Role: inventory.RoleDefault,
				SystemQty: 10, CountQty: 12, Counted: true,
				Action: inventory.ActionAdjust, RecommendedQty: 2,
				RemainingAdjustmentQty: 2, Confidence: inventory.ConfidenceHigh,
				Severity: 80, GroupHeadline: "Adjust up 2 after transfers"},
		},
		Transfers: []recommend.TransferSuggestion{
			{Warehouse: "50", Item: "itm-1", Qty: 3, From: "B02", To: "A01",
				Reason: "move 3 to default", Confidence: inventory.ConfidenceHigh, Severity: 90},
		},
		Summaries: []recommend.GroupSummary{
			{Key: inventory.GroupKey{Warehouse: "50", Item: "itm-1"},
				DefaultLocation: "A01", SystemTotal: 10, CountTotal: 12,
				NetVariance: 2, DefaultAfter: &after, DefaultCount: &count,
				Headline: "Adjust up 2 after transfers", RemainingAdj: 2,
				Confidence: inventory.ConfidenceHigh, Severity: 80},
			{Key: inventory.GroupKey{Warehouse: "50", Item: "itm-2"},
				DefaultLocation: "C03", Headline: "No variance",
				Confidence: inventory.ConfidenceHigh},
		},
	}
	result.Finalize()

	path := filepath.Join(t.TempDir(), "review.xlsx")
	require.NoError(t, export.Workbook(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{
		export.SheetReviewLines, export.SheetSummary,
		export.SheetTransfers, export.SheetAdjustments,
	}, f.GetSheetList())

	lines, err := f.GetRows(export.SheetReviewLines)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Whs", lines[0][0])
	assert.Equal(t, "A01", lines[1][3])
	assert.Equal(t, "ADJUST", lines[1][13])

	transfers, err := f.GetRows(export.SheetTransfers)
	require.NoError(t, err)
	require.Len(t, transfers, 2)
	assert.Equal(t, "B02", transfers[1][4])
	assert.Equal(t, "A01", transfers[1][5])

	// Only the group with a nonzero remaining adjustment is listed.
	adjustments, err := f.GetRows(export.SheetAdjustments)
	require.NoError(t, err)
	require.Len(t, adjustments, 2)
	assert.Equal(t, "itm-1", adjustments[1][1])
}

func TestWorkbookEmptyResultKeepsHeaders(t *testing.T) {
	result := recommend.NewResult(inventory.ModeTransfer)
	result.Finalize()

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, export.Workbook(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 1, sheet)
		assert.NotEmpty(t, rows[0], sheet)
	}
}

func TestWorkbookNilResult(t *testing.T) {
	err := export.Workbook(filepath.Join(t.TempDir(), "x.xlsx"), nil)
	assert.Error(t, err)
}
