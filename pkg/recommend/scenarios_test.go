package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invkit/recount/pkg/inventory"
	"github.com/invkit/recount/pkg/recommend"
)

// Verified default, empty buffer: a secondary excess is a plain transfer
// from the default, with the leftover surfacing at the default afterwards.
func TestSecondaryExcessWithVerifiedDefault(t *testing.T) {
	records := []inventory.ReviewRecord{
		line("50", "ITM-1", "", "A01", "A01", 10, 10, true),
		line("50", "ITM-1", "", "A01", "B02", 0, 5, true),
	}

	result := apply(t, records, recommend.WithMode(inventory.ModeTransfer))

	require.Len(t, result.Transfers, 1)
	tr := result.Transfers[0]
	assert.Equal(t, "A01", tr.From)
	assert.Equal(t, "B02", tr.To)
	assert.InDelta(t, 5, tr.Qty, 1e-9)

	summary := result.Summaries[0]
	assert.False(t, summary.Flags.MoveRecount)
	require.NotNil(t, summary.DefaultAfter)
	assert.InDelta(t, 5, *summary.DefaultAfter, 1e-9)

	// Five units genuinely exist beyond the books; after the book transfer
	// covers B02, the default shows them as the remaining adjustment.
	assert.InDelta(t, 5, summary.RemainingAdj, 1e-9)
	assert.Equal(t, "Adjust up 5 after transfers", summary.Headline)
}

// Empty default count with buffer stock on the books: plausibly full, no
// action, low urgency.
func TestEmptyDefaultExplainedByBuffer(t *testing.T) {
	records := []inventory.ReviewRecord{
		line("50", "ITM-1", "", "A01", "A01", 10, 0, true),
		line("50", "ITM-1", "", "A01", "ST01", 4, 0, false),
	}

	result := apply(t, records)

	deflt := result.Records[0]
	assert.Equal(t, inventory.ActionNone, deflt.Action)
	assert.Equal(t, 25, deflt.Severity)
	assert.Contains(t, deflt.Reason, "ST01 stock present; default may be physically full")

	summary := result.Summaries[0]
	assert.False(t, summary.Flags.DefaultEmpty)
	assert.Zero(t, summary.RemainingAdj)
}

// Default count inside the buffer tolerance band: no adjustment.
func TestDefaultWithinBufferToleranceBand(t *testing.T) {
	records := []inventory.ReviewRecord{
		line("50", "ITM-1", "", "A01", "A01", 20, 25, true),
		line("50", "ITM-1", "", "A01", "ST01", 10, 0, false),
	}

	result := apply(t, records)

	deflt := result.Records[0]
	assert.Equal(t, inventory.ActionNone, deflt.Action)
	assert.Contains(t, deflt.Reason, "MIN=20, MAX=30, DefaultCount=25.")

	summary := result.Summaries[0]
	assert.Zero(t, summary.RemainingAdj)
	assert.Equal(t, "No variance", summary.Headline)
}

// Default count below the band adjusts down to MIN; above adjusts up to MAX.
func TestDefaultOutsideBufferToleranceBand(t *testing.T) {
	t.Run("below MIN", func(t *testing.T) {
		records := []inventory.ReviewRecord{
			line("50", "ITM-1", "", "A01", "A01", 20, 15, true),
			line("50", "ITM-1", "", "A01", "ST01", 10, 0, false),
		}

		result := apply(t, records)
		summary := result.Summaries[0]
		assert.InDelta(t, -5, summary.RemainingAdj, 1e-9)
		assert.Equal(t, "Adjust down 5", summary.Headline)

		deflt := result.Records[0]
		assert.Equal(t, inventory.ActionAdjust, deflt.Action)
		require.NotNil(t, deflt.SuggestedEntryQty)
		assert.InDelta(t, 20, *deflt.SuggestedEntryQty, 1e-9)
	})

	t.Run("above MAX", func(t *testing.T) {
		records := []inventory.ReviewRecord{
			line("50", "ITM-1", "", "A01", "A01", 20, 33, true),
			line("50", "ITM-1", "", "A01", "ST01", 10, 0, false),
		}

		result := apply(t, records)
		summary := result.Summaries[0]
		assert.InDelta(t, 3, summary.RemainingAdj, 1e-9)
		assert.Equal(t, "Adjust up 3", summary.Headline)

		deflt := result.Records[0]
		require.NotNil(t, deflt.SuggestedEntryQty)
		assert.InDelta(t, 30, *deflt.SuggestedEntryQty, 1e-9)
	})
}

// A matching secondary stays quiet regardless of the rest of the group.
func TestMatchingSecondaryIsUntouched(t *testing.T) {
	records := []inventory.ReviewRecord{
		line("50", "ITM-1", "", "A01", "A01", 10, 10, true),
		line("50", "ITM-1", "", "A01", "B02", 8, 8, true),
	}

	result := apply(t, records)

	secondary := result.Records[1]
	assert.Equal(t, inventory.ActionNone, secondary.Action)
	assert.Equal(t, inventory.ConfidenceHigh, secondary.Confidence)
	assert.Zero(t, secondary.Severity)
	assert.Equal(t, "No variance", result.Summaries[0].Headline)
}

// Ineligible defaults are compared directly, without the buffer band.
func TestIneligibleDefaultComparedDirectly(t *testing.T) {
	records := []inventory.ReviewRecord{
		line("50", "ITM-1", "", "A01", "A01", 20, 25, true),
		line("50", "ITM-1", "", "A01", "ST01", 10, 0, false),
	}
	records[0].AllocationCategory = "Quarantine"

	result := apply(t, records)

	// Buffer stock gives no tolerance: 25 vs 20 is a straight +5.
	summary := result.Summaries[0]
	assert.InDelta(t, 5, summary.RemainingAdj, 1e-9)
	assert.Equal(t, "Adjust up 5", summary.Headline)
	assert.Contains(t, result.Records[0].Reason, "not eligible for buffer min/max")
}
