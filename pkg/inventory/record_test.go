package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/invkit/recount/pkg/errors"
	"github.com/invkit/recount/pkg/inventory"
)

func TestConfidenceCap(t *testing.T) {
	tests := []struct {
		name  string
		conf  inventory.Confidence
		limit inventory.Confidence
		want  inventory.Confidence
	}{
		{"high capped to med", inventory.ConfidenceHigh, inventory.ConfidenceMed, inventory.ConfidenceMed},
		{"low stays low under med cap", inventory.ConfidenceLow, inventory.ConfidenceMed, inventory.ConfidenceLow},
		{"med unchanged by high cap", inventory.ConfidenceMed, inventory.ConfidenceHigh, inventory.ConfidenceMed},
		{"unknown ranks as med", inventory.Confidence("bogus"), inventory.ConfidenceLow, inventory.ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.conf.Cap(tt.limit))
		})
	}
}

func TestRecordHelpers(t *testing.T) {
	r := inventory.ReviewRecord{
		Warehouse:          " 50 ",
		Item:               " itm-1 ",
		Lot:                " L1 ",
		Location:           " a01 ",
		DefaultLocation:    " a01 ",
		SystemQty:          8,
		CountQty:           5,
		LocationType:       " Unsecured ",
		AllocationCategory: " Available ",
	}
	r.Normalize()

	assert.Equal(t, "50", r.Warehouse)
	assert.Equal(t, "A01", r.Location)
	assert.Equal(t, "A01", r.DefaultLocation)
	assert.Equal(t, inventory.GroupKey{Warehouse: "50", Item: "itm-1", Lot: "L1"}, r.Key())
	assert.InDelta(t, -3, r.Delta(), 1e-9)
	assert.True(t, r.Eligible())
	assert.False(t, r.Secured())

	r.LocationType = "SECURED"
	assert.True(t, r.Secured())
	assert.False(t, r.Eligible())
}

func TestParseMode(t *testing.T) {
	m, err := inventory.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, inventory.ModeAdjust, m)

	m, err = inventory.ParseMode(" transfer ")
	require.NoError(t, err)
	assert.Equal(t, inventory.ModeTransfer, m)

	_, err = inventory.ParseMode("MOVE")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestValidateColumns(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		headers := []string{"whs", "LOCATION ", "Location Type", "Allocation Category"}
		assert.NoError(t, inventory.ValidateColumns("locations", headers, inventory.LocationColumns))
	})

	t.Run("missing enumerated in order", func(t *testing.T) {
		headers := []string{"Whs", "Location"}
		err := inventory.ValidateColumns("locations", headers, inventory.LocationColumns)
		require.Error(t, err)

		var schemaErr *pkgerrors.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, []string{"Location Type", "Allocation Category"}, schemaErr.Missing)
		assert.True(t, pkgerrors.IsSchema(err))
	})
}

func TestValidateRecords(t *testing.T) {
	ok := []inventory.ReviewRecord{
		{Warehouse: "50", Item: "itm-1", Location: "A01"},
	}
	assert.NoError(t, inventory.ValidateRecords(ok))

	// Blank lot and default location are legal.
	assert.NoError(t, inventory.ValidateRecords([]inventory.ReviewRecord{
		{Warehouse: "50", Item: "itm-1", Location: "A01", Lot: "", DefaultLocation: ""},
	}))

	err := inventory.ValidateRecords([]inventory.ReviewRecord{
		{Warehouse: "50", Item: "", Location: ""},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Contains(t, err.Error(), "item")
	assert.Contains(t, err.Error(), "location")
}
