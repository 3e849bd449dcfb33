package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invkit/recount/internal/review"
	"github.com/invkit/recount/pkg/inventory"
)

func TestBuildJoinsLocationMaster(t *testing.T) {
	lines := []inventory.CountLine{
		{Warehouse: "50", Item: "itm-1", Location: "a01", DefaultLocation: "a01",
			SystemQty: 10, CountQty: 10, Counted: true},
		{Warehouse: "50", Item: "itm-1", Location: "GHOST",
			DefaultLocation: "A01", SystemQty: 2},
	}
	masters := []inventory.LocationMaster{
		{Warehouse: "50", Location: "A01", LocationType: "Unsecured", AllocationCategory: "Available"},
	}

	records, err := review.Build("s-1", lines, masters)
	require.NoError(t, err)
	require.Len(t, records, 2)

	matched := records[0]
	assert.Equal(t, "s-1", matched.SessionID)
	assert.Equal(t, "A01", matched.Location)
	assert.Equal(t, "Unsecured", matched.LocationType)
	assert.Equal(t, "Available", matched.AllocationCategory)
	assert.False(t, matched.MissingMaster)

	unmatched := records[1]
	assert.Equal(t, "GHOST", unmatched.Location)
	assert.True(t, unmatched.MissingMaster)
	assert.Empty(t, unmatched.LocationType)
}

func TestBuildNormalizesJoinKeys(t *testing.T) {
	lines := []inventory.CountLine{
		{Warehouse: " 50 ", Item: "itm-1", Location: " a01 "},
	}
	masters := []inventory.LocationMaster{
		{Warehouse: "50", Location: "a01", LocationType: "Unsecured", AllocationCategory: "Available"},
	}

	records, err := review.Build("s-1", lines, masters)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].MissingMaster)
	assert.Equal(t, "50", records[0].Warehouse)
	assert.Equal(t, "A01", records[0].Location)
}

func TestBuildSortsByGroupThenLocation(t *testing.T) {
	lines := []inventory.CountLine{
		{Warehouse: "60", Item: "a", Location: "Z9"},
		{Warehouse: "50", Item: "b", Lot: "L2", Location: "A01"},
		{Warehouse: "50", Item: "b", Lot: "L1", Location: "B02"},
		{Warehouse: "50", Item: "b", Lot: "L1", Location: "A01"},
		{Warehouse: "50", Item: "a", Location: "C03"},
	}

	records, err := review.Build("s-1", lines, nil)
	require.NoError(t, err)

	var got [][4]string
	for _, r := range records {
		got = append(got, [4]string{r.Warehouse, r.Item, r.Lot, r.Location})
	}
	want := [][4]string{
		{"50", "a", "", "C03"},
		{"50", "b", "L1", "A01"},
		{"50", "b", "L1", "B02"},
		{"50", "b", "L2", "A01"},
		{"60", "a", "", "Z9"},
	}
	assert.Equal(t, want, got)
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	_, err := review.Build("s-1", nil, nil)
	assert.Error(t, err)
}
