// Package review joins raw count lines with the warehouse-locations
// master into the review-line table the recommendation engine consumes.
package review

import (
	"sort"
	"strings"

	"github.com/invkit/recount/pkg/errors"
	"github.com/invkit/recount/pkg/inventory"
)

// masterKey joins location masters to count lines.
type masterKey struct {
	warehouse string
	location  string
}

// Build left-joins lines against masters on (warehouse, location) and
// returns review records sorted by (warehouse, item, lot, location).
// Lines whose location has no master row carry MissingMaster=true and
// keep blank type and allocation fields; the engine routes those groups
// to investigation rather than failing the build.
func Build(sessionID string, lines []inventory.CountLine, masters []inventory.LocationMaster) ([]inventory.ReviewRecord, error) {
	if len(lines) == 0 {
		return nil, errors.NewValidationError("recount", len(lines), "no count lines to review")
	}

	index := make(map[masterKey]inventory.LocationMaster, len(masters))
	for _, m := range masters {
		m.Normalize()
		index[masterKey{m.Warehouse, m.Location}] = m
	}

	records := make([]inventory.ReviewRecord, 0, len(lines))
	for _, line := range lines {
		line.Normalize()

		r := inventory.ReviewRecord{
			SessionID:       sessionID,
			Warehouse:       line.Warehouse,
			Item:            line.Item,
			Lot:             line.Lot,
			DefaultLocation: line.DefaultLocation,
			Location:        line.Location,
			SystemQty:       line.SystemQty,
			CountQty:        line.CountQty,
			Counted:         line.Counted,
			VarianceQty:     line.VarianceQty,
			Tag:             line.Tag,
			AssignedTo:      line.AssignedTo,
			Description:     line.Description,
			CountStatus:     line.CountStatus,
			Notes:           line.Notes,
		}
		if m, ok := index[masterKey{line.Warehouse, line.Location}]; ok {
			r.LocationType = m.LocationType
			r.AllocationCategory = m.AllocationCategory
		} else {
			r.MissingMaster = true
		}
		records = append(records, r)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return less(&records[i], &records[j])
	})
	return records, nil
}

func less(a, b *inventory.ReviewRecord) bool {
	if c := strings.Compare(a.Warehouse, b.Warehouse); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.Item, b.Item); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.Lot, b.Lot); c != 0 {
		return c < 0
	}
	return a.Location < b.Location
}
