package inventory

import "strings"

// CountLine is one raw row from the recount workbook, before enrichment
// with location master data.
type CountLine struct {
	Warehouse       string
	Item            string
	Lot             string
	Location        string
	DefaultLocation string
	SystemQty       float64
	CountQty        float64
	Counted         bool
	VarianceQty     float64

	// Optional columns carried through when present.
	Tag         string
	AssignedTo  string
	Description string
	CountStatus string
	Notes       string
}

// Normalize trims and upper-cases the join keys in place.
func (l *CountLine) Normalize() {
	l.Warehouse = strings.TrimSpace(l.Warehouse)
	l.Item = strings.TrimSpace(l.Item)
	l.Lot = strings.TrimSpace(l.Lot)
	l.Location = strings.ToUpper(strings.TrimSpace(l.Location))
	l.DefaultLocation = strings.ToUpper(strings.TrimSpace(l.DefaultLocation))
}

// LocationMaster is one row of the warehouse-locations master data.
type LocationMaster struct {
	Warehouse          string
	Location           string
	LocationType       string
	AllocationCategory string
}

// Normalize trims and upper-cases the join keys in place.
func (m *LocationMaster) Normalize() {
	m.Warehouse = strings.TrimSpace(m.Warehouse)
	m.Location = strings.ToUpper(strings.TrimSpace(m.Location))
	m.LocationType = strings.TrimSpace(m.LocationType)
	m.AllocationCategory = strings.TrimSpace(m.AllocationCategory)
}
