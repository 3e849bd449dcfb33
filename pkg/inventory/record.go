// Package inventory defines the data model shared by the recount loaders,
// review-line builder, and recommendation engine: one ReviewRecord per
// (warehouse, item, lot, location) observation, plus the enums the engine
// stamps onto its working copies.
package inventory

import "strings"

// Role classifies a location within its (warehouse, item, lot) group.
type Role string

// Location roles.
const (
	RoleNone      Role = ""
	RoleDefault   Role = "Default"
	RoleSecondary Role = "Secondary"
	RoleBuffer    Role = "Buffer"
)

// Action is the corrective action recommended for a record.
type Action string

// Recommended actions.
const (
	ActionNone        Action = "NO_ACTION"
	ActionAdjust      Action = "ADJUST"
	ActionTransfer    Action = "TRANSFER"
	ActionInvestigate Action = "INVESTIGATE"
)

// Confidence is the qualitative certainty attached to a recommendation.
type Confidence string

// Confidence levels, ordered Low < Med < High.
const (
	ConfidenceLow  Confidence = "Low"
	ConfidenceMed  Confidence = "Med"
	ConfidenceHigh Confidence = "High"
)

// confidenceRank orders confidence levels for capping.
var confidenceRank = map[Confidence]int{
	ConfidenceLow:  0,
	ConfidenceMed:  1,
	ConfidenceHigh: 2,
}

// Cap returns the lower of c and limit. Unknown values rank as Med.
func (c Confidence) Cap(limit Confidence) Confidence {
	if rank(c) <= rank(limit) {
		return c
	}
	return limit
}

func rank(c Confidence) int {
	if r, ok := confidenceRank[c]; ok {
		return r
	}
	return confidenceRank[ConfidenceMed]
}

// GroupKey identifies a reconciliation group. Records sharing a key are
// reconciled together; the engine never reconciles across keys.
type GroupKey struct {
	Warehouse string `json:"warehouse" yaml:"warehouse"`
	Item      string `json:"item" yaml:"item"`
	Lot       string `json:"lot" yaml:"lot"`
}

// ReviewRecord is one (warehouse, item, lot, location) observation joined
// from the count data and the location master. Input fields are read-only;
// the engine fills the derived fields on a working copy per invocation.
type ReviewRecord struct {
	SessionID          string  `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Warehouse          string  `json:"warehouse" yaml:"warehouse"`
	Item               string  `json:"item" yaml:"item"`
	Lot                string  `json:"lot" yaml:"lot"`
	DefaultLocation    string  `json:"default_location" yaml:"default_location"`
	Location           string  `json:"location" yaml:"location"`
	SystemQty          float64 `json:"system_qty" yaml:"system_qty"`
	CountQty           float64 `json:"counted_qty" yaml:"counted_qty"`
	Counted            bool    `json:"counted" yaml:"counted"` // false when the physical count is absent
	VarianceQty        float64 `json:"variance_qty" yaml:"variance_qty"`
	LocationType       string  `json:"location_type" yaml:"location_type"`
	AllocationCategory string  `json:"allocation_category" yaml:"allocation_category"`
	MissingMaster      bool    `json:"missing_master" yaml:"missing_master"`

	// Optional passthrough columns from the recount workbook.
	Tag         string `json:"tag,omitempty" yaml:"tag,omitempty"`
	AssignedTo  string `json:"assigned_to,omitempty" yaml:"assigned_to,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	CountStatus string `json:"count_status,omitempty" yaml:"count_status,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// Derived fields, filled by the recommendation engine.
	Role                   Role       `json:"role,omitempty" yaml:"role,omitempty"`
	Action                 Action     `json:"action,omitempty" yaml:"action,omitempty"`
	RecommendedQty         float64    `json:"recommended_qty" yaml:"recommended_qty"`
	SuggestedEntryQty      *float64   `json:"suggested_entry_qty,omitempty" yaml:"suggested_entry_qty,omitempty"`
	FromLocation           string     `json:"from_location,omitempty" yaml:"from_location,omitempty"`
	ToLocation             string     `json:"to_location,omitempty" yaml:"to_location,omitempty"`
	RemainingAdjustmentQty float64    `json:"remaining_adjustment_qty" yaml:"remaining_adjustment_qty"`
	Reason                 string     `json:"reason,omitempty" yaml:"reason,omitempty"`
	Confidence             Confidence `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Severity               int        `json:"severity" yaml:"severity"`
	GroupHeadline          string     `json:"group_headline,omitempty" yaml:"group_headline,omitempty"`
}

// Key returns the record's reconciliation group key.
func (r *ReviewRecord) Key() GroupKey {
	return GroupKey{Warehouse: r.Warehouse, Item: r.Item, Lot: r.Lot}
}

// Delta is counted minus system quantity. Absent counts read as zero,
// matching the source workbooks' coercion.
func (r *ReviewRecord) Delta() float64 {
	return r.CountQty - r.SystemQty
}

// Secured reports whether the location master marks this location secured.
func (r *ReviewRecord) Secured() bool {
	return strings.EqualFold(strings.TrimSpace(r.LocationType), "secured")
}

// Eligible reports whether this record's location qualifies for the buffer
// tolerance-band rule: unsecured and allocation category "available".
func (r *ReviewRecord) Eligible() bool {
	return strings.EqualFold(strings.TrimSpace(r.LocationType), "unsecured") &&
		strings.EqualFold(strings.TrimSpace(r.AllocationCategory), "available")
}

// Normalize trims and upper-cases the grouping keys in place. Loaders call
// it once per record; the engine also normalizes its working copies so
// direct library callers get the same grouping behavior.
func (r *ReviewRecord) Normalize() {
	r.Warehouse = strings.TrimSpace(r.Warehouse)
	r.Item = strings.TrimSpace(r.Item)
	r.Lot = strings.TrimSpace(r.Lot)
	r.Location = strings.ToUpper(strings.TrimSpace(r.Location))
	r.DefaultLocation = strings.ToUpper(strings.TrimSpace(r.DefaultLocation))
}
