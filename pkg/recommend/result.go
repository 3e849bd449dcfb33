package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/invkit/recount/pkg/inventory"
)

// TransferSuggestion proposes one physical movement between two locations of
// the same warehouse/item/lot. Quantities are always positive; direction is
// carried by From and To.
type TransferSuggestion struct {
	Warehouse  string               `json:"warehouse" yaml:"warehouse"`
	Item       string               `json:"item" yaml:"item"`
	Lot        string               `json:"lot" yaml:"lot"`
	Qty        float64              `json:"qty" yaml:"qty"`
	From       string               `json:"from_location" yaml:"from_location"`
	To         string               `json:"to_location" yaml:"to_location"`
	Reason     string               `json:"reason" yaml:"reason"`
	Confidence inventory.Confidence `json:"confidence" yaml:"confidence"`
	Severity   int                  `json:"severity" yaml:"severity"`
}

// Flags records which risk conditions a group triggered. It replaces the
// source system's free-form flag strings with a fixed set of booleans.
type Flags struct {
	MissingMaster     bool `json:"missing_master" yaml:"missing_master"`
	SecuredVariance   bool `json:"secured_variance" yaml:"secured_variance"`
	MoveRecount       bool `json:"move_recount" yaml:"move_recount"`
	DefaultEmpty      bool `json:"default_empty" yaml:"default_empty"`
	DefaultMissing    bool `json:"default_missing" yaml:"default_missing"`
	DefaultRowMissing bool `json:"default_row_missing" yaml:"default_row_missing"`
	NonPrimary        bool `json:"non_primary" yaml:"non_primary"`
}

// Any reports whether any flag is set.
func (f Flags) Any() bool {
	return f.MissingMaster || f.SecuredVariance || f.MoveRecount ||
		f.DefaultEmpty || f.DefaultMissing || f.DefaultRowMissing || f.NonPrimary
}

// String renders the triggered flags as a comma-joined list for display and
// export, in priority order.
func (f Flags) String() string {
	var names []string
	if f.MissingMaster {
		names = append(names, "MissingMaster")
	}
	if f.DefaultMissing {
		names = append(names, "DefaultMissing")
	}
	if f.DefaultRowMissing {
		names = append(names, "DefaultRowMissing")
	}
	if f.SecuredVariance {
		names = append(names, "SecuredVariance")
	}
	if f.MoveRecount {
		names = append(names, "MoveRecount")
	}
	if f.DefaultEmpty {
		names = append(names, "DefaultEmpty")
	}
	if f.NonPrimary {
		names = append(names, "NonPrimary")
	}
	return strings.Join(names, ",")
}

// GroupSummary is one row per (warehouse, item, lot) group.
type GroupSummary struct {
	Key             inventory.GroupKey   `json:"key" yaml:"key"`
	DefaultLocation string               `json:"default_location" yaml:"default_location"`
	SystemTotal     float64              `json:"system_total" yaml:"system_total"`
	CountTotal      float64              `json:"count_total" yaml:"count_total"`
	NetVariance     float64              `json:"net_variance" yaml:"net_variance"`
	BufferQty       float64              `json:"buffer_qty" yaml:"buffer_qty"`
	DefaultAfter    *float64             `json:"default_after,omitempty" yaml:"default_after,omitempty"`
	DefaultCount    *float64             `json:"default_count,omitempty" yaml:"default_count,omitempty"`
	Flags           Flags                `json:"flags" yaml:"flags"`
	Headline        string               `json:"headline" yaml:"headline"`
	RemainingAdj    float64              `json:"remaining_adjustment_qty" yaml:"remaining_adjustment_qty"`
	Confidence      inventory.Confidence `json:"confidence" yaml:"confidence"`
	Severity        int                  `json:"severity" yaml:"severity"`
}

// Result represents the outcome of one reconciliation run.
type Result struct {
	// Records are the enriched review lines, in input order.
	Records []inventory.ReviewRecord

	// Transfers is empty when the mode is ADJUST or nothing is movable.
	Transfers []TransferSuggestion

	// Summaries holds one row per group, in first-appearance order.
	Summaries []GroupSummary

	// Metadata about the run.
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation run.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Mode      inventory.Mode
	Stats     ResultStatistics
}

// ResultStatistics contains counters accumulated during the run.
type ResultStatistics struct {
	Records        int
	Groups         int
	Transfers      int
	Adjustments    int
	Investigations int
}

// Summary returns a human-readable one-line summary of the run.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("Reconciled %d records in %d groups: %d transfers, %d adjustments, %d investigations",
		s.Records, s.Groups, s.Transfers, s.Adjustments, s.Investigations)
}

// NewResult creates a result with the start time set.
func NewResult(mode inventory.Mode) *Result {
	return &Result{
		Transfers: []TransferSuggestion{},
		Summaries: []GroupSummary{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			Mode:      mode,
		},
	}
}

// Finalize calculates duration and tallies action counts.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)

	stats := ResultStatistics{
		Records: len(r.Records),
		Groups:  len(r.Summaries),
	}
	stats.Transfers = len(r.Transfers)
	for i := range r.Records {
		switch r.Records[i].Action {
		case inventory.ActionAdjust:
			stats.Adjustments++
		case inventory.ActionInvestigate:
			stats.Investigations++
		}
	}
	r.Metadata.Stats = stats
}
