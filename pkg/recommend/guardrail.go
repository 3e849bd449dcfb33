package recommend

import (
	"fmt"

	"github.com/invkit/recount/pkg/inventory"
)

// reconcileNonPrimary applies the reduced rule for warehouses outside the
// primary: no default/buffer semantics, no transfers, no move-recount.
// Every non-buffer location is reconciled independently to its own count.
func (r *recommender) reconcileNonPrimary(key inventory.GroupKey, rows []inventory.ReviewRecord) groupOutcome {
	st := &groupState{key: key, rows: rows}
	st.flags.NonPrimary = true

	for i := range st.rows {
		if st.rows[i].DefaultLocation != "" {
			st.defaultLoc = st.rows[i].DefaultLocation
			break
		}
	}

	var netVariance float64
	for i := range st.rows {
		row := &st.rows[i]

		if row.Location == r.opts.bufferLocation {
			row.Role = inventory.RoleBuffer
			row.Action = inventory.ActionNone
			row.Reason = fmt.Sprintf("%s is system-only; do not count or adjust.", r.opts.bufferLocation)
			row.Confidence = inventory.ConfidenceHigh
			row.Severity = 0
			st.bufferQty += row.SystemQty
			continue
		}

		row.Role = inventory.RoleSecondary
		delta := row.Delta()
		netVariance += delta

		if delta == 0 {
			row.Action = inventory.ActionNone
			row.Reason = "Non-primary warehouse: location matches system."
			row.Confidence = inventory.ConfidenceHigh
			row.Severity = 0
			continue
		}

		row.Action = inventory.ActionAdjust
		row.RecommendedQty = abs(delta)
		row.RemainingAdjustmentQty = delta
		row.Reason = "Non-primary warehouse: adjust location to physical count."
		row.Confidence = inventory.ConfidenceHigh
		row.Severity = 80
	}

	headline := "No variance"
	severity := 0
	if netVariance != 0 {
		direction := "up"
		if netVariance < 0 {
			direction = "down"
		}
		headline = fmt.Sprintf("Adjust %s %s", direction, qtyString(abs(netVariance)))
		severity = 80
	}

	for i := range st.rows {
		st.rows[i].GroupHeadline = headline
	}

	st.remaining = netVariance
	summary := st.summarize(inventory.ConfidenceHigh, severity, headline, true)
	return groupOutcome{records: st.rows, summary: summary}
}
