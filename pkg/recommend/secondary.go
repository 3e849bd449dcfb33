package recommend

import (
	"fmt"

	"github.com/invkit/recount/pkg/inventory"
)

// reconcileSecondaries decides an action for every secondary row and
// accumulates the hypothetical movements into and out of the default
// location. Secondary locations must end up accurate: any variance is
// resolved at the secondary itself, with the default absorbing the offset.
func (r *recommender) reconcileSecondaries(st *groupState) []TransferSuggestion {
	var transfers []TransferSuggestion

	for i := range st.rows {
		row := &st.rows[i]
		if row.Role != inventory.RoleSecondary {
			continue
		}

		delta := row.Delta()

		// Secured locations are adjusted straight to the physical count.
		// Never transferred, never deferred to a move-and-recount.
		if row.Secured() && delta != 0 {
			row.Action = inventory.ActionAdjust
			row.RecommendedQty = abs(delta)
			row.Reason = "Secured variance; adjust to physical count (no move or buffer tolerance)."
			row.Confidence = inventory.ConfidenceMed
			row.Severity = 95
			continue
		}

		conf := inventory.ConfidenceHigh
		if st.flags.SecuredVariance {
			conf = inventory.ConfidenceMed
		}

		switch {
		case delta > 0:
			// Physical excess here. If the default's count is unverified or
			// buffer stock could explain it, defer: move the excess to the
			// default and recount before posting anything.
			defaultUnverified := !st.defaultCounted || st.defaultCount == 0
			if defaultUnverified || st.bufferQty > 0 {
				st.flags.MoveRecount = true
				st.movedIn += delta
				row.Action = inventory.ActionInvestigate
				row.RecommendedQty = delta
				row.Reason = "MOVE + RECOUNT: secondary over system; move excess to default and recount default."
				row.Confidence = inventory.ConfidenceMed
				row.Severity = 70
				continue
			}

			st.movedOut += delta
			if r.opts.mode == inventory.ModeTransfer {
				transfers = append(transfers, TransferSuggestion{
					Warehouse:  st.key.Warehouse,
					Item:       st.key.Item,
					Lot:        st.key.Lot,
					Qty:        delta,
					From:       st.defaultLoc,
					To:         row.Location,
					Reason:     "Secondary location must be accurate; system short vs count.",
					Confidence: conf,
					Severity:   90,
				})
				row.Action = inventory.ActionTransfer
				row.RecommendedQty = delta
				row.FromLocation = st.defaultLoc
				row.ToLocation = row.Location
				row.Reason = "Secondary > system; transfer from default to reconcile."
			} else {
				row.Action = inventory.ActionAdjust
				row.RecommendedQty = delta
				row.Reason = "Secondary > system; adjust up here (transfer math preserved)."
			}
			row.Confidence = conf
			row.Severity = 90

		case delta < 0:
			qty := -delta
			st.movedIn += qty

			if r.opts.mode == inventory.ModeTransfer {
				transfers = append(transfers, TransferSuggestion{
					Warehouse:  st.key.Warehouse,
					Item:       st.key.Item,
					Lot:        st.key.Lot,
					Qty:        qty,
					From:       row.Location,
					To:         st.defaultLoc,
					Reason:     "Secondary location must be accurate; excess system qty moved out.",
					Confidence: conf,
					Severity:   90,
				})
				row.Action = inventory.ActionTransfer
				row.RecommendedQty = qty
				row.FromLocation = row.Location
				row.ToLocation = st.defaultLoc
				row.Reason = "Secondary < system; transfer to default to reconcile."
			} else {
				row.Action = inventory.ActionAdjust
				row.RecommendedQty = qty
				row.Reason = "Secondary < system; adjust down here (transfer math preserved)."
			}
			row.Confidence = conf
			row.Severity = 90

		default:
			row.Action = inventory.ActionNone
			row.Reason = "Secondary matches system."
			row.Confidence = inventory.ConfidenceHigh
			row.Severity = 0
		}
	}

	return transfers
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// qtyString formats a quantity the way the review surfaces display them.
func qtyString(v float64) string {
	return fmt.Sprintf("%g", v)
}
