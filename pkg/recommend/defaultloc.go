package recommend

import (
	"fmt"

	"github.com/invkit/recount/pkg/inventory"
)

// reconcileDefault determines what remains to adjust at the default
// location after the hypothetical secondary movements, applying the buffer
// tolerance band when the default is eligible for it.
func (r *recommender) reconcileDefault(st *groupState) {
	st.defaultAfter = st.defaultSystem + st.movedIn - st.movedOut
	st.defaultAction = inventory.ActionNone

	switch {
	case st.defaultCount == 0:
		if st.defaultEligible && st.bufferQty > 0 {
			// Buffer stock can plausibly fill the default; an empty count
			// is not by itself a discrepancy.
			target := st.defaultAfter
			st.targetEntry = &target
			st.defaultReason = append(st.defaultReason,
				fmt.Sprintf("%s stock present; default may be physically full (no default-empty issue).", r.opts.bufferLocation))
		} else {
			st.flags.DefaultEmpty = true
			st.defaultAction = inventory.ActionInvestigate
			st.defaultReason = append(st.defaultReason,
				fmt.Sprintf("Default counted 0 with system %s; verify on-hand and adjust down if empty.", qtyString(st.defaultSystem)))
		}

	case st.defaultEligible:
		minExpected := st.defaultAfter
		maxExpected := st.defaultAfter + st.bufferQty
		target := minExpected
		st.defaultReason = append(st.defaultReason,
			"Applied buffer min/max rule on default (unsecured+available).",
			fmt.Sprintf("MIN=%s, MAX=%s, DefaultCount=%s.",
				qtyString(minExpected), qtyString(maxExpected), qtyString(st.defaultCount)))

		switch {
		case st.defaultCount < minExpected:
			st.remaining = st.defaultCount - minExpected
			st.defaultReason = append(st.defaultReason, "Default below MIN; adjust to MIN.")
		case st.defaultCount > maxExpected:
			target = maxExpected
			st.remaining = st.defaultCount - maxExpected
			st.defaultReason = append(st.defaultReason, "Default above MAX; adjust to MAX.")
		default:
			st.defaultReason = append(st.defaultReason, "Default within [MIN, MAX]; snap target entry to MIN.")
		}
		st.targetEntry = &target
		if st.remaining != 0 {
			st.defaultAction = inventory.ActionAdjust
		}

	default:
		// Not eligible for the tolerance band: compare directly.
		target := st.defaultAfter
		st.targetEntry = &target
		st.remaining = st.defaultCount - st.defaultAfter
		st.defaultReason = append(st.defaultReason, "Default not eligible for buffer min/max; compared directly after transfers.")
		switch {
		case st.remaining > 0:
			st.defaultReason = append(st.defaultReason, "Default count above system-after-transfers; adjust up.")
		case st.remaining < 0:
			st.defaultReason = append(st.defaultReason, "Default count below system-after-transfers; adjust down.")
		default:
			st.defaultReason = append(st.defaultReason, "Default matches system-after-transfers; no adjustment required.")
		}
		if st.remaining != 0 {
			st.defaultAction = inventory.ActionAdjust
		}
	}

	// A pending move+recount blocks any net posting: the variance may be
	// sitting in staging, and adjusting now would mask it.
	if st.flags.MoveRecount {
		switch st.defaultAction {
		case inventory.ActionAdjust:
			st.defaultAction = inventory.ActionInvestigate
			st.remaining = 0
			st.defaultReason = append(st.defaultReason,
				"MOVE + RECOUNT recommended; avoid net adjustments while variance may be staged.")
		case inventory.ActionNone:
			st.defaultReason = append(st.defaultReason,
				"MOVE + RECOUNT recommended; verify default after move before adjustments.")
		}
	}
}

// applyDefault stamps the decision onto the default rows. Confidence comes
// from the group aggregation, already capped by the triggered flags.
func (st *groupState) applyDefault(groupConf inventory.Confidence, flagSeverity int) {
	reason := joinReasons(st.defaultReason)
	movement := st.movedIn != 0 || st.movedOut != 0

	for _, i := range st.defaultIdxs {
		row := &st.rows[i]
		row.SuggestedEntryQty = st.targetEntry
		row.Reason = reason
		row.Confidence = groupConf

		switch st.defaultAction {
		case inventory.ActionAdjust:
			row.Action = inventory.ActionAdjust
			row.RecommendedQty = abs(st.remaining)
			row.RemainingAdjustmentQty = st.remaining
			row.Severity = maxInt(80, flagSeverity)
		case inventory.ActionInvestigate:
			row.Action = inventory.ActionInvestigate
			row.Severity = maxInt(85, flagSeverity)
		default:
			row.Action = inventory.ActionNone
			base := 0
			if st.defaultCount == 0 {
				// Plausibly-full empty default; low-urgency verification.
				base = 25
			}
			if movement {
				base = maxInt(base, 60)
			}
			row.Severity = base
		}
	}
}

// applyAdjustMirror converts the group's transfer math into an equivalent
// default-side adjustment when the engine runs in ADJUST mode: the default
// absorbs the secondary offsets on top of its own remaining adjustment.
func (st *groupState) applyAdjustMirror(mode inventory.Mode, groupConf inventory.Confidence, flagSeverity int) {
	if mode != inventory.ModeAdjust || st.flags.MoveRecount {
		return
	}

	totalAdjust := (st.defaultAfter - st.defaultSystem) + st.remaining
	if totalAdjust == 0 {
		return
	}
	for _, i := range st.defaultIdxs {
		if st.rows[i].Action == inventory.ActionInvestigate {
			return
		}
	}

	direction := "up"
	if totalAdjust < 0 {
		direction = "down"
	}
	mirror := fmt.Sprintf("Transfer alternative: adjust default %s %s to offset secondary adjustments.",
		direction, qtyString(abs(totalAdjust)))

	for _, i := range st.defaultIdxs {
		row := &st.rows[i]
		row.Action = inventory.ActionAdjust
		row.RecommendedQty = abs(totalAdjust)
		row.Reason = joinReasons(append(st.defaultReason, mirror))
		row.Confidence = groupConf
		row.Severity = maxInt(row.Severity, maxInt(80, flagSeverity))
	}
}

func joinReasons(reasons []string) string {
	out := ""
	for _, r := range reasons {
		if out == "" {
			out = r
			continue
		}
		out += " " + r
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
