package recommend

import (
	"github.com/invkit/recount/pkg/inventory"
)

// reconcilePrimary runs the full default/secondary/buffer pipeline over one
// group of the primary warehouse: classify roles, reconcile secondaries,
// settle the default against the buffer tolerance band, then aggregate.
func (r *recommender) reconcilePrimary(key inventory.GroupKey, rows []inventory.ReviewRecord) groupOutcome {
	st := &groupState{key: key, rows: rows}

	if !r.classify(st) {
		// Malformed group; every row is already marked INVESTIGATE.
		for i := range st.rows {
			if st.rows[i].Location == r.opts.bufferLocation {
				st.bufferQty += st.rows[i].SystemQty
			}
		}
		return groupOutcome{
			records: st.rows,
			summary: st.summarize(inventory.ConfidenceLow, st.rows[0].Severity, st.rows[0].GroupHeadline, true),
		}
	}

	transfers := r.reconcileSecondaries(st)
	r.reconcileDefault(st)

	conf := st.groupConfidence()
	flagSev := st.flagSeverity()
	st.applyDefault(conf, flagSev)
	st.applyAdjustMirror(r.opts.mode, conf, flagSev)

	severity := st.groupSeverity()
	headline := st.headline()

	// Stamp the group outcome onto every row for easy filtering.
	for i := range st.rows {
		st.rows[i].GroupHeadline = headline
		st.rows[i].RemainingAdjustmentQty = st.remaining
		if st.rows[i].Confidence == "" {
			st.rows[i].Confidence = conf
		}
	}

	return groupOutcome{
		records:   st.rows,
		transfers: transfers,
		summary:   st.summarize(conf, severity, headline, false),
	}
}
