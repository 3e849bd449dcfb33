package recommend

import (
	"fmt"

	"github.com/invkit/recount/pkg/inventory"
)

// groupState carries one group's working values through the pipeline stages.
// Every stage reads and writes the same state; rows are the group's working
// copies in input order.
type groupState struct {
	key  inventory.GroupKey
	rows []inventory.ReviewRecord

	defaultLoc  string
	defaultIdxs []int // indices into rows with the default role
	flags       Flags

	bufferQty       float64
	defaultSystem   float64
	defaultCount    float64
	defaultCounted  bool // any default row has a physical count recorded
	defaultEligible bool

	movedIn  float64 // quantity hypothetically moved into the default
	movedOut float64 // quantity hypothetically moved out of the default

	defaultAfter  float64
	remaining     float64
	defaultAction inventory.Action
	defaultReason []string
	targetEntry   *float64
}

// classify assigns a role to every row and detects malformed groups. It
// returns false when the group is terminal: all rows are already marked
// INVESTIGATE and no further reconciliation applies.
func (r *recommender) classify(st *groupState) bool {
	// Any location missing from master data makes the whole group
	// unreconcilable; quantities at an unknown location cannot be trusted.
	for i := range st.rows {
		if st.rows[i].MissingMaster {
			st.flags.MissingMaster = true
			r.terminal(st, "Investigate: location not in master",
				fmt.Sprintf("Location %s is not in the location master; reconcile manually.", st.rows[i].Location), 100)
			return false
		}
	}

	for i := range st.rows {
		if st.rows[i].DefaultLocation != "" {
			st.defaultLoc = st.rows[i].DefaultLocation
			break
		}
	}
	if st.defaultLoc == "" {
		st.flags.DefaultMissing = true
		r.terminal(st, "Investigate: default location missing",
			"DefaultLocation is blank; cannot reconcile group automatically.", 85)
		return false
	}

	for i := range st.rows {
		row := &st.rows[i]
		switch row.Location {
		case r.opts.bufferLocation:
			row.Role = inventory.RoleBuffer
			row.Action = inventory.ActionNone
			row.Reason = fmt.Sprintf("%s is system-only; do not count or adjust.", r.opts.bufferLocation)
			row.Confidence = inventory.ConfidenceHigh
			row.Severity = 0
			st.bufferQty += row.SystemQty
		case st.defaultLoc:
			row.Role = inventory.RoleDefault
			st.defaultIdxs = append(st.defaultIdxs, i)
			st.defaultSystem += row.SystemQty
			st.defaultCount += row.CountQty
			if row.Counted {
				st.defaultCounted = true
			}
		default:
			row.Role = inventory.RoleSecondary
		}
	}

	if len(st.defaultIdxs) == 0 {
		st.flags.DefaultRowMissing = true
		r.terminal(st, "Investigate: default row missing",
			fmt.Sprintf("DefaultLocation '%s' not present in recount lines.", st.defaultLoc), 85)
		return false
	}

	// Eligibility comes from the master metadata on the default row.
	st.defaultEligible = st.rows[st.defaultIdxs[0]].Eligible()

	// Secured variance anywhere among actionable rows caps how much the
	// automatic branches are trusted. Buffer rows are book-only and do not
	// participate.
	for i := range st.rows {
		if st.rows[i].Role != inventory.RoleBuffer && st.rows[i].Secured() && st.rows[i].Delta() != 0 {
			st.flags.SecuredVariance = true
			break
		}
	}

	return true
}

// terminal routes every row of a malformed group to INVESTIGATE.
func (r *recommender) terminal(st *groupState, headline, reason string, severity int) {
	for i := range st.rows {
		row := &st.rows[i]
		row.Action = inventory.ActionInvestigate
		row.Reason = reason
		row.Confidence = inventory.ConfidenceLow
		row.Severity = severity
		row.GroupHeadline = headline
	}
	st.defaultReason = append(st.defaultReason, reason)
}
