package recommend

import (
	"fmt"

	"github.com/invkit/recount/pkg/inventory"
)

// groupConfidence starts at High and is monotonically capped downward by
// each triggered flag. Flags never raise confidence.
func (st *groupState) groupConfidence() inventory.Confidence {
	conf := inventory.ConfidenceHigh
	if st.flags.MissingMaster || st.flags.DefaultMissing || st.flags.DefaultRowMissing {
		conf = conf.Cap(inventory.ConfidenceLow)
	}
	if st.flags.SecuredVariance {
		conf = conf.Cap(inventory.ConfidenceMed)
	}
	if st.flags.MoveRecount {
		conf = conf.Cap(inventory.ConfidenceMed)
	}
	if st.flags.DefaultEmpty {
		conf = conf.Cap(inventory.ConfidenceMed)
	}
	return conf
}

// flagSeverity is the minimum severity implied by the triggered flags alone.
func (st *groupState) flagSeverity() int {
	sev := 0
	if st.flags.MissingMaster {
		sev = maxInt(sev, 100)
	}
	if st.flags.SecuredVariance {
		sev = maxInt(sev, 95)
	}
	if st.flags.MoveRecount {
		sev = maxInt(sev, 70)
	}
	if st.flags.DefaultEmpty {
		sev = maxInt(sev, 85)
	}
	if st.flags.DefaultMissing || st.flags.DefaultRowMissing {
		sev = maxInt(sev, 85)
	}
	return sev
}

// groupSeverity is the maximum of the flag severities and all row
// severities, with a floor of 60 whenever any movement occurred; movement
// with net-zero adjustment still warrants attention.
func (st *groupState) groupSeverity() int {
	sev := st.flagSeverity()
	for i := range st.rows {
		sev = maxInt(sev, st.rows[i].Severity)
	}
	if st.remaining != 0 {
		sev = maxInt(sev, 80)
	}
	if st.movedIn != 0 || st.movedOut != 0 {
		sev = maxInt(sev, 60)
	}
	return sev
}

// headline selects the group's one-line outcome. First match wins.
func (st *groupState) headline() string {
	switch {
	case st.flags.MissingMaster:
		return "Investigate: location not in master"
	case st.flags.DefaultMissing:
		return "Investigate: default location missing"
	case st.flags.DefaultRowMissing:
		return "Investigate: default row missing"
	case st.flags.MoveRecount:
		return "Investigate: move + recount recommended"
	case st.flags.SecuredVariance:
		return "Investigate: secured location variance"
	case st.flags.DefaultEmpty:
		return "Action needed: default counted zero (verify on-hand)"
	}

	movement := st.movedIn != 0 || st.movedOut != 0
	if st.remaining != 0 {
		direction := "up"
		if st.remaining < 0 {
			direction = "down"
		}
		if movement {
			return fmt.Sprintf("Adjust %s %s after transfers", direction, qtyString(abs(st.remaining)))
		}
		return fmt.Sprintf("Adjust %s %s", direction, qtyString(abs(st.remaining)))
	}
	if movement {
		return "Moves or transfers only (resolve via default)"
	}
	return "No variance"
}

// summarize builds the group-summary row from the finished state.
func (st *groupState) summarize(conf inventory.Confidence, severity int, headline string, terminal bool) GroupSummary {
	var systemTotal, countTotal float64
	for i := range st.rows {
		systemTotal += st.rows[i].SystemQty
		countTotal += st.rows[i].CountQty
	}

	summary := GroupSummary{
		Key:             st.key,
		DefaultLocation: st.defaultLoc,
		SystemTotal:     systemTotal,
		CountTotal:      countTotal,
		NetVariance:     countTotal - systemTotal,
		BufferQty:       st.bufferQty,
		Flags:           st.flags,
		Headline:        headline,
		RemainingAdj:    st.remaining,
		Confidence:      conf,
		Severity:        severity,
	}
	if !terminal {
		after := st.defaultAfter
		count := st.defaultCount
		summary.DefaultAfter = &after
		summary.DefaultCount = &count
	}
	return summary
}
