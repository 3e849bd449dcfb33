// Package recommend implements the cycle-count reconciliation engine. Given
// review lines grouped by warehouse/item/lot, it classifies each location's
// role (default, secondary, buffer), decides a corrective action per
// location, balances the group so net corrections stay consistent, and emits
// confidence/severity-scored recommendations per group.
//
// The engine is a pure batch transformation: it never mutates its input and
// never executes a movement or posting itself.
package recommend

import (
	"context"
	"sync"

	"github.com/invkit/recount/pkg/errors"
	"github.com/invkit/recount/pkg/inventory"
)

// Recommender reconciles review lines into recommendations.
type Recommender interface {
	// Apply runs the engine over records and returns the enriched lines,
	// transfer suggestions, and group summaries. The input slice is not
	// modified.
	Apply(ctx context.Context, records []inventory.ReviewRecord) (*Result, error)
}

// recommender is the default implementation of Recommender.
type recommender struct {
	opts *options
}

// New creates a new Recommender with options.
func New(opts ...Option) (Recommender, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &recommender{opts: options}, nil
}

// group is one reconciliation unit: the record indices of a shared
// (warehouse, item, lot) key, in input order.
type group struct {
	key     inventory.GroupKey
	indices []int
}

// groupOutcome holds one group's slice of each output table.
type groupOutcome struct {
	records   []inventory.ReviewRecord // same order as group.indices
	transfers []TransferSuggestion
	summary   GroupSummary
}

// Apply implements Recommender.
func (r *recommender) Apply(ctx context.Context, records []inventory.ReviewRecord) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}

	result := NewResult(r.opts.mode)

	// Work on an isolated copy; inputs stay untouched.
	working := make([]inventory.ReviewRecord, len(records))
	copy(working, records)
	for i := range working {
		working[i].Normalize()
	}
	if err := inventory.ValidateRecords(working); err != nil {
		return nil, err
	}

	groups := groupRecords(working)

	r.opts.logger.Debug().
		Int("records", len(working)).
		Int("groups", len(groups)).
		Str("mode", string(r.opts.mode)).
		Msg("Starting reconciliation")

	// Groups are data-independent, so each one reconciles in its own
	// goroutine from an isolated copy. Outcomes land in a fixed slot per
	// group; the merge below needs no further synchronization.
	outcomes := make([]groupOutcome, len(groups))
	var wg sync.WaitGroup
	for i, g := range groups {
		wg.Add(1)
		go func(slot int, g group) {
			defer wg.Done()

			rows := make([]inventory.ReviewRecord, len(g.indices))
			for j, idx := range g.indices {
				rows[j] = working[idx]
			}
			outcomes[slot] = r.reconcileGroup(g.key, rows)
		}(i, g)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}

	// Concatenate deterministically: groups in first-appearance order,
	// records back into input order.
	result.Records = working
	for i, g := range groups {
		out := outcomes[i]
		for j, idx := range g.indices {
			result.Records[idx] = out.records[j]
		}
		result.Transfers = append(result.Transfers, out.transfers...)
		result.Summaries = append(result.Summaries, out.summary)
	}

	result.Finalize()

	r.opts.logger.Info().
		Int("records", result.Metadata.Stats.Records).
		Int("groups", result.Metadata.Stats.Groups).
		Int("transfers", result.Metadata.Stats.Transfers).
		Int("investigations", result.Metadata.Stats.Investigations).
		Msg("Reconciliation complete")

	return result, nil
}

// reconcileGroup routes one group through the warehouse guardrail and the
// full pipeline.
func (r *recommender) reconcileGroup(key inventory.GroupKey, rows []inventory.ReviewRecord) groupOutcome {
	if key.Warehouse != r.opts.primaryWarehouse {
		return r.reconcileNonPrimary(key, rows)
	}
	return r.reconcilePrimary(key, rows)
}

// groupRecords buckets records by group key in first-appearance order.
func groupRecords(records []inventory.ReviewRecord) []group {
	var groups []group
	slot := make(map[inventory.GroupKey]int)
	for i := range records {
		key := records[i].Key()
		s, ok := slot[key]
		if !ok {
			s = len(groups)
			slot[key] = s
			groups = append(groups, group{key: key})
		}
		groups[s].indices = append(groups[s].indices, i)
	}
	return groups
}
