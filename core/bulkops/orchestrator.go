// Package bulkops runs one operation per member of a selection set and
// aggregates partial success and failure.
package bulkops

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/heliumhq/dashboard-api/core"
)

// maxInFlight bounds the fan-out; the original fired every call at once,
// which falls over on large selections.
const maxInFlight = 16

// Operation applies a bulk action to a single target.
type Operation func(ctx context.Context, id string) error

// Result is the settled outcome for one target.
type Result struct {
	TargetID string `json:"target_id"`
	Err      error  `json:"-"`
}

// Summary aggregates the settled outcomes of a bulk run.
type Summary struct {
	SuccessCount int      `json:"success_count"`
	FailureCount int      `json:"failure_count"`
	Errors       []string `json:"errors,omitempty"`
}

// TotalFailure reports whether no target succeeded.
func (s Summary) TotalFailure() bool { return s.SuccessCount == 0 && s.FailureCount > 0 }

// Partial reports whether outcomes were mixed.
func (s Summary) Partial() bool { return s.SuccessCount > 0 && s.FailureCount > 0 }

// Run issues op once per target concurrently and waits for every call to
// settle; a failing target never aborts its siblings. Cancelling ctx is
// the only way to cut the fan-out short (ops are expected to honor it).
//
// An empty target set is a validation error and issues zero calls.
func Run(ctx context.Context, targetIDs []string, op Operation) (Summary, error) {
	if len(targetIDs) == 0 {
		return Summary{}, core.NewValidationError(errors.New("no targets selected"))
	}

	var (
		mu      sync.Mutex
		results = make([]Result, 0, len(targetIDs))
	)

	g := new(errgroup.Group)
	g.SetLimit(maxInFlight)
	for _, id := range targetIDs {
		id := id
		g.Go(func() error {
			err := op(ctx, id)
			mu.Lock()
			results = append(results, Result{TargetID: id, Err: err})
			mu.Unlock()
			return nil // settle semantics: failures are collected, not raised
		})
	}
	_ = g.Wait()

	var summary Summary
	for _, res := range results {
		if res.Err != nil {
			summary.FailureCount++
			summary.Errors = append(summary.Errors, res.TargetID+": "+res.Err.Error())
		} else {
			summary.SuccessCount++
		}
	}
	return summary, nil
}

// RunSelected runs op over the current selection and applies the clearing
// policy: the selection is cleared on full or partial success, and kept
// only on total failure so the user can retry the same targets.
func RunSelected(ctx context.Context, sel *SelectionSet, op Operation) (Summary, error) {
	summary, err := Run(ctx, sel.IDs(), op)
	if err != nil {
		return summary, err
	}
	if !summary.TotalFailure() {
		sel.Clear()
	}
	return summary, nil
}
