// Package solve orchestrates the full pipeline: the genetic search
// (S), which itself drives placement (P) and compaction (C) each
// generation, followed by the unload planner (U) and the validator
// (V) over the winning layout. It also exposes a constructive-only
// fast path that skips the genetic search entirely.
package solve

import (
	"fmt"

	"github.com/piwi3910/uldsolve/internal/compact"
	"github.com/piwi3910/uldsolve/internal/genetic"
	"github.com/piwi3910/uldsolve/internal/model"
	"github.com/piwi3910/uldsolve/internal/pack"
	"github.com/piwi3910/uldsolve/internal/unload"
	"github.com/piwi3910/uldsolve/internal/validate"
)

// Plan is the full solve output: the validated layout, its summary
// totals, and an unload order per ULD.
type Plan struct {
	Result      model.Result
	UnloadOrder map[string][]string // uld id -> package ids, removal order
}

// Solve runs the genetic search to find a layout, then validates and
// plans unloading for it. Returns an error if any input package/ULD
// fails Validate, or if the winning layout fails validation (an
// InvariantViolation from internal/validate). If one or more priority
// packages could not be placed, it returns the best-effort Plan
// alongside a *model.InfeasibleError rather than failing outright.
func Solve(packages []model.Package, ulds []model.ULD, cfg model.SolverConfig) (Plan, error) {
	if err := validateInputs(packages, ulds); err != nil {
		return Plan{}, err
	}

	layout := genetic.Run(packages, ulds, cfg)
	return finish(layout, packages, ulds)
}

// SolveFast runs only the constructive placement-and-compaction path,
// skipping the genetic search entirely. This backs the "mock" request
// path the HTTP API offers for near-instant turnaround.
func SolveFast(packages []model.Package, ulds []model.ULD, cfg model.SolverConfig) (Plan, error) {
	if err := validateInputs(packages, ulds); err != nil {
		return Plan{}, err
	}

	layout := pack.Place(packages, ulds, cfg)
	layout = compact.Compact(layout, ulds)
	return finish(layout, packages, ulds)
}

func validateInputs(packages []model.Package, ulds []model.ULD) error {
	for _, u := range ulds {
		if err := u.Validate(); err != nil {
			return err
		}
	}
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func finish(layout model.Layout, packages []model.Package, ulds []model.ULD) (Plan, error) {
	if err := validate.Layout(layout, ulds, packages); err != nil {
		return Plan{}, fmt.Errorf("solved layout failed validation: %w", err)
	}

	packsByID := make(map[string]model.Package, len(packages))
	for _, p := range packages {
		packsByID[p.ID] = p
	}

	result := model.Result{
		Layout:            layout,
		TotalCost:         layout.UnplacedCost(packsByID),
		NumberPacked:      len(layout.Placements),
		NumberPriorityULD: layout.PriorityULDCount(packsByID),
	}
	if err := validate.Totals(result, packsByID); err != nil {
		return Plan{}, fmt.Errorf("result totals failed validation: %w", err)
	}

	unloadOrder := make(map[string][]string, len(ulds))
	for _, u := range ulds {
		order, err := unload.Plan(layout, u.ID)
		if err != nil {
			return Plan{}, fmt.Errorf("unload plan for uld %s: %w", u.ID, err)
		}
		unloadOrder[u.ID] = order
	}

	plan := Plan{Result: result, UnloadOrder: unloadOrder}

	// A priority package left unplaced is a legitimate Infeasible
	// outcome (spec.md §7), not an InvariantViolation: surface it
	// alongside the best-effort plan rather than discarding the layout.
	if ids := unplacedPriorityIDs(layout, packsByID); len(ids) > 0 {
		return plan, model.NewInfeasibleError(ids)
	}

	return plan, nil
}

// unplacedPriorityIDs returns the ids, in layout.Unplaced order, of
// every unplaced package that was marked priority.
func unplacedPriorityIDs(layout model.Layout, packsByID map[string]model.Package) []string {
	var ids []string
	for _, id := range layout.Unplaced {
		if pk, ok := packsByID[id]; ok && pk.Priority {
			ids = append(ids, id)
		}
	}
	return ids
}
