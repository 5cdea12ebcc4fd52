package pack

import (
	"sort"

	"github.com/piwi3910/uldsolve/internal/geom"
	"github.com/piwi3910/uldsolve/internal/model"
)

// Engine owns the mutable per-ULD packing state for one solve attempt.
// It is not safe for concurrent use; the genetic search gives each
// worker its own Engine (and its own copy of ULD/placement state) per
// the concurrency model in spec.md §5.
type Engine struct {
	cfg       model.SolverConfig
	packsByID map[string]model.Package
	states    map[string]*uldState
	uldOrder  []string
}

// NewEngine builds an Engine with one empty uldState per ULD, in the
// given order (the order in which try_place attempts each ULD).
func NewEngine(ulds []model.ULD, packages []model.Package, cfg model.SolverConfig) *Engine {
	e := &Engine{
		cfg:       cfg,
		packsByID: make(map[string]model.Package, len(packages)),
		states:    make(map[string]*uldState, len(ulds)),
		uldOrder:  make([]string, len(ulds)),
	}
	for i, u := range ulds {
		e.states[u.ID] = newULDState(u)
		e.uldOrder[i] = u.ID
	}
	for _, p := range packages {
		e.packsByID[p.ID] = p
	}
	return e
}

// Reset clears every ULD's packing state, leaving the Engine as if
// freshly constructed.
func (e *Engine) Reset() {
	for _, s := range e.states {
		s.reset()
	}
}

// TryPlaceInULD implements the public contract of spec.md §4.2:
// try_place(pack, uld) -> Option<Placement>. On success the ULD state
// is updated atomically (extreme points, weight, volume, id set).
func (e *Engine) TryPlaceInULD(pk model.Package, uldID string) (model.Placement, bool) {
	state, ok := e.states[uldID]
	if !ok {
		return model.Placement{}, false
	}
	if e.cfg.Forbidden(pk.ID, uldID) {
		return model.Placement{}, false
	}
	if state.packedWeight+pk.Weight > state.uld.Capacity {
		return model.Placement{}, false
	}
	for _, opl := range state.placements {
		if e.cfg.Conflicts(pk.ID, opl.PackID) {
			return model.Placement{}, false
		}
	}

	var best *model.Placement
	var bestKey [3]int
	haveBest := false

	for _, orient := range pk.Orientations() {
		for _, anchor := range state.extremePoints {
			if pk.Heavy && anchor.Z != 0 {
				continue // I7: heavy packages are floor-only
			}
			p2 := model.Point{
				X: anchor.X + orient.DX,
				Y: anchor.Y + orient.DY,
				Z: anchor.Z + orient.DZ,
			}
			if p2.X > state.uld.Lx || p2.Y > state.uld.Ly || p2.Z > state.uld.Lz {
				continue // I2
			}
			cand := model.Cuboid{P1: anchor, P2: p2}
			if !e.fits(cand, pk, state) {
				continue
			}

			key := tieBreakKey(e.cfg.Heuristic, anchor)
			if !haveBest || less(key, bestKey) {
				haveBest = true
				bestKey = key
				placement := model.Placement{ULDID: uldID, PackID: pk.ID, P1: anchor, P2: p2}
				best = &placement
			}
		}
	}

	if best == nil {
		return model.Placement{}, false
	}
	state.commit(*best, pk)
	return *best, true
}

// fits checks I3 (no overlap with existing placements in this ULD) and
// I8 (nothing may be candidate-placed on top of an existing fragile
// package's footprint).
func (e *Engine) fits(cand model.Cuboid, pk model.Package, state *uldState) bool {
	for _, opl := range state.placements {
		oc := opl.Cuboid()
		if geom.Intersects(cand, oc) {
			return false
		}
		if other, ok := e.packsByID[opl.PackID]; ok && other.Fragile && geom.OnTopOf(cand, oc) {
			return false
		}
	}
	return true
}

// tieBreakKey computes the lexicographic key an anchor is compared by,
// per the heuristic's tie-break rule:
//
//	wall   -> (z, y, x)
//	layer  -> (y, z, x)
//	column -> (x, y, z)
func tieBreakKey(h model.Heuristic, p model.Point) [3]int {
	switch h {
	case model.Layer:
		return [3]int{p.Y, p.Z, p.X}
	case model.Column:
		return [3]int{p.X, p.Y, p.Z}
	default: // model.Wall
		return [3]int{p.Z, p.Y, p.X}
	}
}

func less(a, b [3]int) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// PlaceOrdered places packages, in the given order, by attempting each
// package against each ULD (in ULD order) until one accepts it. This is
// the per-ULD loop driving both the direct constructive Place() call
// and the genetic search's per-generation decode step.
func (e *Engine) PlaceOrdered(order []model.Package) model.Layout {
	var layout model.Layout
	for _, pk := range order {
		placed := false
		for _, uldID := range e.uldOrder {
			if pl, ok := e.TryPlaceInULD(pk, uldID); ok {
				layout.Placements = append(layout.Placements, pl)
				placed = true
				break
			}
		}
		if !placed {
			layout.Unplaced = append(layout.Unplaced, pk.ID)
		}
	}
	return layout
}

// SortPackages applies the top-level sort of spec.md §4.2: priority
// packages first (by the configured FFD key, descending), then
// non-priority packages by cost/volume descending.
func SortPackages(packages []model.Package, cfg model.SolverConfig) []model.Package {
	var priority, rest []model.Package
	var maxVolume, maxWeight int64
	for _, p := range packages {
		if p.Volume() > maxVolume {
			maxVolume = p.Volume()
		}
		if w := int64(p.Weight); w > maxWeight {
			maxWeight = w
		}
		if p.Priority {
			priority = append(priority, p)
		} else {
			rest = append(rest, p)
		}
	}
	maxVolume++
	maxWeight++

	ffdKey := func(p model.Package) float64 {
		switch cfg.FFDKey {
		case model.FFDWeight:
			return p.Weight*float64(maxWeight) + float64(p.Volume())
		case model.FFDMaxDim:
			return float64(p.MaxDim())*float64(maxVolume) + float64(p.Volume())
		default: // model.FFDVolume
			return float64(p.Volume())*float64(maxVolume) + p.Weight
		}
	}
	sort.SliceStable(priority, func(i, j int) bool {
		return ffdKey(priority[i]) > ffdKey(priority[j])
	})
	sort.SliceStable(rest, func(i, j int) bool {
		return costDensity(rest[i]) > costDensity(rest[j])
	})

	out := make([]model.Package, 0, len(packages))
	out = append(out, priority...)
	out = append(out, rest...)
	return out
}

func costDensity(p model.Package) float64 {
	v := p.Volume()
	if v == 0 {
		return 0
	}
	return p.Cost / float64(v)
}

// Place runs the constructive-only placer: sort, then a single
// per-ULD placement pass. This is the "fast"/"mock" path used when the
// genetic search is skipped entirely.
func Place(packages []model.Package, ulds []model.ULD, cfg model.SolverConfig) model.Layout {
	order := SortPackages(packages, cfg)
	engine := NewEngine(ulds, packages, cfg)
	return engine.PlaceOrdered(order)
}
