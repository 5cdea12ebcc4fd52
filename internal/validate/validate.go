// Package validate implements the validator (V): the final,
// independent re-check of a solved layout against every placement
// invariant. It is the only component in the solver allowed to raise
// an InvariantViolation error — every other component either refuses
// to produce a placement that would violate one, or reports a package
// unplaced instead.
package validate

import (
	"fmt"
	"sort"

	"github.com/piwi3910/uldsolve/internal/geom"
	"github.com/piwi3910/uldsolve/internal/model"
)

// Layout re-checks every invariant I1-I8 a placement must satisfy,
// plus that each placement's oriented extents actually correspond to
// one of the package's allowed orientations, and that priority/
// non-priority cardinality rules hold across the whole layout.
//
// Returns nil if the layout is valid, or the first InvariantViolation
// found (checks run in a fixed order, not necessarily spec numeric
// order, so as to fail fast on the cheapest checks first).
func Layout(layout model.Layout, ulds []model.ULD, packages []model.Package) error {
	uldsByID := make(map[string]model.ULD, len(ulds))
	for _, u := range ulds {
		uldsByID[u.ID] = u
	}
	packsByID := make(map[string]model.Package, len(packages))
	for _, p := range packages {
		packsByID[p.ID] = p
	}

	if err := checkCorners(layout); err != nil {
		return err
	}
	if err := checkKnownReferences(layout, uldsByID, packsByID); err != nil {
		return err
	}
	if err := checkContainment(layout, uldsByID); err != nil {
		return err
	}
	if err := checkOrientationMatch(layout, packsByID); err != nil {
		return err
	}
	if err := checkNoOverlap(layout); err != nil {
		return err
	}
	if err := checkWeightCapacity(layout, uldsByID, packsByID); err != nil {
		return err
	}
	if err := checkPlacementCardinality(layout, packsByID); err != nil {
		return err
	}
	if err := checkHeavyFloorOnly(layout, packsByID); err != nil {
		return err
	}
	if err := checkFragileNoStacking(layout, packsByID); err != nil {
		return err
	}
	return nil
}

func violation(format string, args ...any) error {
	return model.NewError(model.KindInvariantViolation, fmt.Sprintf(format, args...))
}

// checkCorners is I1: every placement's min corner must be
// coordinate-wise less than its max corner.
func checkCorners(layout model.Layout) error {
	for _, pl := range layout.Placements {
		if pl.P1.X >= pl.P2.X || pl.P1.Y >= pl.P2.Y || pl.P1.Z >= pl.P2.Z {
			return violation("placement %s has a degenerate or inverted corner pair %+v-%+v", pl.PackID, pl.P1, pl.P2)
		}
	}
	return nil
}

func checkKnownReferences(layout model.Layout, ulds map[string]model.ULD, packs map[string]model.Package) error {
	for _, pl := range layout.Placements {
		if _, ok := ulds[pl.ULDID]; !ok {
			return violation("placement references unknown uld %s", pl.ULDID)
		}
		if _, ok := packs[pl.PackID]; !ok {
			return violation("placement references unknown package %s", pl.PackID)
		}
	}
	return nil
}

// checkContainment is I2: every placement must lie entirely within its
// ULD's interior.
func checkContainment(layout model.Layout, ulds map[string]model.ULD) error {
	for _, pl := range layout.Placements {
		u := ulds[pl.ULDID]
		uldBox := model.Cuboid{P1: model.Point{}, P2: model.Point{X: u.Lx, Y: u.Ly, Z: u.Lz}}
		if !geom.Contains(uldBox, pl.Cuboid()) {
			return violation("placement %s extends outside uld %s", pl.PackID, pl.ULDID)
		}
	}
	return nil
}

// checkOrientationMatch confirms each placement's oriented extents are
// exactly one of the package's declared allowed orientations, i.e. no
// placement silently rotated a package into a face its placeable_on
// set forbids.
func checkOrientationMatch(layout model.Layout, packs map[string]model.Package) error {
	for _, pl := range layout.Placements {
		pk, ok := packs[pl.PackID]
		if !ok {
			continue
		}
		used := pl.Orientation()
		matched := false
		for _, o := range pk.Orientations() {
			if o == used {
				matched = true
				break
			}
		}
		if !matched {
			return violation("placement %s uses orientation %+v not allowed by package placeable_on", pl.PackID, used)
		}
	}
	return nil
}

// checkNoOverlap is I3: no two placements within the same ULD may
// intersect.
func checkNoOverlap(layout model.Layout) error {
	byULD := make(map[string][]model.Placement)
	for _, pl := range layout.Placements {
		byULD[pl.ULDID] = append(byULD[pl.ULDID], pl)
	}
	for uldID, placements := range byULD {
		for i := 0; i < len(placements); i++ {
			for j := i + 1; j < len(placements); j++ {
				if geom.Intersects(placements[i].Cuboid(), placements[j].Cuboid()) {
					return violation("placements %s and %s overlap in uld %s", placements[i].PackID, placements[j].PackID, uldID)
				}
			}
		}
	}
	return nil
}

// checkWeightCapacity is I4: the summed weight of packages in a ULD
// must not exceed its capacity.
func checkWeightCapacity(layout model.Layout, ulds map[string]model.ULD, packs map[string]model.Package) error {
	weightByULD := make(map[string]float64)
	for _, pl := range layout.Placements {
		weightByULD[pl.ULDID] += packs[pl.PackID].Weight
	}
	for uldID, weight := range weightByULD {
		if weight > ulds[uldID].Capacity {
			return violation("uld %s is over its weight capacity: %.2f > %.2f", uldID, weight, ulds[uldID].Capacity)
		}
	}
	return nil
}

// checkPlacementCardinality is I5 and I6: every package may be placed
// at most once, and no package may appear in both the placements list
// and the unplaced list. A priority package placed zero times is not
// flagged here - that is the legitimate Infeasible outcome the solver
// reports via model.InfeasibleError, not an invariant violation.
func checkPlacementCardinality(layout model.Layout, packs map[string]model.Package) error {
	count := make(map[string]int)
	for _, pl := range layout.Placements {
		count[pl.PackID]++
	}
	unplacedSet := make(map[string]bool, len(layout.Unplaced))
	for _, id := range layout.Unplaced {
		unplacedSet[id] = true
		if count[id] > 0 {
			return violation("package %s is both placed and reported unplaced", id)
		}
	}

	ids := make([]string, 0, len(packs))
	for id := range packs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n := count[id]
		switch {
		case n > 1:
			return violation("package %s placed %d times, want at most 1", id, n)
		case n == 0 && !unplacedSet[id]:
			return violation("package %s is neither placed nor reported unplaced", id)
		}
	}
	return nil
}

// checkHeavyFloorOnly is I7: a heavy package's placement must rest
// directly on the ULD floor.
func checkHeavyFloorOnly(layout model.Layout, packs map[string]model.Package) error {
	for _, pl := range layout.Placements {
		if packs[pl.PackID].Heavy && pl.P1.Z != 0 {
			return violation("heavy package %s is not on the floor: z=%d", pl.PackID, pl.P1.Z)
		}
	}
	return nil
}

// checkFragileNoStacking is I8: nothing may rest on top of a fragile
// package's footprint.
func checkFragileNoStacking(layout model.Layout, packs map[string]model.Package) error {
	for _, fragile := range layout.Placements {
		if !packs[fragile.PackID].Fragile {
			continue
		}
		for _, other := range layout.Placements {
			if other.PackID == fragile.PackID {
				continue
			}
			if other.ULDID != fragile.ULDID {
				continue
			}
			if geom.OnTopOf(other.Cuboid(), fragile.Cuboid()) {
				return violation("package %s is stacked on top of fragile package %s", other.PackID, fragile.PackID)
			}
		}
	}
	return nil
}

// Totals re-checks a Result's summary header against its own layout:
// NumberPacked must equal the placement count, NumberPriorityULD must
// equal the number of distinct ULDs holding a priority package, and
// TotalCost must equal the summed cost of every unplaced package.
func Totals(result model.Result, packs map[string]model.Package) error {
	if result.NumberPacked != len(result.Layout.Placements) {
		return violation("result NumberPacked=%d disagrees with %d placements", result.NumberPacked, len(result.Layout.Placements))
	}
	if want := result.Layout.PriorityULDCount(packs); result.NumberPriorityULD != want {
		return violation("result NumberPriorityULD=%d disagrees with computed %d", result.NumberPriorityULD, want)
	}
	if want := result.Layout.UnplacedCost(packs); result.TotalCost != want {
		return violation("result TotalCost=%.2f disagrees with computed %.2f", result.TotalCost, want)
	}
	return nil
}
