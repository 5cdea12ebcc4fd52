// Package pack implements the extreme-point placement engine (P):
// given an ordered list of packages, place them one by one into ULDs
// using a per-ULD extreme-point set and a selectable tie-break rule.
package pack

import "github.com/piwi3910/uldsolve/internal/model"

// uldState is the mutable packing state for one ULD during a solve:
// what has been placed, the running volume/weight totals, and the
// current extreme-point set new packages may anchor to.
type uldState struct {
	uld model.ULD

	placements   []model.Placement
	packedVolume int64
	packedWeight float64
	hasPriority  bool

	// extremePoints holds the current candidate anchor corners. Order
	// is insertion order; membership is deduplicated on insert.
	extremePoints []model.Point
}

func newULDState(u model.ULD) *uldState {
	return &uldState{
		uld:           u,
		extremePoints: []model.Point{{X: 0, Y: 0, Z: 0}},
	}
}

// reset clears all packing state, leaving the ULD empty again.
func (s *uldState) reset() {
	s.placements = nil
	s.packedVolume = 0
	s.packedWeight = 0
	s.hasPriority = false
	s.extremePoints = []model.Point{{X: 0, Y: 0, Z: 0}}
}

func (s *uldState) hasExtremePoint(p model.Point) bool {
	for _, e := range s.extremePoints {
		if e == p {
			return true
		}
	}
	return false
}

// removeExtremePoint removes the first occurrence of p.
func (s *uldState) removeExtremePoint(p model.Point) {
	for i, e := range s.extremePoints {
		if e == p {
			s.extremePoints = append(s.extremePoints[:i], s.extremePoints[i+1:]...)
			return
		}
	}
}

func (s *uldState) addExtremePoint(p model.Point) {
	if p.X > s.uld.Lx || p.Y > s.uld.Ly || p.Z > s.uld.Lz {
		return
	}
	if s.hasExtremePoint(p) {
		return
	}
	s.extremePoints = append(s.extremePoints, p)
}

// commit records a successful placement, removing the anchor extreme
// point and inserting the up-to-three successor points, per spec.md
// §4.2: fragile packages emit none, so nothing can ever stack on them.
func (s *uldState) commit(pl model.Placement, pk model.Package) {
	s.placements = append(s.placements, pl)
	s.packedVolume += pk.Volume()
	s.packedWeight += pk.Weight
	s.hasPriority = s.hasPriority || pk.Priority

	s.removeExtremePoint(pl.P1)
	if pk.Fragile {
		return
	}
	dx, dy, dz := pl.Cuboid().Dims()
	s.addExtremePoint(model.Point{X: pl.P1.X + dx, Y: pl.P1.Y, Z: pl.P1.Z})
	s.addExtremePoint(model.Point{X: pl.P1.X, Y: pl.P1.Y + dy, Z: pl.P1.Z})
	s.addExtremePoint(model.Point{X: pl.P1.X, Y: pl.P1.Y, Z: pl.P1.Z + dz})
}
