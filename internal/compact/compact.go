// Package compact implements the four-directional-pass compactor (C):
// after placement, slide every placement toward the container's walls
// along -x, +x, -y, +y in turn, closing gaps the placement order left
// behind without ever creating, destroying, or resizing a placement.
package compact

import (
	"sort"

	"github.com/piwi3910/uldsolve/internal/geom"
	"github.com/piwi3910/uldsolve/internal/model"
)

// direction is one axis and sign to slide along.
type direction struct {
	axis byte // 'x' or 'y'
	sign int  // -1 or +1
}

var passOrder = []direction{
	{'x', -1},
	{'x', +1},
	{'y', -1},
	{'y', +1},
}

// uldDims looks up a ULD by ID.
type uldDims struct {
	lx, ly, lz int
}

// Compact runs the four directional passes over every placement in
// layout, grouped by ULD, and returns the compacted layout. Unplaced
// package IDs pass through unchanged. The result is idempotent: a
// second call on an already-compacted layout returns it unchanged.
// Because +x and +y run after -x and -y, a placement with free space
// around it ends against the +x and +y walls, not the origin.
func Compact(layout model.Layout, ulds []model.ULD) model.Layout {
	dimsByID := make(map[string]uldDims, len(ulds))
	for _, u := range ulds {
		dimsByID[u.ID] = uldDims{lx: u.Lx, ly: u.Ly, lz: u.Lz}
	}

	byULD := make(map[string][]model.Placement)
	var uldOrder []string
	for _, pl := range layout.Placements {
		if _, ok := byULD[pl.ULDID]; !ok {
			uldOrder = append(uldOrder, pl.ULDID)
		}
		byULD[pl.ULDID] = append(byULD[pl.ULDID], pl)
	}

	out := model.Layout{Unplaced: layout.Unplaced}
	for _, uldID := range uldOrder {
		compacted := compactOne(byULD[uldID], dimsByID[uldID])
		out.Placements = append(out.Placements, compacted...)
	}
	return out
}

// compactOne runs the four passes over one ULD's placements.
func compactOne(placements []model.Placement, dims uldDims) []model.Placement {
	work := make([]model.Placement, len(placements))
	copy(work, placements)

	for _, d := range passOrder {
		slidePass(work, dims, d)
	}
	return work
}

// slidePass slides every placement in work, one at a time in an order
// that processes placements nearest the target wall first, as far as
// it will go along d without violating I1-I4 (the overlap and
// containment invariants are the only ones that can be broken by a
// slide; weight and priority counts are untouched by construction).
func slidePass(work []model.Placement, dims uldDims, d direction) {
	order := make([]int, len(work))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return wallDistance(work[order[i]], dims, d) < wallDistance(work[order[j]], dims, d)
	})

	for _, idx := range order {
		slideOne(work, idx, dims, d)
	}
}

// wallDistance returns the placement's distance to the wall it is
// being slid toward, used only to pick a stable processing order
// (closest-to-target first) so later placements slide against
// already-settled neighbors.
func wallDistance(pl model.Placement, dims uldDims, d direction) int {
	switch {
	case d.axis == 'x' && d.sign < 0:
		return pl.P1.X
	case d.axis == 'x' && d.sign > 0:
		return dims.lx - pl.P2.X
	case d.axis == 'y' && d.sign < 0:
		return pl.P1.Y
	default:
		return dims.ly - pl.P2.Y
	}
}

// slideOne moves work[idx] step by step in direction d until the next
// step would either leave the container (I2) or collide with another
// placement already in work (I3), i.e. until it is flush against a
// wall or another package.
func slideOne(work []model.Placement, idx int, dims uldDims, d direction) {
	for {
		next := step(work[idx], d)
		if !withinBounds(next, dims) {
			return
		}
		if collidesWithOthers(work, idx, next) {
			return
		}
		work[idx] = next
	}
}

func step(pl model.Placement, d direction) model.Placement {
	delta := model.Point{}
	switch d.axis {
	case 'x':
		delta.X = d.sign
	case 'y':
		delta.Y = d.sign
	}
	return model.Placement{
		ULDID:  pl.ULDID,
		PackID: pl.PackID,
		P1:     pl.P1.Add(delta),
		P2:     pl.P2.Add(delta),
	}
}

func withinBounds(pl model.Placement, dims uldDims) bool {
	return pl.P1.X >= 0 && pl.P1.Y >= 0 && pl.P1.Z >= 0 &&
		pl.P2.X <= dims.lx && pl.P2.Y <= dims.ly && pl.P2.Z <= dims.lz
}

func collidesWithOthers(work []model.Placement, idx int, cand model.Placement) bool {
	cc := cand.Cuboid()
	for j, other := range work {
		if j == idx {
			continue
		}
		if geom.Intersects(cc, other.Cuboid()) {
			return true
		}
	}
	return false
}
