// Package geom implements the axis-aligned cuboid operations the rest
// of the solver builds on: intersection, containment, and the
// on-top-of relation used by the fragility invariant. No allocation,
// no side effects, safe to call from any hot loop.
package geom

import "github.com/piwi3910/uldsolve/internal/model"

// Intersects reports whether the open intervals of a and b overlap on
// all three axes. Touching faces are not an intersection: this is the
// six-literal axis-separation disjunction spec.md names as canonical
// for the pairwise non-intersection constraint — two cuboids fail to
// intersect iff they are separated along at least one axis.
func Intersects(a, b model.Cuboid) bool {
	if a.P2.X <= b.P1.X || b.P2.X <= a.P1.X {
		return false
	}
	if a.P2.Y <= b.P1.Y || b.P2.Y <= a.P1.Y {
		return false
	}
	if a.P2.Z <= b.P1.Z || b.P2.Z <= a.P1.Z {
		return false
	}
	return true
}

// IntersectionVolume returns the volume of the overlap between a and
// b, or 0 if they don't intersect (including when they merely touch).
func IntersectionVolume(a, b model.Cuboid) int64 {
	dx := min(a.P2.X, b.P2.X) - max(a.P1.X, b.P1.X)
	if dx <= 0 {
		return 0
	}
	dy := min(a.P2.Y, b.P2.Y) - max(a.P1.Y, b.P1.Y)
	if dy <= 0 {
		return 0
	}
	dz := min(a.P2.Z, b.P2.Z) - max(a.P1.Z, b.P1.Z)
	if dz <= 0 {
		return 0
	}
	return int64(dx) * int64(dy) * int64(dz)
}

// Contains reports whether b is fully inside (or on the boundary of) a.
func Contains(a, b model.Cuboid) bool {
	return a.P1.X <= b.P1.X && a.P1.Y <= b.P1.Y && a.P1.Z <= b.P1.Z &&
		b.P2.X <= a.P2.X && b.P2.Y <= a.P2.Y && b.P2.Z <= a.P2.Z
}

// OnTopOf reports whether a rests directly on top of b: a's floor
// meets b's ceiling, and their (x, y) footprints strictly overlap.
func OnTopOf(a, b model.Cuboid) bool {
	if a.P1.Z != b.P2.Z {
		return false
	}
	return a.P1.X < b.P2.X && b.P1.X < a.P2.X &&
		a.P1.Y < b.P2.Y && b.P1.Y < a.P2.Y
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
