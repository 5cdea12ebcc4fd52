// Package model defines the flat, immutable-by-convention data types
// shared by every stage of the solver: packages, ULDs, cuboids and
// placement records. Package and ULD compose a Cuboid; neither
// inherits from it.
package model

import "github.com/google/uuid"

// Point is an integer 3D coordinate, in the ULD's local axes.
type Point struct {
	X, Y, Z int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
}

// Cuboid is an axis-aligned box given by its min and max corners.
// P1 always holds the coordinate-wise minimum corner, P2 the maximum.
type Cuboid struct {
	P1, P2 Point
}

// Dims returns the (dx, dy, dz) extents of the cuboid.
func (c Cuboid) Dims() (dx, dy, dz int) {
	return c.P2.X - c.P1.X, c.P2.Y - c.P1.Y, c.P2.Z - c.P1.Z
}

// Volume returns the cuboid's volume.
func (c Cuboid) Volume() int64 {
	dx, dy, dz := c.Dims()
	return int64(dx) * int64(dy) * int64(dz)
}

// Surface is a bitset over the three possible resting faces a package
// may be placed on. At least one bit must be set on a valid Package.
type Surface int

const (
	// SurfaceYZ allows the package's original Lx dimension to become
	// vertical, resting on its Ly*Lz face.
	SurfaceYZ Surface = 1 << iota
	// SurfaceXZ allows the package's original Ly dimension to become
	// vertical, resting on its Lx*Lz face.
	SurfaceXZ
	// SurfaceXY allows the package's original Lz dimension to become
	// vertical, resting on its Lx*Ly face. This is the "natural"
	// resting face for most cargo.
	SurfaceXY

	// SurfaceAll permits any of the three resting faces, i.e. all six
	// axis permutations are candidate orientations.
	SurfaceAll = SurfaceYZ | SurfaceXZ | SurfaceXY
)

// Orientation is one of the (at most six) axis permutations a package
// may be placed in: the oriented extents along the ULD's x, y, z axes.
type Orientation struct {
	DX, DY, DZ int
}

// Volume returns the oriented cuboid's volume (identical to the
// package's volume; kept for symmetry with Cuboid.Volume).
func (o Orientation) Volume() int64 {
	return int64(o.DX) * int64(o.DY) * int64(o.DZ)
}

// BaseArea returns the footprint area (dx*dy) of the orientation.
func (o Orientation) BaseArea() int64 {
	return int64(o.DX) * int64(o.DY)
}

// Package is a package's immutable identity and geometry; state about
// where (if anywhere) it was placed lives in Placement records, not here.
type Package struct {
	ID       string
	Lx, Ly, Lz int
	Weight   float64
	Cost     float64
	Priority bool

	Fragile     bool
	Heavy       bool
	PlaceableOn Surface
}

// NewPackage builds a Package with a generated ID, mirroring the
// teacher's NewPart/NewStockSheet constructors.
func NewPackage(lx, ly, lz int, weight, cost float64, priority bool) Package {
	return Package{
		ID:          uuid.New().String()[:8],
		Lx:          lx,
		Ly:          ly,
		Lz:          lz,
		Weight:      weight,
		Cost:        cost,
		Priority:    priority,
		PlaceableOn: SurfaceAll,
	}
}

// Volume returns the package's intrinsic volume (orientation-independent).
func (p Package) Volume() int64 {
	return int64(p.Lx) * int64(p.Ly) * int64(p.Lz)
}

// MaxDim returns the largest of the three original dimensions.
func (p Package) MaxDim() int {
	m := p.Lx
	if p.Ly > m {
		m = p.Ly
	}
	if p.Lz > m {
		m = p.Lz
	}
	return m
}

// Validate checks the invariants a Package must satisfy on input:
// positive dimensions, fragile xor heavy is fine but fragile AND heavy
// is rejected, and placeable_on must be non-empty.
func (p Package) Validate() error {
	if p.ID == "" {
		return NewError(KindInvalidInput, "package id is empty")
	}
	if p.Lx <= 0 || p.Ly <= 0 || p.Lz <= 0 {
		return NewError(KindInvalidInput, "package "+p.ID+" has a non-positive dimension")
	}
	if p.Weight < 0 || p.Cost < 0 {
		return NewError(KindInvalidInput, "package "+p.ID+" has a negative weight or cost")
	}
	if p.Fragile && p.Heavy {
		return NewError(KindInvalidInput, "package "+p.ID+" is both fragile and heavy")
	}
	if p.PlaceableOn == 0 {
		return NewError(KindInvalidInput, "package "+p.ID+" has an empty placeable_on set")
	}
	return nil
}

// Orientations returns the package's allowed axis permutations, sorted
// by descending base area (dx*dy) so large footprints are tried first.
// Restricted to the resting faces named by PlaceableOn: exactly two of
// the six permutations correspond to each allowed face.
func (p Package) Orientations() []Orientation {
	type axisPerm struct {
		face     Surface
		vertical int // 0=Lx, 1=Ly, 2=Lz is the dimension that becomes DZ
	}
	candidates := []axisPerm{
		{SurfaceXY, 2}, // Lz vertical -> resting face uses Lx,Ly -> "xy"
		{SurfaceXZ, 1}, // Ly vertical -> resting face uses Lx,Lz -> "xz"
		{SurfaceYZ, 0}, // Lx vertical -> resting face uses Ly,Lz -> "yz"
	}

	dims := [3]int{p.Lx, p.Ly, p.Lz}
	var out []Orientation
	for _, c := range candidates {
		if p.PlaceableOn&c.face == 0 {
			continue
		}
		var a, b int
		switch c.vertical {
		case 0:
			a, b = 1, 2 // Ly, Lz remain for dx/dy
		case 1:
			a, b = 0, 2 // Lx, Lz remain
		case 2:
			a, b = 0, 1 // Lx, Ly remain
		}
		out = append(out,
			Orientation{DX: dims[a], DY: dims[b], DZ: dims[c.vertical]},
			Orientation{DX: dims[b], DY: dims[a], DZ: dims[c.vertical]},
		)
	}

	// Descending base area, largest footprint first; stable so that
	// among equal-area orientations the generation order above (xy,
	// xz, yz) is preserved deterministically.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].BaseArea() > out[j-1].BaseArea(); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// ULD is a Unit Load Device: a rigid rectangular container with inner
// dimensions and a weight capacity. Mutable packing state (what is
// placed where) is tracked separately by the placement engine so that
// ULD itself stays a plain value outside of a solve.
type ULD struct {
	ID       string
	Lx, Ly, Lz int
	Capacity float64
}

// NewULD builds a ULD with a generated ID.
func NewULD(lx, ly, lz int, capacity float64) ULD {
	return ULD{ID: uuid.New().String()[:8], Lx: lx, Ly: ly, Lz: lz, Capacity: capacity}
}

// Volume returns the ULD's interior volume.
func (u ULD) Volume() int64 {
	return int64(u.Lx) * int64(u.Ly) * int64(u.Lz)
}

// Validate checks the invariants a ULD must satisfy on input.
func (u ULD) Validate() error {
	if u.ID == "" {
		return NewError(KindInvalidInput, "uld id is empty")
	}
	if u.Lx <= 0 || u.Ly <= 0 || u.Lz <= 0 {
		return NewError(KindInvalidInput, "uld "+u.ID+" has a non-positive dimension")
	}
	if u.Capacity < 0 {
		return NewError(KindInvalidInput, "uld "+u.ID+" has a negative capacity")
	}
	return nil
}

// Placement is a single package's location: which ULD, the min corner
// p1, and the max corner p2 = p1 + oriented_dims.
type Placement struct {
	ULDID  string
	PackID string
	P1, P2 Point
}

// Cuboid returns the placement's geometry as a Cuboid.
func (pl Placement) Cuboid() Cuboid {
	return Cuboid{P1: pl.P1, P2: pl.P2}
}

// Orientation recovers the oriented extents this placement used.
func (pl Placement) Orientation() Orientation {
	return Orientation{
		DX: pl.P2.X - pl.P1.X,
		DY: pl.P2.Y - pl.P1.Y,
		DZ: pl.P2.Z - pl.P1.Z,
	}
}
