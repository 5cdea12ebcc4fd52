package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/uldsolve/internal/model"
)

func box(x1, y1, z1, x2, y2, z2 int) model.Cuboid {
	return model.Cuboid{P1: model.Point{X: x1, Y: y1, Z: z1}, P2: model.Point{X: x2, Y: y2, Z: z2}}
}

func TestIntersectsTouchingFacesNotIntersection(t *testing.T) {
	a := box(0, 0, 0, 10, 10, 10)
	b := box(10, 0, 0, 20, 10, 10)
	assert.False(t, Intersects(a, b), "touching faces should not count as intersection")
}

func TestIntersectsOverlap(t *testing.T) {
	a := box(0, 0, 0, 10, 10, 10)
	b := box(5, 5, 5, 15, 15, 15)
	assert.True(t, Intersects(a, b), "expected overlap to be detected")
}

func TestIntersectionVolume(t *testing.T) {
	a := box(0, 0, 0, 10, 10, 10)
	b := box(5, 5, 5, 15, 15, 15)
	require.EqualValues(t, 125, IntersectionVolume(a, b))

	c := box(10, 0, 0, 20, 10, 10)
	assert.EqualValues(t, 0, IntersectionVolume(a, c), "touching cuboids should have 0 intersection volume")
}

func TestContains(t *testing.T) {
	outer := box(0, 0, 0, 100, 100, 100)
	inner := box(10, 10, 10, 20, 20, 20)
	assert.True(t, Contains(outer, inner), "expected inner to be contained")

	outside := box(90, 90, 90, 110, 110, 110)
	assert.False(t, Contains(outer, outside), "expected partially-outside cuboid to not be contained")
}

func TestOnTopOf(t *testing.T) {
	bottom := box(0, 0, 0, 10, 10, 5)
	top := box(2, 2, 5, 8, 8, 10)
	assert.True(t, OnTopOf(top, bottom), "expected top to rest on bottom")

	offset := box(20, 20, 5, 30, 30, 10)
	assert.False(t, OnTopOf(offset, bottom), "expected no overlap in (x,y) footprint to mean not on top")
}
