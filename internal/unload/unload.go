// Package unload implements the unload planner (U): given a finished
// layout, determine a package removal order that never asks for a
// package to come out before something resting on it or standing
// between it and the door has been removed first.
//
// The dependency structure is a directed acyclic graph built with
// katalvlaran/lvlath's core.Graph; the graph is used purely as a
// vertex/edge store. Topological ordering is computed with an
// explicit work list processed iteratively (a variant of Kahn's
// algorithm), deliberately not lvlath's recursive depth-first
// topological sort: a removal order is exactly the kind of
// operator-facing output that should never blow a goroutine's stack on
// a large manifest.
package unload

import (
	"sort"

	"github.com/katalvlaran/lvlath/core"

	"github.com/piwi3910/uldsolve/internal/geom"
	"github.com/piwi3910/uldsolve/internal/model"
)

// Plan returns the package IDs in the ULD in a valid unload order:
// first element is the first package to remove. Only packages in
// uldID are considered; other ULDs unload independently.
func Plan(layout model.Layout, uldID string) ([]string, error) {
	var inULD []model.Placement
	for _, pl := range layout.Placements {
		if pl.ULDID == uldID {
			inULD = append(inULD, pl)
		}
	}
	g := buildGraph(inULD)
	return topologicalOrder(g)
}

// buildGraph adds one vertex per placement and a directed edge
// blocker -> blocked for every pair where blocker must be removed
// before blocked.
func buildGraph(placements []model.Placement) *core.Graph {
	g := core.NewGraph(core.WithDirected(true))
	for _, pl := range placements {
		g.AddVertex(&core.Vertex{ID: pl.PackID})
	}
	for i, a := range placements {
		for j, b := range placements {
			if i == j {
				continue
			}
			if blocks(a, b) {
				g.AddEdge(a.PackID, b.PackID, 1)
			}
		}
	}
	return g
}

// blocks reports whether a must be removed before b: either a rests
// directly on top of b, or a sits strictly closer to the door than b
// and shares a (y, z) cross-section with it, so b cannot be pulled
// straight out without first moving a out of the way.
func blocks(a, b model.Placement) bool {
	ac, bc := a.Cuboid(), b.Cuboid()
	if geom.OnTopOf(ac, bc) {
		return true
	}
	return doorwardOverlap(ac, bc)
}

func doorwardOverlap(a, b model.Cuboid) bool {
	if a.P1.X >= b.P1.X {
		return false
	}
	return intervalsOverlap(a.P1.Y, a.P2.Y, b.P1.Y, b.P2.Y) &&
		intervalsOverlap(a.P1.Z, a.P2.Z, b.P1.Z, b.P2.Z)
}

func intervalsOverlap(aLo, aHi, bLo, bHi int) bool {
	return aLo < bHi && bLo < aHi
}

// topologicalOrder computes a deterministic topological order over g
// using an explicit work list instead of recursion: vertices with
// zero remaining in-degree are pushed onto ready, popped in ascending
// ID order for determinism, and their outgoing edges relaxed in place.
func topologicalOrder(g *core.Graph) ([]string, error) {
	vertices := g.Vertices()
	inDegree := make(map[string]int, len(vertices))
	for _, v := range vertices {
		inDegree[v.ID] = 0
	}
	for _, e := range g.Edges() {
		inDegree[e.To]++
	}

	var ready []string
	for id, d := range inDegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(vertices))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var unblocked []string
		for _, nbr := range g.Neighbors(id) {
			inDegree[nbr.ID]--
			if inDegree[nbr.ID] == 0 {
				unblocked = append(unblocked, nbr.ID)
			}
		}
		sort.Strings(unblocked)
		ready = append(ready, unblocked...)
		sort.Strings(ready)
	}

	if len(order) != len(vertices) {
		return nil, model.NewError(model.KindInvariantViolation, "unload blocking graph contains a cycle")
	}
	return order, nil
}
