package validate

import (
	"testing"

	"github.com/piwi3910/uldsolve/internal/model"
)

func TestLayoutValidAccepts(t *testing.T) {
	uld := model.NewULD(10, 10, 10, 100)
	pk := model.NewPackage(10, 10, 10, 50, 100, true)
	layout := model.Layout{Placements: []model.Placement{
		{ULDID: uld.ID, PackID: pk.ID, P1: model.Point{}, P2: model.Point{X: 10, Y: 10, Z: 10}},
	}}

	if err := Layout(layout, []model.ULD{uld}, []model.Package{pk}); err != nil {
		t.Errorf("expected a valid layout to pass, got %v", err)
	}
}

func TestLayoutDetectsOverlap(t *testing.T) {
	uld := model.NewULD(10, 10, 10, 1000)
	a := model.NewPackage(10, 10, 5, 1, 1, false)
	b := model.NewPackage(10, 10, 5, 1, 1, false)
	layout := model.Layout{Placements: []model.Placement{
		{ULDID: uld.ID, PackID: a.ID, P1: model.Point{}, P2: model.Point{X: 10, Y: 10, Z: 5}},
		{ULDID: uld.ID, PackID: b.ID, P1: model.Point{X: 0, Y: 0, Z: 2}, P2: model.Point{X: 10, Y: 10, Z: 7}},
	}}

	err := Layout(layout, []model.ULD{uld}, []model.Package{a, b})
	if err == nil {
		t.Fatal("expected an overlap violation")
	}
}

func TestLayoutDetectsWeightOverage(t *testing.T) {
	uld := model.NewULD(10, 10, 10, 5)
	pk := model.NewPackage(10, 10, 10, 50, 1, false)
	layout := model.Layout{Placements: []model.Placement{
		{ULDID: uld.ID, PackID: pk.ID, P1: model.Point{}, P2: model.Point{X: 10, Y: 10, Z: 10}},
	}}

	if err := Layout(layout, []model.ULD{uld}, []model.Package{pk}); err == nil {
		t.Fatal("expected a weight capacity violation")
	}
}

func TestLayoutAllowsUnplacedPriority(t *testing.T) {
	// An unplaced priority package is the Infeasible outcome reported by
	// the solver, not an invariant violation.
	uld := model.NewULD(10, 10, 10, 100)
	pk := model.NewPackage(10, 10, 10, 50, 100, true)
	layout := model.Layout{Unplaced: []string{pk.ID}}

	if err := Layout(layout, []model.ULD{uld}, []model.Package{pk}); err != nil {
		t.Fatalf("expected no violation for an unplaced priority package, got %v", err)
	}
}

func TestLayoutDetectsFragileStacking(t *testing.T) {
	uld := model.NewULD(10, 10, 10, 1000)
	fragile := model.NewPackage(10, 10, 5, 1, 1, false)
	fragile.Fragile = true
	top := model.NewPackage(10, 10, 5, 1, 1, false)
	layout := model.Layout{Placements: []model.Placement{
		{ULDID: uld.ID, PackID: fragile.ID, P1: model.Point{}, P2: model.Point{X: 10, Y: 10, Z: 5}},
		{ULDID: uld.ID, PackID: top.ID, P1: model.Point{X: 0, Y: 0, Z: 5}, P2: model.Point{X: 10, Y: 10, Z: 10}},
	}}

	if err := Layout(layout, []model.ULD{uld}, []model.Package{fragile, top}); err == nil {
		t.Fatal("expected a fragile-stacking violation")
	}
}

func TestLayoutDetectsHeavyOffFloor(t *testing.T) {
	uld := model.NewULD(10, 10, 10, 1000)
	base := model.NewPackage(10, 10, 5, 1, 1, false)
	heavy := model.NewPackage(10, 10, 5, 1, 1, false)
	heavy.Heavy = true
	layout := model.Layout{Placements: []model.Placement{
		{ULDID: uld.ID, PackID: base.ID, P1: model.Point{}, P2: model.Point{X: 10, Y: 10, Z: 5}},
		{ULDID: uld.ID, PackID: heavy.ID, P1: model.Point{X: 0, Y: 0, Z: 5}, P2: model.Point{X: 10, Y: 10, Z: 10}},
	}}

	if err := Layout(layout, []model.ULD{uld}, []model.Package{base, heavy}); err == nil {
		t.Fatal("expected a heavy-off-floor violation")
	}
}

func TestLayoutDetectsBadOrientation(t *testing.T) {
	uld := model.NewULD(10, 10, 10, 1000)
	pk := model.NewPackage(4, 5, 6, 1, 1, false)
	pk.PlaceableOn = model.SurfaceXY // only the 6-high orientations allowed
	layout := model.Layout{Placements: []model.Placement{
		// dz=5 does not correspond to any of pk's allowed orientations
		{ULDID: uld.ID, PackID: pk.ID, P1: model.Point{}, P2: model.Point{X: 4, Y: 6, Z: 5}},
	}}

	if err := Layout(layout, []model.ULD{uld}, []model.Package{pk}); err == nil {
		t.Fatal("expected an orientation-mismatch violation")
	}
}

func TestTotalsAgree(t *testing.T) {
	uld := model.NewULD(10, 10, 10, 100)
	pk := model.NewPackage(10, 10, 10, 50, 100, true)
	layout := model.Layout{Placements: []model.Placement{
		{ULDID: uld.ID, PackID: pk.ID, P1: model.Point{}, P2: model.Point{X: 10, Y: 10, Z: 10}},
	}}
	packs := map[string]model.Package{pk.ID: pk}
	result := model.Result{
		Layout:            layout,
		NumberPacked:      1,
		NumberPriorityULD: 1,
		TotalCost:         0,
	}

	if err := Totals(result, packs); err != nil {
		t.Errorf("expected totals to agree, got %v", err)
	}

	result.NumberPacked = 2
	if err := Totals(result, packs); err == nil {
		t.Error("expected a totals mismatch to be detected")
	}
}
