package metrics

import (
	"testing"

	"github.com/piwi3910/uldsolve/internal/model"
)

func TestComputeEmptyPlacements(t *testing.T) {
	u := model.ULD{ID: "u1", Lx: 100, Ly: 100, Lz: 100, Capacity: 1000}
	report := Compute(u, nil, nil)
	if report.Count != 0 || report.Utilization != 0 || report.MOI != 0 {
		t.Errorf("expected a zero report for no placements, got %+v", report)
	}
}

func TestComputeSingleCenteredPackageUtilization(t *testing.T) {
	u := model.ULD{ID: "u1", Lx: 100, Ly: 100, Lz: 100, Capacity: 1000}
	pk := model.Package{ID: "p1", Lx: 20, Ly: 20, Lz: 20, Weight: 10}
	placements := []model.Placement{
		{ULDID: u.ID, PackID: pk.ID, P1: model.Point{X: 40, Y: 40, Z: 0}, P2: model.Point{X: 60, Y: 60, Z: 20}},
	}
	packsByID := map[string]model.Package{pk.ID: pk}

	report := Compute(u, placements, packsByID)
	if report.Count != 1 {
		t.Errorf("expected count 1, got %d", report.Count)
	}
	if report.Utilization <= 0 || report.Utilization > 1 {
		t.Errorf("expected utilization in (0,1], got %v", report.Utilization)
	}
	if report.WeightUtilization != 0.01 {
		t.Errorf("expected weight utilization 0.01, got %v", report.WeightUtilization)
	}
}

func TestComputeStackedPackagesAreStable(t *testing.T) {
	u := model.ULD{ID: "u1", Lx: 40, Ly: 40, Lz: 40, Capacity: 1000}
	bottom := model.Package{ID: "bottom", Lx: 20, Ly: 20, Lz: 20, Weight: 50}
	top := model.Package{ID: "top", Lx: 20, Ly: 20, Lz: 20, Weight: 5}
	placements := []model.Placement{
		{ULDID: u.ID, PackID: bottom.ID, P1: model.Point{X: 10, Y: 10, Z: 0}, P2: model.Point{X: 30, Y: 30, Z: 20}},
		{ULDID: u.ID, PackID: top.ID, P1: model.Point{X: 10, Y: 10, Z: 20}, P2: model.Point{X: 30, Y: 30, Z: 40}},
	}
	packsByID := map[string]model.Package{bottom.ID: bottom, top.ID: top}

	report := Compute(u, placements, packsByID)
	if report.Stability <= 0 {
		t.Errorf("expected a positive stability score, got %v", report.Stability)
	}
}

func TestComputeZeroCapacityAvoidsDivideByZero(t *testing.T) {
	u := model.ULD{ID: "u1", Lx: 100, Ly: 100, Lz: 100, Capacity: 0}
	pk := model.Package{ID: "p1", Lx: 20, Ly: 20, Lz: 20, Weight: 10}
	placements := []model.Placement{
		{ULDID: u.ID, PackID: pk.ID, P1: model.Point{X: 0, Y: 0, Z: 0}, P2: model.Point{X: 20, Y: 20, Z: 20}},
	}
	packsByID := map[string]model.Package{pk.ID: pk}

	report := Compute(u, placements, packsByID)
	if report.WeightUtilization != 0 {
		t.Errorf("expected weight utilization 0 for zero capacity, got %v", report.WeightUtilization)
	}
}
