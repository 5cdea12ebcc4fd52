package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/uldsolve/internal/model"
	"github.com/piwi3910/uldsolve/internal/solve"
)

func buildTestPlan() (solve.Plan, []model.ULD, map[string]model.Package) {
	uld1 := model.ULD{ID: "AKE1", Lx: 100, Ly: 60, Lz: 60, Capacity: 500}
	uld2 := model.ULD{ID: "AKE2", Lx: 100, Ly: 60, Lz: 60, Capacity: 500}

	pk1 := model.Package{ID: "p1", Lx: 40, Ly: 30, Lz: 20, Weight: 50, Cost: 10, Priority: true, PlaceableOn: model.SurfaceAll}
	pk2 := model.Package{ID: "p2", Lx: 30, Ly: 30, Lz: 20, Weight: 20, Cost: 5, Fragile: true, PlaceableOn: model.SurfaceAll}
	pk3 := model.Package{ID: "p3", Lx: 20, Ly: 20, Lz: 20, Weight: 80, Cost: 3, Heavy: true, PlaceableOn: model.SurfaceAll}
	pk4 := model.Package{ID: "unplaced1", Lx: 90, Ly: 90, Lz: 90, Weight: 10, Cost: 2, PlaceableOn: model.SurfaceAll}

	packsByID := map[string]model.Package{
		pk1.ID: pk1, pk2.ID: pk2, pk3.ID: pk3, pk4.ID: pk4,
	}

	layout := model.Layout{
		Placements: []model.Placement{
			{ULDID: uld1.ID, PackID: pk1.ID, P1: model.Point{X: 0, Y: 0, Z: 0}, P2: model.Point{X: 40, Y: 30, Z: 20}},
			{ULDID: uld1.ID, PackID: pk2.ID, P1: model.Point{X: 40, Y: 0, Z: 0}, P2: model.Point{X: 70, Y: 30, Z: 20}},
			{ULDID: uld2.ID, PackID: pk3.ID, P1: model.Point{X: 0, Y: 0, Z: 0}, P2: model.Point{X: 20, Y: 20, Z: 20}},
		},
		Unplaced: []string{pk4.ID},
	}

	result := model.Result{
		Layout:            layout,
		TotalCost:         pk4.Cost,
		NumberPacked:      3,
		NumberPriorityULD: 1,
	}

	plan := solve.Plan{
		Result: result,
		UnloadOrder: map[string][]string{
			uld1.ID: {pk2.ID, pk1.ID},
			uld2.ID: {pk3.ID},
		},
	}

	return plan, []model.ULD{uld1, uld2}, packsByID
}

func TestGenerateLoadReportCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	plan, ulds, packsByID := buildTestPlan()
	if err := GenerateLoadReport(path, plan, ulds, packsByID); err != nil {
		t.Fatalf("GenerateLoadReport returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestGenerateLoadReportNoULDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	plan, _, packsByID := buildTestPlan()
	err := GenerateLoadReport(path, plan, nil, packsByID)
	if err == nil {
		t.Fatal("expected error when no ulds are given, got nil")
	}
}

func TestGenerateLoadReportEmptyULD(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emptyuld.pdf")

	emptyULD := model.ULD{ID: "empty", Lx: 50, Ly: 50, Lz: 50, Capacity: 100}
	plan := solve.Plan{
		Result:      model.Result{Layout: model.Layout{}},
		UnloadOrder: map[string][]string{},
	}

	if err := GenerateLoadReport(path, plan, []model.ULD{emptyULD}, nil); err != nil {
		t.Fatalf("GenerateLoadReport returned error: %v", err)
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 25, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
