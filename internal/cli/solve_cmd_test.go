package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/uldsolve/internal/model"
)

func TestBuildSolverConfigAppliesFlags(t *testing.T) {
	flags := &solveFlags{
		heuristic:       "layer",
		ffdKey:          "weight",
		seed:            7,
		generations:     10,
		population:      20,
		eliteCount:      2,
		eliteBias:       0.5,
		priorityPenalty: 100,
		perULDPenalty:   50,
	}

	cfg := buildSolverConfig(flags)

	if cfg.Heuristic != model.Layer {
		t.Errorf("expected Layer heuristic, got %v", cfg.Heuristic)
	}
	if cfg.FFDKey != model.FFDWeight {
		t.Errorf("expected FFDWeight key, got %v", cfg.FFDKey)
	}
	if cfg.Seed != 7 || cfg.Generations != 10 || cfg.PopulationSize != 20 {
		t.Errorf("expected ga params to be applied, got %+v", cfg)
	}
	if cfg.PriorityPenalty != 100 || cfg.PerULDPenalty != 50 {
		t.Errorf("expected penalties to be applied, got %+v", cfg)
	}
}

func TestReadPackagesAndULDsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	pkgPath := filepath.Join(dir, "packages.csv")
	pkgCSV := "id,length,width,height,weight,priority,cost\np1,10,10,10,5,Priority,1\n"
	if err := os.WriteFile(pkgPath, []byte(pkgCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	uldPath := filepath.Join(dir, "ulds.csv")
	uldCSV := "id,length,width,height,capacity\nu1,100,100,100,1000\n"
	if err := os.WriteFile(uldPath, []byte(uldCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	packages, err := readPackages(pkgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(packages) != 1 || packages[0].ID != "p1" || !packages[0].Priority {
		t.Errorf("unexpected packages: %+v", packages)
	}

	ulds, err := readULDs(uldPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ulds) != 1 || ulds[0].ID != "u1" {
		t.Errorf("unexpected ulds: %+v", ulds)
	}
}

func TestReadPackagesMissingFile(t *testing.T) {
	_, err := readPackages("/nonexistent/path.csv")
	if err == nil {
		t.Fatal("expected an error for a missing file, got nil")
	}
}

func TestWriteSolutionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solution.csv")

	result := model.Result{
		Layout: model.Layout{
			Placements: []model.Placement{
				{ULDID: "u1", PackID: "p1", P1: model.Point{X: 0, Y: 0, Z: 0}, P2: model.Point{X: 10, Y: 10, Z: 10}},
			},
		},
		NumberPacked: 1,
	}

	if err := writeSolution(path, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty solution file")
	}
}
