package genetic

import (
	"testing"

	"github.com/piwi3910/uldsolve/internal/model"
)

func smallConfig() model.SolverConfig {
	cfg := model.DefaultSolverConfig()
	cfg.PopulationSize = 10
	cfg.Generations = 15
	cfg.EliteCount = 2
	cfg.Seed = 7
	return cfg
}

func TestRunPlacesAllWhenRoomExists(t *testing.T) {
	uld := model.NewULD(20, 20, 20, 1000)
	packages := []model.Package{
		model.NewPackage(5, 5, 5, 10, 50, true),
		model.NewPackage(5, 5, 5, 10, 40, true),
		model.NewPackage(5, 5, 5, 10, 30, false),
	}

	layout := Run(packages, []model.ULD{uld}, smallConfig())

	if len(layout.Unplaced) != 0 {
		t.Errorf("expected every package to fit, got %d unplaced", len(layout.Unplaced))
	}
	if len(layout.Placements) != 3 {
		t.Errorf("expected 3 placements, got %d", len(layout.Placements))
	}
}

func TestRunPrefersPlacingPriorityOverNonPriority(t *testing.T) {
	// Only room for one of the two packages; priority must win.
	uld := model.NewULD(5, 5, 5, 1000)
	priority := model.NewPackage(5, 5, 5, 10, 50, true)
	economy := model.NewPackage(5, 5, 5, 10, 1000, false)

	layout := Run([]model.Package{priority, economy}, []model.ULD{uld}, smallConfig())

	if len(layout.Placements) != 1 {
		t.Fatalf("expected exactly one placement, got %d", len(layout.Placements))
	}
	if layout.Placements[0].PackID != priority.ID {
		t.Errorf("expected the priority package to be the one placed, got %s", layout.Placements[0].PackID)
	}
}

func TestRunPenalizesPriorityDispersion(t *testing.T) {
	// Two ULDs, each big enough for both priority packages; the search
	// should prefer consolidating them into a single ULD over spreading
	// them, since PerULDPenalty rewards fewer ULDs touched.
	uldA := model.NewULD(10, 10, 10, 1000)
	uldB := model.NewULD(10, 10, 10, 1000)
	a := model.NewPackage(5, 5, 5, 10, 50, true)
	b := model.NewPackage(5, 5, 5, 10, 50, true)

	cfg := smallConfig()
	layout := Run([]model.Package{a, b}, []model.ULD{uldA, uldB}, cfg)

	if len(layout.Unplaced) != 0 {
		t.Fatalf("expected both priority packages placed, got %d unplaced", len(layout.Unplaced))
	}
	uldsUsed := map[string]bool{}
	for _, pl := range layout.Placements {
		uldsUsed[pl.ULDID] = true
	}
	if len(uldsUsed) != 1 {
		t.Errorf("expected both priority packages consolidated into 1 ULD, used %d", len(uldsUsed))
	}
}

func TestRunEmptyInput(t *testing.T) {
	cfg := smallConfig()

	layout := Run(nil, []model.ULD{model.NewULD(10, 10, 10, 100)}, cfg)
	if len(layout.Placements) != 0 || len(layout.Unplaced) != 0 {
		t.Errorf("expected an empty layout for no packages, got %+v", layout)
	}

	layout = Run([]model.Package{model.NewPackage(1, 1, 1, 1, 1, true)}, nil, cfg)
	if len(layout.Placements) != 0 {
		t.Errorf("expected no placements with no ULDs, got %+v", layout)
	}
}

func TestRunDeterministicForFixedSeed(t *testing.T) {
	uld := model.NewULD(20, 20, 20, 1000)
	packages := []model.Package{
		model.NewPackage(3, 3, 3, 5, 20, true),
		model.NewPackage(4, 4, 4, 5, 15, true),
		model.NewPackage(2, 2, 2, 5, 10, false),
		model.NewPackage(6, 2, 2, 5, 8, false),
	}
	cfg := smallConfig()

	first := Run(packages, []model.ULD{uld}, cfg)
	second := Run(packages, []model.ULD{uld}, cfg)

	if len(first.Placements) != len(second.Placements) {
		t.Fatalf("expected identical placement counts across runs with the same seed, got %d and %d",
			len(first.Placements), len(second.Placements))
	}
	for i := range first.Placements {
		if first.Placements[i] != second.Placements[i] {
			t.Errorf("placement %d differs between runs: %+v vs %+v", i, first.Placements[i], second.Placements[i])
		}
	}
}
