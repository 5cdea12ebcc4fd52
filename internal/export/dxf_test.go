package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/uldsolve/internal/model"
)

func TestGenerateFloorPlansCreatesOneFilePerULD(t *testing.T) {
	dir := t.TempDir()

	layout, _ := buildLabelsTestLayout()
	ulds := []model.ULD{
		{ID: "AKE1", Lx: 100, Ly: 60, Lz: 60, Capacity: 500},
		{ID: "AKE2", Lx: 100, Ly: 60, Lz: 60, Capacity: 500},
	}

	if err := GenerateFloorPlans(dir, layout, ulds); err != nil {
		t.Fatalf("GenerateFloorPlans returned error: %v", err)
	}

	for _, u := range ulds {
		path := filepath.Join(dir, u.ID+".dxf")
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected %s to be created: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func TestGenerateFloorPlansNoULDs(t *testing.T) {
	dir := t.TempDir()
	err := GenerateFloorPlans(dir, model.Layout{}, nil)
	if err == nil {
		t.Fatal("expected error when no ulds are given, got nil")
	}
}
