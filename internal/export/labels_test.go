package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/uldsolve/internal/model"
)

func buildLabelsTestLayout() (model.Layout, map[string]model.Package) {
	pk1 := model.Package{ID: "p1", Lx: 40, Ly: 30, Lz: 20, Weight: 50, Cost: 10, Priority: true}
	pk2 := model.Package{ID: "p2", Lx: 30, Ly: 30, Lz: 20, Weight: 20, Cost: 5, Fragile: true}
	pk3 := model.Package{ID: "p3", Lx: 20, Ly: 20, Lz: 20, Weight: 80, Cost: 3, Heavy: true}

	packsByID := map[string]model.Package{pk1.ID: pk1, pk2.ID: pk2, pk3.ID: pk3}

	layout := model.Layout{
		Placements: []model.Placement{
			{ULDID: "AKE1", PackID: pk1.ID, P1: model.Point{X: 0, Y: 0, Z: 0}, P2: model.Point{X: 40, Y: 30, Z: 20}},
			{ULDID: "AKE1", PackID: pk2.ID, P1: model.Point{X: 40, Y: 0, Z: 0}, P2: model.Point{X: 70, Y: 30, Z: 20}},
			{ULDID: "AKE2", PackID: pk3.ID, P1: model.Point{X: 0, Y: 0, Z: 0}, P2: model.Point{X: 20, Y: 20, Z: 20}},
		},
	}

	return layout, packsByID
}

func TestGenerateLabelsCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	layout, packsByID := buildLabelsTestLayout()
	if err := GenerateLabels(path, layout, packsByID); err != nil {
		t.Fatalf("GenerateLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestGenerateLabelsEmptyLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := GenerateLabels(path, model.Layout{}, nil)
	if err == nil {
		t.Fatal("expected error for a layout with no placements, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	layout, packsByID := buildLabelsTestLayout()
	labels := CollectLabelInfos(layout, packsByID)

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	if labels[0].PackageID != "p1" {
		t.Errorf("expected first label for p1, got %q", labels[0].PackageID)
	}
	if !labels[0].Priority {
		t.Error("expected p1's label to carry the priority flag")
	}
	if !labels[1].Fragile {
		t.Error("expected p2's label to carry the fragile flag")
	}
	if !labels[2].Heavy {
		t.Error("expected p3's label to carry the heavy flag")
	}
	if labels[2].ULDID != "AKE2" {
		t.Errorf("expected third label's uld to be AKE2, got %q", labels[2].ULDID)
	}
}

func TestLabelInfoJSONRoundTrip(t *testing.T) {
	info := LabelInfo{
		PackageID: "p9",
		ULDID:     "AKE3",
		X:         1, Y: 2, Z: 3,
		Priority: true,
		Weight:   42.5,
	}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded LabelInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if decoded != info {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, info)
	}
}

func TestGenerateLabelsManyPackages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_labels.pdf")

	var placements []model.Placement
	packsByID := map[string]model.Package{}
	for i := 0; i < 35; i++ {
		id := "pk" + string(rune('A'+i%26)) + string(rune('0'+i/26))
		pk := model.Package{ID: id, Lx: 10, Ly: 10, Lz: 10, Weight: 5, Cost: 1}
		packsByID[id] = pk
		placements = append(placements, model.Placement{
			ULDID:  "AKE1",
			PackID: id,
			P1:     model.Point{X: i, Y: 0, Z: 0},
			P2:     model.Point{X: i + 10, Y: 10, Z: 10},
		})
	}

	layout := model.Layout{Placements: placements}
	if err := GenerateLabels(path, layout, packsByID); err != nil {
		t.Fatalf("GenerateLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}
