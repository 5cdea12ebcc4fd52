package export

import (
	"fmt"
	"path/filepath"

	"github.com/yofu/dxf"

	"github.com/piwi3910/uldsolve/internal/model"
)

// GenerateFloorPlans writes one DXF file per ULD into dir, named
// "<uld-id>.dxf". Each file is a top-down (x, y) floor plan: the ULD
// outline plus one rectangle and a package-ID label per placement.
func GenerateFloorPlans(dir string, layout model.Layout, ulds []model.ULD) error {
	if len(ulds) == 0 {
		return fmt.Errorf("no ulds to draw floor plans for")
	}

	byULD := make(map[string][]model.Placement)
	for _, pl := range layout.Placements {
		byULD[pl.ULDID] = append(byULD[pl.ULDID], pl)
	}

	for _, u := range ulds {
		path := filepath.Join(dir, u.ID+".dxf")
		if err := generateFloorPlan(path, u, byULD[u.ID]); err != nil {
			return fmt.Errorf("generate floor plan for %s: %w", u.ID, err)
		}
	}
	return nil
}

func generateFloorPlan(path string, u model.ULD, placements []model.Placement) error {
	d := dxf.NewDrawing()

	d.Layer("OUTLINE", false)
	drawRect(d, 0, 0, float64(u.Lx), float64(u.Ly))

	d.Layer("PACKAGES", false)
	for _, pl := range placements {
		x1, y1 := float64(pl.P1.X), float64(pl.P1.Y)
		x2, y2 := float64(pl.P2.X), float64(pl.P2.Y)
		drawRect(d, x1, y1, x2, y2)
		d.Text(pl.PackID, x1+1, y1+1, 0, 3)
	}

	return d.SaveAs(path)
}

func drawRect(d *dxf.Drawing, x1, y1, x2, y2 float64) {
	d.Line(x1, y1, 0, x2, y1, 0)
	d.Line(x2, y1, 0, x2, y2, 0)
	d.Line(x2, y2, 0, x1, y2, 0)
	d.Line(x1, y2, 0, x1, y1, 0)
}
