// Package export renders a solved load plan to the file formats an
// operator actually hands to a ramp crew: a PDF load report with one
// floor-plan page per ULD, an XLSX summary workbook, per-ULD DXF floor
// plans, and a sheet of QR-coded package labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/uldsolve/internal/model"
	"github.com/piwi3910/uldsolve/internal/solve"
)

type packageColor struct{ R, G, B int }

// packageColors is the fill palette for floor-plan rectangles, cycled
// through in placement order on each page.
var packageColors = []packageColor{
	{R: 33, G: 150, B: 243},  // blue
	{R: 76, G: 175, B: 80},   // green
	{R: 255, G: 152, B: 0},   // orange
	{R: 156, G: 39, B: 176},  // purple
	{R: 0, G: 188, B: 212},   // cyan
	{R: 244, G: 67, B: 54},   // red
	{R: 255, G: 235, B: 59},  // yellow
	{R: 121, G: 85, B: 72},   // brown
}

const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// GenerateLoadReport writes a PDF load report: one top-down (x, y)
// floor-plan page per ULD showing every placement's footprint, then a
// final summary page with solve totals and the unload order.
func GenerateLoadReport(path string, plan solve.Plan, ulds []model.ULD, packsByID map[string]model.Package) error {
	if len(ulds) == 0 {
		return fmt.Errorf("no ulds to report on")
	}

	byULD := make(map[string][]model.Placement)
	for _, pl := range plan.Result.Layout.Placements {
		byULD[pl.ULDID] = append(byULD[pl.ULDID], pl)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, u := range ulds {
		pdf.AddPage()
		renderULDPage(pdf, u, byULD[u.ID], packsByID, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan, ulds, packsByID)

	return pdf.OutputFileAndClose(path)
}

// renderULDPage draws one ULD's top-down floor plan: each placement's
// (x, y) footprint as a colored rectangle, colored by its index among
// this ULD's placements, so colors are not tied to a package ID.
func renderULDPage(pdf *fpdf.Fpdf, u model.ULD, placements []model.Placement, packsByID map[string]model.Package, pageNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("ULD %d: %s (%d x %d x %d, cap %.0f)", pageNum, u.ID, u.Lx, u.Ly, u.Lz, u.Capacity)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	var weight float64
	for _, pl := range placements {
		weight += packsByID[pl.PackID].Weight
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Packages: %d | Weight: %.1f / %.1f", len(placements), weight, u.Capacity)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/float64(u.Lx), drawHeight/float64(u.Ly))

	canvasW := float64(u.Lx) * scale
	canvasH := float64(u.Ly) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, pl := range placements {
		pk := packsByID[pl.PackID]
		col := packageColors[i%len(packageColors)]

		px := offsetX + float64(pl.P1.X)*scale
		py := offsetY + float64(pl.P1.Y)*scale
		pw := float64(pl.P2.X-pl.P1.X) * scale
		ph := float64(pl.P2.Y-pl.P1.Y) * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			label := pk.ID
			zLabel := fmt.Sprintf("z=%d", pl.P1.Z)
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			zW := pdf.GetStringWidth(zLabel)
			if ph > 14 && zW < pw-2 {
				pdf.SetXY(px+(pw-zW)/2, py+ph/2)
				pdf.CellFormat(zW, 4, zLabel, "", 0, "C", false, 0, "")
			}
		}
		if pk.Fragile {
			markCorner(pdf, px, py, "F")
		}
		if pk.Heavy {
			markCorner(pdf, px+pw-4, py, "H")
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

func markCorner(pdf *fpdf.Fpdf, x, y float64, letter string) {
	pdf.SetFont("Helvetica", "B", 6)
	pdf.SetTextColor(200, 0, 0)
	pdf.SetXY(x, y)
	pdf.CellFormat(4, 3, letter, "", 0, "L", false, 0, "")
}

func renderSummaryPage(pdf *fpdf.Fpdf, plan solve.Plan, ulds []model.ULD, packsByID map[string]model.Package) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		fmt.Sprintf("Packages placed: %d", plan.Result.NumberPacked),
		fmt.Sprintf("ULDs carrying priority cargo: %d", plan.Result.NumberPriorityULD),
		fmt.Sprintf("Unplaced cost: %.2f", plan.Result.TotalCost),
		fmt.Sprintf("Unplaced packages: %d", len(plan.Result.Layout.Unplaced)),
	}
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 6, line, "", 0, "L", false, 0, "")
		y += 7
	}

	y += 6
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Unload Order", "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 9)
	for _, u := range ulds {
		order := plan.UnloadOrder[u.ID]
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 5, fmt.Sprintf("%s: %v", u.ID, order), "", 0, "L", false, 0, "")
		y += 5
	}

	if len(plan.Result.Layout.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Packages", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, id := range plan.Result.Layout.Unplaced {
			pk := packsByID[id]
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %dx%dx%d (priority=%v, cost=%.2f)", id, pk.Lx, pk.Ly, pk.Lz, pk.Priority, pk.Cost)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by uldsolve", "", 0, "C", false, 0, "")
}

func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
