package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/uldsolve/internal/model"
)

// LabelInfo is the data encoded into each package's tracking-label QR
// code: enough for a handheld scanner to confirm a package's intended
// ULD and position without a network round trip.
type LabelInfo struct {
	PackageID string  `json:"package_id"`
	ULDID     string  `json:"uld_id"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Z         int     `json:"z"`
	Priority  bool    `json:"priority"`
	Fragile   bool    `json:"fragile"`
	Heavy     bool    `json:"heavy"`
	Weight    float64 `json:"weight"`
}

// Avery 5160-compatible label grid: 3 columns, 10 rows on US Letter.
const (
	labelPageWidth  = 215.9
	labelPageHeight = 279.4
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// GenerateLabels writes a sheet of QR-coded package labels for every
// placement in layout.
func GenerateLabels(path string, layout model.Layout, packsByID map[string]model.Package) error {
	labels := CollectLabelInfos(layout, packsByID)
	if len(labels) == 0 {
		return fmt.Errorf("no packages placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("render label for %s: %w", label.PackageID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate qr code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%s", info.PackageID, info.ULDID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	id := info.PackageID
	if pdf.GetStringWidth(id) > textW {
		for len(id) > 0 && pdf.GetStringWidth(id+"...") > textW {
			id = id[:len(id)-1]
		}
		id += "..."
	}
	pdf.CellFormat(textW, 4.5, id, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("ULD %s @ (%d,%d,%d)", info.ULDID, info.X, info.Y, info.Z), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("weight %.1f", info.Weight), "", 1, "L", false, 0, "")

	if info.Priority {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(180, 0, 0)
		pdf.CellFormat(textW, 3, "PRIORITY", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label data from a layout for testing or
// alternative export formats, in placement order.
func CollectLabelInfos(layout model.Layout, packsByID map[string]model.Package) []LabelInfo {
	var labels []LabelInfo
	for _, pl := range layout.Placements {
		pk := packsByID[pl.PackID]
		labels = append(labels, LabelInfo{
			PackageID: pl.PackID,
			ULDID:     pl.ULDID,
			X:         pl.P1.X,
			Y:         pl.P1.Y,
			Z:         pl.P1.Z,
			Priority:  pk.Priority,
			Fragile:   pk.Fragile,
			Heavy:     pk.Heavy,
			Weight:    pk.Weight,
		})
	}
	return labels
}
