package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/uldsolve/internal/model"
	"github.com/piwi3910/uldsolve/internal/solve"
)

const (
	summarySheet    = "Summary"
	placementsSheet = "Placements"
	unplacedSheet   = "Unplaced"
)

// GenerateWorkbook writes an XLSX summary of a solved plan: a Summary
// sheet with totals and unload order, a Placements sheet listing every
// placed package, and an Unplaced sheet for anything left over.
func GenerateWorkbook(path string, plan solve.Plan, ulds []model.ULD, packsByID map[string]model.Package) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	if _, err := f.NewSheet(placementsSheet); err != nil {
		return fmt.Errorf("create placements sheet: %w", err)
	}
	if _, err := f.NewSheet(unplacedSheet); err != nil {
		return fmt.Errorf("create unplaced sheet: %w", err)
	}

	if err := writeSummarySheet(f, plan, ulds); err != nil {
		return err
	}
	if err := writePlacementsSheet(f, plan, packsByID); err != nil {
		return err
	}
	if err := writeUnplacedSheet(f, plan, packsByID); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, plan solve.Plan, ulds []model.ULD) error {
	rows := [][]any{
		{"Packages placed", plan.Result.NumberPacked},
		{"ULDs carrying priority cargo", plan.Result.NumberPriorityULD},
		{"Unplaced cost", plan.Result.TotalCost},
		{"Unplaced packages", len(plan.Result.Layout.Unplaced)},
		{},
		{"ULD", "Unload order (door-first)"},
	}
	for _, u := range ulds {
		order := plan.UnloadOrder[u.ID]
		rows = append(rows, []any{u.ID, joinIDs(order)})
	}

	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("coordinates to cell name: %w", err)
			}
			if err := f.SetCellValue(summarySheet, cell, val); err != nil {
				return fmt.Errorf("set summary cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

func writePlacementsSheet(f *excelize.File, plan solve.Plan, packsByID map[string]model.Package) error {
	header := []string{"Package", "ULD", "X1", "Y1", "Z1", "X2", "Y2", "Z2", "Weight", "Priority", "Fragile", "Heavy"}
	if err := setHeaderRow(f, placementsSheet, header); err != nil {
		return err
	}

	for i, pl := range plan.Result.Layout.Placements {
		pk := packsByID[pl.PackID]
		row := []any{
			pl.PackID, pl.ULDID,
			pl.P1.X, pl.P1.Y, pl.P1.Z,
			pl.P2.X, pl.P2.Y, pl.P2.Z,
			pk.Weight, pk.Priority, pk.Fragile, pk.Heavy,
		}
		if err := setDataRow(f, placementsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeUnplacedSheet(f *excelize.File, plan solve.Plan, packsByID map[string]model.Package) error {
	header := []string{"Package", "Lx", "Ly", "Lz", "Weight", "Cost", "Priority"}
	if err := setHeaderRow(f, unplacedSheet, header); err != nil {
		return err
	}

	for i, id := range plan.Result.Layout.Unplaced {
		pk := packsByID[id]
		row := []any{id, pk.Lx, pk.Ly, pk.Lz, pk.Weight, pk.Cost, pk.Priority}
		if err := setDataRow(f, unplacedSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setHeaderRow(f *excelize.File, sheet string, header []string) error {
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	return setDataRow(f, sheet, 1, row)
}

func setDataRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	for col, val := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("coordinates to cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += " -> "
		}
		out += id
	}
	return out
}
