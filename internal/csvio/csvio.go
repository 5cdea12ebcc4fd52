// Package csvio implements the flat-file formats the solver reads and
// writes: package manifests, ULD manifests, optional conflict/
// forbidden-pairing tables, and the solution file. All formats are
// plain comma-separated values with a fixed header row, following the
// teacher's CSV-import conventions (encoding/csv, header detection,
// accumulated per-row error/warning messages instead of failing the
// whole file on the first bad row).
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/uldsolve/internal/model"
)

// ImportResult mirrors the teacher's import shape: best-effort parsing
// that accumulates row-level problems instead of aborting outright.
type ImportResult struct {
	Packages []model.Package
	Errors   []string
	Warnings []string
}

const packageCostInfinite = 1e9

// packageHeader is the fixed column order a package manifest must use.
var packageHeader = []string{"id", "length", "width", "height", "weight", "priority", "cost"}

// ReadPackages parses a package manifest: id,length,width,height,weight,priority,cost.
// priority is the literal string "Priority" or "Economy"; cost of "-"
// is treated as effectively infinite, so the sort and fitness
// functions never prefer dropping it.
func ReadPackages(r io.Reader) ImportResult {
	rows, err := readAll(r)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}
	if len(rows) == 0 {
		return ImportResult{Errors: []string{"package manifest is empty"}}
	}

	result := ImportResult{}
	start := 0
	if isHeaderRow(rows[0], packageHeader) {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1
		if isEmptyRow(row) {
			continue
		}
		pk, err := parsePackageRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", lineNum, err))
			continue
		}
		result.Packages = append(result.Packages, pk)
	}
	return result
}

func parsePackageRow(row []string) (model.Package, error) {
	if len(row) < 7 {
		return model.Package{}, fmt.Errorf("expected 7 columns, got %d", len(row))
	}
	id := strings.TrimSpace(row[0])
	length, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return model.Package{}, fmt.Errorf("invalid length %q", row[1])
	}
	width, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return model.Package{}, fmt.Errorf("invalid width %q", row[2])
	}
	height, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return model.Package{}, fmt.Errorf("invalid height %q", row[3])
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil {
		return model.Package{}, fmt.Errorf("invalid weight %q", row[4])
	}
	priority, err := parsePriority(row[5])
	if err != nil {
		return model.Package{}, err
	}
	cost, err := parseCost(row[6])
	if err != nil {
		return model.Package{}, err
	}

	pk := model.NewPackage(length, width, height, weight, cost, priority)
	pk.ID = id
	return pk, nil
}

func parsePriority(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "Priority":
		return true, nil
	case "Economy":
		return false, nil
	default:
		return false, fmt.Errorf("invalid priority %q, want Priority or Economy", s)
	}
}

func parseCost(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return packageCostInfinite, nil
	}
	cost, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cost %q", s)
	}
	return cost, nil
}

var uldHeader = []string{"id", "length", "width", "height", "capacity"}

// ReadULDs parses a ULD manifest: id,length,width,height,capacity.
func ReadULDs(r io.Reader) ([]model.ULD, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("uld manifest is empty")
	}

	start := 0
	if isHeaderRow(rows[0], uldHeader) {
		start = 1
	}

	var ulds []model.ULD
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("line %d: expected 5 columns, got %d", i+1, len(row))
		}
		length, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid length %q", i+1, row[1])
		}
		width, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid width %q", i+1, row[2])
		}
		height, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid height %q", i+1, row[3])
		}
		capacity, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid capacity %q", i+1, row[4])
		}
		u := model.NewULD(length, width, height, capacity)
		u.ID = strings.TrimSpace(row[0])
		ulds = append(ulds, u)
	}
	return ulds, nil
}

// unplacedULDID is the solution file's sentinel ULD for a package that
// was never placed; its coordinates are all -1.
const unplacedULDID = "NONE"

// WriteSolution writes the solution file: a three-column totals
// header row, then one row per package (placed or not), following the
// original format's "NONE"/-1 sentinel for unplaced packages.
func WriteSolution(w io.Writer, result model.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{
		strconv.FormatFloat(result.TotalCost, 'f', -1, 64),
		strconv.Itoa(result.NumberPacked),
		strconv.Itoa(result.NumberPriorityULD),
	}); err != nil {
		return err
	}

	for _, pl := range result.Layout.Placements {
		if err := cw.Write([]string{
			pl.PackID, pl.ULDID,
			strconv.Itoa(pl.P1.X), strconv.Itoa(pl.P1.Y), strconv.Itoa(pl.P1.Z),
			strconv.Itoa(pl.P2.X), strconv.Itoa(pl.P2.Y), strconv.Itoa(pl.P2.Z),
		}); err != nil {
			return err
		}
	}
	for _, id := range result.Layout.Unplaced {
		if err := cw.Write([]string{id, unplacedULDID, "-1", "-1", "-1", "-1", "-1", "-1"}); err != nil {
			return err
		}
	}
	return cw.Error()
}

// ReadPairs parses a generic two-column (a, b) CSV into a symmetric
// adjacency map, used for both the package-conflict table and the
// package/uld forbidden-pairing table.
func ReadPairs(r io.Reader) (map[string]map[string]bool, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]bool)
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, got %d", i+1, len(row))
		}
		a := strings.TrimSpace(row[0])
		b := strings.TrimSpace(row[1])
		if i == 0 && (strings.EqualFold(a, "a") || strings.EqualFold(a, "id")) {
			continue // header row
		}
		addPair(out, a, b)
		addPair(out, b, a)
	}
	return out, nil
}

func addPair(m map[string]map[string]bool, a, b string) {
	if m[a] == nil {
		m[a] = make(map[string]bool)
	}
	m[a][b] = true
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func isHeaderRow(row, header []string) bool {
	if len(row) != len(header) {
		return false
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(row[i]), h) {
			return false
		}
	}
	return true
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
