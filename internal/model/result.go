package model

// Layout is the full output of a solve: every placement made, plus the
// packages that were left unplaced.
type Layout struct {
	Placements []Placement
	Unplaced   []string // package IDs not placed anywhere
}

// PriorityULDCount returns the number of distinct ULDs holding at least
// one priority package, using packsByID to look up priority.
func (l Layout) PriorityULDCount(packsByID map[string]Package) int {
	ulds := make(map[string]bool)
	for _, pl := range l.Placements {
		if p, ok := packsByID[pl.PackID]; ok && p.Priority {
			ulds[pl.ULDID] = true
		}
	}
	return len(ulds)
}

// UnplacedCost returns the summed cost of unplaced packages, using
// packsByID to look up cost.
func (l Layout) UnplacedCost(packsByID map[string]Package) float64 {
	var total float64
	for _, id := range l.Unplaced {
		total += packsByID[id].Cost
	}
	return total
}

// Result is the outcome of a full solve: the best layout found, plus
// summary totals matching the solution file header triple.
type Result struct {
	Layout            Layout
	TotalCost         float64 // summed cost of every unplaced package
	NumberPacked      int
	NumberPriorityULD int
}
