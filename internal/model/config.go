package model

// Heuristic selects the extreme-point tie-break rule used by the
// placement engine (P). The zero value is Wall.
type Heuristic int

const (
	Wall Heuristic = iota
	Layer
	Column
)

func (h Heuristic) String() string {
	switch h {
	case Wall:
		return "wall"
	case Layer:
		return "layer"
	case Column:
		return "column"
	default:
		return "unknown"
	}
}

// ParseHeuristic maps a CLI/CSV string to a Heuristic, defaulting to
// Wall on an unrecognised value.
func ParseHeuristic(s string) Heuristic {
	switch s {
	case "layer":
		return Layer
	case "column":
		return Column
	default:
		return Wall
	}
}

// FFDKey selects the first-fit-decreasing sort key applied to priority
// packages before the per-ULD placement loop.
type FFDKey int

const (
	FFDVolume FFDKey = iota
	FFDWeight
	FFDMaxDim
)

func (k FFDKey) String() string {
	switch k {
	case FFDVolume:
		return "volume"
	case FFDWeight:
		return "weight"
	case FFDMaxDim:
		return "max_dim"
	default:
		return "unknown"
	}
}

// ParseFFDKey maps a CLI/CSV string to an FFDKey, defaulting to Volume.
func ParseFFDKey(s string) FFDKey {
	switch s {
	case "weight":
		return FFDWeight
	case "max_dim":
		return FFDMaxDim
	default:
		return FFDVolume
	}
}

// SolverConfig is the single explicit configuration object threaded
// through S, P and C, replacing the source's module-level mutable
// constants (PENALTY_COST, COST_PER_ULD).
type SolverConfig struct {
	Heuristic Heuristic
	FFDKey    FFDKey

	// PriorityPenalty is the per-unplaced-priority-package fitness
	// penalty (design constant PENALTY in spec.md §4.4).
	PriorityPenalty float64
	// PerULDPenalty is the per-priority-ULD dispersion penalty
	// (design constant PER_ULD in spec.md §4.4).
	PerULDPenalty float64

	// Genetic algorithm parameters.
	PopulationSize int
	Generations    int
	EliteCount     int
	EliteBias      float64 // rho: probability a gene inherits from an elite parent
	Seed           int64

	// PackageConflicts[a][b] true means a and b must not share a ULD.
	PackageConflicts map[string]map[string]bool
	// PackUldForbidden[packID][uldID] true means the package may never
	// go in that specific ULD.
	PackUldForbidden map[string]map[string]bool
}

// DefaultSolverConfig returns sensible defaults, mirroring the
// teacher's DefaultGeneticConfig / DefaultSettings pattern.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Heuristic:       Wall,
		FFDKey:          FFDVolume,
		PriorityPenalty: 1e7,
		PerULDPenalty:   5e3,
		PopulationSize:  40,
		Generations:     80,
		EliteCount:      4,
		EliteBias:       0.8,
		Seed:            42,
	}
}

// Conflicts reports whether packages a and b are mutually exclusive.
func (c SolverConfig) Conflicts(a, b string) bool {
	if c.PackageConflicts == nil {
		return false
	}
	return c.PackageConflicts[a][b]
}

// Forbidden reports whether package pid may never be placed in uld uid.
func (c SolverConfig) Forbidden(pid, uid string) bool {
	if c.PackUldForbidden == nil {
		return false
	}
	return c.PackUldForbidden[pid][uid]
}
