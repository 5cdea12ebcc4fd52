package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/uldsolve/internal/csvio"
	"github.com/piwi3910/uldsolve/internal/export"
	"github.com/piwi3910/uldsolve/internal/model"
	"github.com/piwi3910/uldsolve/internal/solve"
)

type solveFlags struct {
	packagesPath string
	uldsPath     string
	conflictsPath string
	forbiddenPath string
	outPath      string
	pdfPath      string
	xlsxPath     string
	dxfDir       string
	labelsPath   string

	fast           bool
	heuristic      string
	ffdKey         string
	seed           int64
	generations    int
	population     int
	eliteCount     int
	eliteBias      float64
	priorityPenalty float64
	perULDPenalty   float64
}

func newSolveCmd() *cobra.Command {
	flags := &solveFlags{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Pack a package and ULD manifest into a load plan",
		Long:  "Read a package manifest and a ULD manifest, search for a near-optimal 3D packing, and write the solution, unload plan, and any requested reports.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.packagesPath, "packages", "", "path to the package manifest CSV (required)")
	f.StringVar(&flags.uldsPath, "ulds", "", "path to the ULD manifest CSV (required)")
	f.StringVar(&flags.conflictsPath, "conflicts", "", "path to a package/package conflict-pair CSV")
	f.StringVar(&flags.forbiddenPath, "forbidden", "", "path to a package/ULD forbidden-pair CSV")
	f.StringVar(&flags.outPath, "out", "solution.csv", "path to write the solution CSV")
	f.StringVar(&flags.pdfPath, "pdf", "", "path to write a PDF load report")
	f.StringVar(&flags.xlsxPath, "xlsx", "", "path to write an XLSX summary workbook")
	f.StringVar(&flags.dxfDir, "dxf-dir", "", "directory to write per-ULD DXF floor plans into")
	f.StringVar(&flags.labelsPath, "labels", "", "path to write a sheet of QR-coded package labels")

	f.BoolVar(&flags.fast, "fast", false, "skip the genetic search and use the constructive placer directly")
	f.StringVar(&flags.heuristic, "heuristic", "wall", "extreme-point heuristic: wall, layer, or column")
	f.StringVar(&flags.ffdKey, "ffd", "volume", "first-fit-decreasing sort key: volume, weight, or max_dim")
	f.Int64Var(&flags.seed, "seed", 42, "random seed for the genetic search")
	f.IntVar(&flags.generations, "generations", 80, "number of genetic algorithm generations")
	f.IntVar(&flags.population, "population", 40, "genetic algorithm population size")
	f.IntVar(&flags.eliteCount, "elite-count", 4, "number of elite chromosomes carried unchanged each generation")
	f.Float64Var(&flags.eliteBias, "elite-bias", 0.8, "probability a crossover gene inherits from an elite parent")
	f.Float64Var(&flags.priorityPenalty, "priority-penalty", 1e7, "fitness penalty per unplaced priority package")
	f.Float64Var(&flags.perULDPenalty, "per-uld-penalty", 5e3, "fitness penalty per ULD carrying priority cargo")

	cmd.MarkFlagRequired("packages")
	cmd.MarkFlagRequired("ulds")

	return cmd
}

func runSolve(cmd *cobra.Command, flags *solveFlags) error {
	logger := loggerFromContext(cmd.Context())

	packages, err := readPackages(flags.packagesPath)
	if err != nil {
		return err
	}
	ulds, err := readULDs(flags.uldsPath)
	if err != nil {
		return err
	}

	cfg := buildSolverConfig(flags)
	if flags.conflictsPath != "" {
		cfg.PackageConflicts, err = readPairs(flags.conflictsPath)
		if err != nil {
			return err
		}
	}
	if flags.forbiddenPath != "" {
		cfg.PackUldForbidden, err = readPairs(flags.forbiddenPath)
		if err != nil {
			return err
		}
	}

	logger.Info("solving", "packages", len(packages), "ulds", len(ulds), "fast", flags.fast)

	var plan solve.Plan
	if flags.fast {
		plan, err = solve.SolveFast(packages, ulds, cfg)
	} else {
		plan, err = solve.Solve(packages, ulds, cfg)
	}
	var infeasible *model.InfeasibleError
	if errors.As(err, &infeasible) {
		logger.Warn("solve infeasible, writing best-effort plan", "unplaced_priority", infeasible.UnplacedPriorityIDs)
	} else if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	logger.Info("solved",
		"placed", plan.Result.NumberPacked,
		"unplaced", len(plan.Result.Layout.Unplaced),
		"priority_ulds", plan.Result.NumberPriorityULD)

	if err := writeSolution(flags.outPath, plan.Result); err != nil {
		return err
	}

	packsByID := make(map[string]model.Package, len(packages))
	for _, p := range packages {
		packsByID[p.ID] = p
	}

	if flags.pdfPath != "" {
		if err := export.GenerateLoadReport(flags.pdfPath, plan, ulds, packsByID); err != nil {
			return fmt.Errorf("generate pdf report: %w", err)
		}
		logger.Info("wrote pdf report", "path", flags.pdfPath)
	}
	if flags.xlsxPath != "" {
		if err := export.GenerateWorkbook(flags.xlsxPath, plan, ulds, packsByID); err != nil {
			return fmt.Errorf("generate xlsx workbook: %w", err)
		}
		logger.Info("wrote xlsx workbook", "path", flags.xlsxPath)
	}
	if flags.dxfDir != "" {
		if err := os.MkdirAll(flags.dxfDir, 0o755); err != nil {
			return fmt.Errorf("create dxf output dir: %w", err)
		}
		if err := export.GenerateFloorPlans(flags.dxfDir, plan.Result.Layout, ulds); err != nil {
			return fmt.Errorf("generate dxf floor plans: %w", err)
		}
		logger.Info("wrote dxf floor plans", "dir", flags.dxfDir)
	}
	if flags.labelsPath != "" {
		if err := export.GenerateLabels(flags.labelsPath, plan.Result.Layout, packsByID); err != nil {
			return fmt.Errorf("generate labels: %w", err)
		}
		logger.Info("wrote labels", "path", flags.labelsPath)
	}

	return nil
}

func buildSolverConfig(flags *solveFlags) model.SolverConfig {
	cfg := model.DefaultSolverConfig()
	cfg.Heuristic = model.ParseHeuristic(flags.heuristic)
	cfg.FFDKey = model.ParseFFDKey(flags.ffdKey)
	cfg.Seed = flags.seed
	cfg.Generations = flags.generations
	cfg.PopulationSize = flags.population
	cfg.EliteCount = flags.eliteCount
	cfg.EliteBias = flags.eliteBias
	cfg.PriorityPenalty = flags.priorityPenalty
	cfg.PerULDPenalty = flags.perULDPenalty
	return cfg
}

func readPackages(path string) ([]model.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open package manifest: %w", err)
	}
	defer f.Close()

	result := csvio.ReadPackages(f)
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("package manifest %s: %v", path, result.Errors)
	}
	return result.Packages, nil
}

func readULDs(path string) ([]model.ULD, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open uld manifest: %w", err)
	}
	defer f.Close()

	ulds, err := csvio.ReadULDs(f)
	if err != nil {
		return nil, fmt.Errorf("uld manifest %s: %w", path, err)
	}
	return ulds, nil
}

func readPairs(path string) (map[string]map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pairing table %s: %w", path, err)
	}
	defer f.Close()

	pairs, err := csvio.ReadPairs(f)
	if err != nil {
		return nil, fmt.Errorf("pairing table %s: %w", path, err)
	}
	return pairs, nil
}

func writeSolution(path string, result model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create solution file: %w", err)
	}
	defer f.Close()

	if err := csvio.WriteSolution(f, result); err != nil {
		return fmt.Errorf("write solution: %w", err)
	}
	return nil
}
