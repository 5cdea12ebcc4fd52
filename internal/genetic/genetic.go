// Package genetic implements the biased random-key genetic search (S)
// that drives repeated placement-and-compaction runs toward a layout
// minimizing unplaced priority cost and priority dispersion across
// ULDs.
package genetic

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/uldsolve/internal/compact"
	"github.com/piwi3910/uldsolve/internal/model"
	"github.com/piwi3910/uldsolve/internal/pack"
)

// chromosome is a biased random key: one key per priority package, one
// key per non-priority package, both in [0, 1). Decoding sorts each
// group by its own key vector to obtain the placement order; genes
// never encode an orientation or ULD directly, only relative order,
// so crossover and mutation can never produce an invalid individual.
type chromosome struct {
	priorityKeys []float64
	restKeys     []float64
	fitness      float64
}

// optimizer holds one genetic run's fixed inputs.
type optimizer struct {
	cfg        model.SolverConfig
	ulds       []model.ULD
	priority   []model.Package
	rest       []model.Package
	packsByID  map[string]model.Package
	totalCost  float64
	rng        *rand.Rand
}

// Run executes the configured number of generations and returns the
// best layout found, already compacted.
func Run(packages []model.Package, ulds []model.ULD, cfg model.SolverConfig) model.Layout {
	if len(packages) == 0 || len(ulds) == 0 {
		return model.Layout{}
	}

	o := newOptimizer(packages, ulds, cfg)
	population := o.initPopulation()
	for i := range population {
		population[i].fitness = o.evaluate(population[i])
	}

	for gen := 0; gen < o.cfg.Generations; gen++ {
		sort.Slice(population, func(i, j int) bool {
			return population[i].fitness < population[j].fitness // smaller is better
		})

		eliteCount := o.cfg.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		newPop := make([]chromosome, 0, o.cfg.PopulationSize)
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, o.copyChromosome(population[i]))
		}

		// Exactly one crossover child per generation, bred from one
		// random elite and one random non-elite individual, per
		// spec.md §4.4's BRKGA (original_source/python_server/core/
		// genetic.py GeneticSolver.crossover): elites are never
		// recombined with each other, and crossover never touches
		// more than a single pair.
		if eliteCount > 0 && eliteCount < len(population) && len(newPop) < o.cfg.PopulationSize {
			elite := population[o.rng.Intn(eliteCount)]
			nonElite := population[eliteCount+o.rng.Intn(len(population)-eliteCount)]
			child := o.biasedCrossover(elite, nonElite)
			child.fitness = o.evaluate(child)
			newPop = append(newPop, child)
		}

		// Every remaining slot is a freshly, uniformly re-initialized
		// mutant, not a mutated crossover child.
		for len(newPop) < o.cfg.PopulationSize {
			mutant := o.randomChromosome()
			mutant.fitness = o.evaluate(mutant)
			newPop = append(newPop, mutant)
		}
		population = newPop
	}

	sort.Slice(population, func(i, j int) bool {
		return population[i].fitness < population[j].fitness
	})
	return o.decodeLayout(population[0])
}

func newOptimizer(packages []model.Package, ulds []model.ULD, cfg model.SolverConfig) *optimizer {
	o := &optimizer{
		cfg:       cfg,
		ulds:      ulds,
		packsByID: make(map[string]model.Package, len(packages)),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
	for _, p := range packages {
		o.packsByID[p.ID] = p
		o.totalCost += p.Cost
		if p.Priority {
			o.priority = append(o.priority, p)
		} else {
			o.rest = append(o.rest, p)
		}
	}
	return o
}

// initPopulation fills the population with uniform-random key vectors,
// seeding one individual with the constructive FFD order (keys set so
// that decoding reproduces pack.SortPackages's order) to give the
// search a competitive starting point.
func (o *optimizer) initPopulation() []chromosome {
	population := make([]chromosome, o.cfg.PopulationSize)
	for i := range population {
		population[i] = o.randomChromosome()
	}
	if o.cfg.PopulationSize > 0 {
		population[0] = o.greedyChromosome()
	}
	return population
}

func (o *optimizer) randomChromosome() chromosome {
	return chromosome{
		priorityKeys: o.randomKeys(len(o.priority)),
		restKeys:     o.randomKeys(len(o.rest)),
	}
}

func (o *optimizer) randomKeys(n int) []float64 {
	if n == 0 {
		return nil
	}
	keys := make([]float64, n)
	for i := range keys {
		keys[i] = o.rng.Float64()
	}
	return keys
}

// greedyChromosome assigns descending keys in FFD order, so decoding
// this individual reproduces the same order pack.SortPackages would
// pick constructively.
func (o *optimizer) greedyChromosome() chromosome {
	orderedPriority := pack.SortPackages(o.priority, o.cfg)
	orderedRest := pack.SortPackages(o.rest, o.cfg)
	return chromosome{
		priorityKeys: descendingKeys(o.priority, orderedPriority),
		restKeys:     descendingKeys(o.rest, orderedRest),
	}
}

// descendingKeys returns, for each package in original order, a key
// such that sorting original by key descending reproduces ranked's
// order.
func descendingKeys(original, ranked []model.Package) []float64 {
	n := len(ranked)
	rank := make(map[string]int, n)
	for i, p := range ranked {
		rank[p.ID] = i
	}
	keys := make([]float64, len(original))
	for i, p := range original {
		keys[i] = 1 - float64(rank[p.ID])/float64(n+1)
	}
	return keys
}

// decodeOrder sorts each group by its key vector descending (largest
// key placed first) and concatenates priority ahead of non-priority,
// mirroring the top-level sort every other placement path uses.
func (o *optimizer) decodeOrder(c chromosome) []model.Package {
	order := make([]model.Package, 0, len(o.priority)+len(o.rest))
	order = append(order, sortByKeys(o.priority, c.priorityKeys)...)
	order = append(order, sortByKeys(o.rest, c.restKeys)...)
	return order
}

func sortByKeys(packages []model.Package, keys []float64) []model.Package {
	idx := make([]int, len(packages))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return keys[idx[i]] > keys[idx[j]]
	})
	out := make([]model.Package, len(packages))
	for i, j := range idx {
		out[i] = packages[j]
	}
	return out
}

// decodeLayout runs the full placement-then-compaction pipeline for a
// chromosome: a fresh placement engine per decode, since Engine is not
// reusable across independent orderings.
func (o *optimizer) decodeLayout(c chromosome) model.Layout {
	order := o.decodeOrder(c)
	all := append(append([]model.Package{}, o.priority...), o.rest...)
	engine := pack.NewEngine(o.ulds, all, o.cfg)
	layout := engine.PlaceOrdered(order)
	return compact.Compact(layout, o.ulds)
}

// evaluate scores a chromosome: smaller is better. The baseline is the
// total cost of every package (as if none were placed); each placed
// non-priority package's cost is credited back, every unplaced
// priority package is penalized heavily, and every ULD holding at
// least one priority package adds PerULDPenalty.
func (o *optimizer) evaluate(c chromosome) float64 {
	layout := o.decodeLayout(c)

	unplacedPriority := 0
	unplacedSet := make(map[string]bool, len(layout.Unplaced))
	for _, id := range layout.Unplaced {
		unplacedSet[id] = true
		if pk, ok := o.packsByID[id]; ok && pk.Priority {
			unplacedPriority++
		}
	}

	var placedNonPriorityCost float64
	priorityULDs := make(map[string]bool)
	for _, pl := range layout.Placements {
		pk, ok := o.packsByID[pl.PackID]
		if !ok {
			continue
		}
		if pk.Priority {
			priorityULDs[pl.ULDID] = true
		} else {
			placedNonPriorityCost += pk.Cost
		}
	}

	fit := o.totalCost - placedNonPriorityCost
	fit += o.cfg.PriorityPenalty * float64(unplacedPriority)
	fit += o.cfg.PerULDPenalty * float64(len(priorityULDs))
	return fit
}

// biasedCrossover builds a child by choosing, gene by gene, from
// parent1 with probability EliteBias and from parent2 otherwise (the
// standard biased-random-key parameterized uniform crossover, biased
// toward the fitter parent when parent1 is the elite).
func (o *optimizer) biasedCrossover(parent1, parent2 chromosome) chromosome {
	return chromosome{
		priorityKeys: o.biasedMix(parent1.priorityKeys, parent2.priorityKeys),
		restKeys:     o.biasedMix(parent1.restKeys, parent2.restKeys),
	}
}

func (o *optimizer) biasedMix(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		if o.rng.Float64() < o.cfg.EliteBias {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return out
}

func (o *optimizer) copyChromosome(c chromosome) chromosome {
	p := make([]float64, len(c.priorityKeys))
	copy(p, c.priorityKeys)
	r := make([]float64, len(c.restKeys))
	copy(r, c.restKeys)
	return chromosome{priorityKeys: p, restKeys: r, fitness: c.fitness}
}
