package memetic

import (
	"math/rand/v2"
	"sort"

	"github.com/pthm-cable/strike/genome"
	"github.com/pthm-cable/strike/objective"
)

// Individual is a genome with a lazily computed fitness.
type Individual struct {
	genome    genome.Genome
	fitness   float64
	evaluated bool
}

// NewIndividual wraps g with a stale fitness cache.
func NewIndividual(g genome.Genome) Individual {
	return Individual{genome: g}
}

// Genome returns a copy of the individual's genes.
func (ind *Individual) Genome() genome.Genome {
	return ind.genome.Clone()
}

// SetGenome replaces the genes and invalidates the fitness cache.
func (ind *Individual) SetGenome(g genome.Genome) {
	ind.genome = g
	ind.fitness = 0
	ind.evaluated = false
}

// Fitness returns the cached fitness and whether it is current.
func (ind *Individual) Fitness() (float64, bool) {
	return ind.fitness, ind.evaluated
}

func (ind *Individual) setFitness(f float64) {
	ind.fitness = f
	ind.evaluated = true
}

// Population is a fixed-size ordered set of individuals.
type Population []Individual

// Genomes returns copies of every genome, in population order.
func (p Population) Genomes() []genome.Genome {
	out := make([]genome.Genome, len(p))
	for i := range p {
		out[i] = p[i].Genome()
	}
	return out
}

// Fitnesses returns the cached fitness of every individual, in population order.
func (p Population) Fitnesses() []float64 {
	out := make([]float64, len(p))
	for i := range p {
		out[i] = p[i].fitness
	}
	return out
}

// Best returns the index of the fittest individual; ties go to the lowest index.
func (p Population) Best() int {
	best := 0
	for i := 1; i < len(p); i++ {
		if p[i].fitness > p[best].fitness {
			best = i
		}
	}
	return best
}

func (p Population) clone() Population {
	out := make(Population, len(p))
	for i, ind := range p {
		out[i] = ind
		out[i].genome = ind.genome.Clone()
	}
	return out
}

// randomPopulation draws every gene uniformly from b.
func randomPopulation(size, genes int, b genome.Bounds, rng *rand.Rand) Population {
	pop := make(Population, size)
	for i := range pop {
		g := make(genome.Genome, genes)
		for j := range g {
			g[j] = uniformGene(b, rng)
		}
		pop[i] = NewIndividual(g)
	}
	return pop
}

// Evaluate fills every stale fitness cache and returns the number of evaluations made.
func (p Population) Evaluate(m *objective.Model) int {
	n := 0
	for i := range p {
		if p[i].evaluated {
			continue
		}
		p[i].setFitness(m.Evaluate(genome.Decode(p[i].genome)))
		n++
	}
	return n
}

// rank returns population indices ordered by fitness descending.
// Equal fitness keeps population order.
func rank(p Population) []int {
	order := make([]int, len(p))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p[order[a]].fitness > p[order[b]].fitness
	})
	return order
}

// selectParents returns copies of the n fittest individuals, best first.
// Deterministic for an evaluated population.
func selectParents(p Population, n int) []Individual {
	order := rank(p)
	parents := make([]Individual, n)
	for i := 0; i < n; i++ {
		parents[i] = p[order[i]]
		parents[i].genome = p[order[i]].genome.Clone()
	}
	return parents
}
