package memetic

import (
	"github.com/pthm-cable/strike/genome"
	"github.com/pthm-cable/strike/objective"
)

// refine tries +step and -step on every gene (clamped to b) and keeps the
// single best move of the sweep if it beats fitness. One pass only; the
// input genome is never modified. Returns the number of evaluations made.
func refine(m *objective.Model, g genome.Genome, fitness, step float64, b genome.Bounds) (genome.Genome, float64, int) {
	best, bestFitness := g, fitness
	evals := 0

	for i := range g {
		for _, delta := range [2]float64{step, -step} {
			cand := g.Clone()
			cand[i] = b.Clamp(cand[i] + delta)
			f := m.Evaluate(genome.Decode(cand))
			evals++
			if f > bestFitness {
				best, bestFitness = cand, f
			}
		}
	}

	return best, bestFitness, evals
}
