package memetic

import (
	"math/rand/v2"

	"github.com/pthm-cable/strike/genome"
)

func uniformGene(b genome.Bounds, rng *rand.Rand) float64 {
	return b.Low + rng.Float64()*b.Width()
}

// pickPair returns two distinct indices in [0, n).
func pickPair(n int, rng *rand.Rand) (int, int) {
	a := rng.IntN(n)
	b := rng.IntN(n - 1)
	if b >= a {
		b++
	}
	return a, b
}

// cutPoints draws i < j from [1, length-1]. A two-gene genome has only one
// interior cut, so it uses [1, 2) and the child takes b's second gene.
func cutPoints(length int, rng *rand.Rand) (int, int) {
	if length < 3 {
		return 1, length
	}
	i := 1 + rng.IntN(length-1)
	j := 1 + rng.IntN(length-2)
	if j >= i {
		j++
	}
	if i > j {
		i, j = j, i
	}
	return i, j
}

// twoPointCrossover copies a and replaces [i, j) with b's genes.
func twoPointCrossover(a, b genome.Genome, rng *rand.Rand) genome.Genome {
	child := a.Clone()
	i, j := cutPoints(len(a), rng)
	copy(child[i:j], b[i:j])
	return child
}

// resetMutation replaces each gene with a fresh uniform draw with probability rate.
// Returns the number of genes reset.
func resetMutation(g genome.Genome, rate float64, b genome.Bounds, rng *rand.Rand) int {
	n := 0
	for i := range g {
		if rng.Float64() < rate {
			g[i] = uniformGene(b, rng)
			n++
		}
	}
	return n
}

// breed produces count offspring from randomly paired distinct parents.
func breed(parents []Individual, count int, rate float64, b genome.Bounds, rng *rand.Rand) []genome.Genome {
	offspring := make([]genome.Genome, count)
	for k := range offspring {
		pa, pb := pickPair(len(parents), rng)
		child := twoPointCrossover(parents[pa].genome, parents[pb].genome, rng)
		resetMutation(child, rate, b, rng)
		offspring[k] = child
	}
	return offspring
}
