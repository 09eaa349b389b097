// Package memetic implements the strike placement search: a steady-state
// genetic algorithm whose best individual is polished by a one-pass
// coordinate hill-climb every generation.
package memetic

import (
	"math"

	"github.com/pthm-cable/strike/genome"
)

// Options holds the run configuration.
type Options struct {
	PopulationSize         int           // P
	NumGenerations         int           // G_max
	NumGenes               int           // 2K
	GeneBounds             genome.Bounds // [0, FIELD_MAX]
	ParentsMating          int           // N_parents
	EliteCount             int           // E
	MutationRate           float64       // per-gene reset probability
	LocalSearchStep        float64
	SeparationThreshold    float64 // T
	SeparationPenaltyCoeff float64 // C
	Seed                   *uint64 // nil draws a fresh seed
}

// DefaultOptions mirrors the reference run: 3 strike points on a 100x100 field.
func DefaultOptions() Options {
	return Options{
		PopulationSize:         60,
		NumGenerations:         350,
		NumGenes:               6,
		GeneBounds:             genome.Bounds{Low: 0, High: 100},
		ParentsMating:          20,
		EliteCount:             2,
		MutationRate:           0.1,
		LocalSearchStep:        1.0,
		SeparationThreshold:    10,
		SeparationPenaltyCoeff: 100,
	}
}

// Validate checks every option and returns the first violation as a *ConfigError.
func (o Options) Validate() error {
	switch {
	case o.EliteCount < 1:
		return configErr("elite_count", "must be at least 1, got %d", o.EliteCount)
	case o.PopulationSize < o.EliteCount+2:
		return configErr("population_size", "must be at least elite_count+2 (%d), got %d", o.EliteCount+2, o.PopulationSize)
	case o.ParentsMating < 2 || o.ParentsMating < o.EliteCount:
		return configErr("parents_mating", "must be at least max(2, elite_count), got %d", o.ParentsMating)
	case o.ParentsMating > o.PopulationSize:
		return configErr("parents_mating", "must not exceed population_size (%d), got %d", o.PopulationSize, o.ParentsMating)
	case o.NumGenerations < 0:
		return configErr("num_generations", "must be non-negative, got %d", o.NumGenerations)
	case o.NumGenes < 2 || o.NumGenes%2 != 0:
		return configErr("num_genes", "must be a positive even number, got %d", o.NumGenes)
	case !finite(o.GeneBounds.Low) || !finite(o.GeneBounds.High) || o.GeneBounds.Low >= o.GeneBounds.High:
		return configErr("gene_bounds", "must be finite with low < high, got [%v, %v]", o.GeneBounds.Low, o.GeneBounds.High)
	case math.IsNaN(o.MutationRate) || o.MutationRate < 0 || o.MutationRate > 1:
		return configErr("mutation_rate", "must be within [0, 1], got %v", o.MutationRate)
	case !finite(o.LocalSearchStep) || o.LocalSearchStep <= 0:
		return configErr("local_search_step", "must be positive, got %v", o.LocalSearchStep)
	case !finite(o.SeparationThreshold) || o.SeparationThreshold < 0:
		return configErr("separation_threshold", "must be non-negative, got %v", o.SeparationThreshold)
	case !finite(o.SeparationPenaltyCoeff) || o.SeparationPenaltyCoeff < 0:
		return configErr("separation_penalty_coeff", "must be non-negative, got %v", o.SeparationPenaltyCoeff)
	}
	return nil
}

// Evaluations returns the number of objective evaluations a run with these options performs.
func (o Options) Evaluations() int {
	perGen := o.PopulationSize - o.EliteCount + 2*o.NumGenes
	return o.PopulationSize + o.NumGenerations*perGen
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
