package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/strike/memetic"
)

// PopulationStats summarises the fitness distribution and gene diversity of a population.
type PopulationStats struct {
	Size int `csv:"size" json:"size"`

	Best  float64 `csv:"best" json:"best"`
	Worst float64 `csv:"worst" json:"worst"`
	Mean  float64 `csv:"mean" json:"mean"`
	Std   float64 `csv:"std" json:"std"`
	P10   float64 `csv:"p10" json:"p10"`
	P50   float64 `csv:"p50" json:"p50"`
	P90   float64 `csv:"p90" json:"p90"`

	// Mean per-gene standard deviation; 0 once the population has collapsed onto one genome.
	GeneSpread float64 `csv:"gene_spread" json:"gene_spread"`
}

// ComputePopulationStats calculates fitness and diversity statistics for pop.
// Returns the zero value for an empty population.
func ComputePopulationStats(pop memetic.Population) PopulationStats {
	n := len(pop)
	if n == 0 {
		return PopulationStats{}
	}

	fitness := pop.Fitnesses()
	sorted := make([]float64, n)
	copy(sorted, fitness)
	sort.Float64s(sorted)

	s := PopulationStats{
		Size:  n,
		Best:  floats.Max(fitness),
		Worst: floats.Min(fitness),
		Mean:  stat.Mean(fitness, nil),
		P10:   stat.Quantile(0.10, stat.LinInterp, sorted, nil),
		P50:   stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P90:   stat.Quantile(0.90, stat.LinInterp, sorted, nil),
	}
	if n > 1 {
		s.Std = stat.StdDev(fitness, nil)
		s.GeneSpread = geneSpread(pop)
	}
	return s
}

func geneSpread(pop memetic.Population) float64 {
	genomes := pop.Genomes()
	genes := len(genomes[0])
	if genes == 0 {
		return 0
	}

	column := make([]float64, len(genomes))
	spread := make([]float64, genes)
	for j := 0; j < genes; j++ {
		for i, g := range genomes {
			column[i] = g[j]
		}
		spread[j] = stat.StdDev(column, nil)
	}
	return stat.Mean(spread, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PopulationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("size", s.Size),
		slog.Float64("best", s.Best),
		slog.Float64("worst", s.Worst),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("gene_spread", s.GeneSpread),
	)
}
