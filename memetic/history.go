package memetic

import (
	"log/slog"

	"github.com/pthm-cable/strike/genome"
)

// HistoryEntry records the best individual after one completed generation.
type HistoryEntry struct {
	Generation  int
	BestGenome  genome.Genome
	BestFitness float64
	Refined     bool // the refiner produced this generation's best
}

// LogValue implements slog.LogValuer for structured logging.
func (e HistoryEntry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", e.Generation),
		slog.Float64("best_fitness", e.BestFitness),
		slog.Bool("refined", e.Refined),
		slog.Any("best_genome", []float64(e.BestGenome)),
	)
}

// RunHistory is the append-only per-generation record of a run.
type RunHistory []HistoryEntry

// Last returns the final entry, or false for an empty history.
func (h RunHistory) Last() (HistoryEntry, bool) {
	if len(h) == 0 {
		return HistoryEntry{}, false
	}
	return h[len(h)-1], true
}

// BestFitnesses returns the best fitness series.
func (h RunHistory) BestFitnesses() []float64 {
	out := make([]float64, len(h))
	for i, e := range h {
		out[i] = e.BestFitness
	}
	return out
}
