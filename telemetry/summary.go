package telemetry

import (
	"github.com/pthm-cable/strike/field"
	"github.com/pthm-cable/strike/genome"
	"github.com/pthm-cable/strike/memetic"
	"github.com/pthm-cable/strike/objective"
)

// TargetResult is the mass the best placement neutralizes at one target.
type TargetResult struct {
	ID          int     `json:"id"`
	Weight      float64 `json:"weight"`
	Neutralized float64 `json:"neutralized"`
}

// Summary is the final report of a run.
type Summary struct {
	RunID       string               `json:"run_id"`
	Seed        uint64               `json:"seed"`
	Generations int                  `json:"generations"`
	Evaluations int                  `json:"evaluations"`
	Refinements int                  `json:"refinements"`
	BestFitness float64              `json:"best_fitness"`
	RawScore    float64              `json:"raw_score"`
	Penalty     float64              `json:"penalty"`
	BestPoints  []genome.StrikePoint `json:"best_points"`
	Targets     []TargetResult       `json:"targets"`
	Population  PopulationStats      `json:"population"`
}

// NewSummary scores the best genome of res and collects final statistics.
func NewSummary(runID string, res *memetic.Result, m *objective.Model, f *field.Field) Summary {
	best, fitness := res.Best()
	points := genome.Decode(best)
	score := m.Score(points)

	targets := make([]TargetResult, f.Len())
	for i := range targets {
		t := f.Target(i)
		targets[i] = TargetResult{ID: t.ID, Weight: t.Weight, Neutralized: score.Neutralized[i]}
	}

	refinements := 0
	for _, e := range res.History {
		if e.Refined {
			refinements++
		}
	}

	return Summary{
		RunID:       runID,
		Seed:        res.Seed,
		Generations: len(res.History),
		Evaluations: res.Evaluations,
		Refinements: refinements,
		BestFitness: fitness,
		RawScore:    score.Raw,
		Penalty:     score.Penalty,
		BestPoints:  points,
		Targets:     targets,
		Population:  ComputePopulationStats(res.Population),
	}
}
