// Package objective scores strike placements against a target field.
package objective

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/strike/field"
	"github.com/pthm-cable/strike/genome"
)

// Default parameter values.
const (
	DefaultEpsilon             = 1e-5
	DefaultDistanceScale       = 20.0
	DefaultSeparationThreshold = 10.0
	DefaultSeparationPenalty   = 100.0
)

// Params controls the decay curve and the separation penalty.
type Params struct {
	Epsilon             float64 // keeps the decay finite at d=0
	DistanceScale       float64 // neutralized = w * dmax / (scale*d + eps)
	SeparationThreshold float64 // T
	SeparationPenalty   float64 // C, applied as C*(T-minDist)
}

// DefaultParams returns the standard objective parameters.
func DefaultParams() Params {
	return Params{
		Epsilon:             DefaultEpsilon,
		DistanceScale:       DefaultDistanceScale,
		SeparationThreshold: DefaultSeparationThreshold,
		SeparationPenalty:   DefaultSeparationPenalty,
	}
}

// Score is the full breakdown of one evaluation.
type Score struct {
	Raw         float64
	Penalty     float64
	Fitness     float64
	Neutralized []float64 // per target, in field order
}

// Model is a pure fitness function over a read-only field.
type Model struct {
	field  *field.Field
	dmax   float64
	params Params
}

// New builds a model over f. A field with no spread (single target) uses dmax = 1.
func New(f *field.Field, params Params) *Model {
	dmax := f.MaxDistance()
	if dmax == 0 {
		dmax = 1
	}
	return &Model{field: f, dmax: dmax, params: params}
}

// DMax returns the distance normaliser used by the decay curve.
func (m *Model) DMax() float64 {
	return m.dmax
}

// Params returns the model parameters.
func (m *Model) Params() Params {
	return m.params
}

// Evaluate returns raw neutralized mass minus the separation penalty.
// Points are applied in the given order; later points see weights depleted by earlier ones.
func (m *Model) Evaluate(points []genome.StrikePoint) float64 {
	raw, _ := m.neutralize(points, false)
	return raw - m.Penalty(points)
}

// Score is Evaluate with the per-target breakdown.
func (m *Model) Score(points []genome.StrikePoint) Score {
	raw, per := m.neutralize(points, true)
	penalty := m.Penalty(points)
	return Score{
		Raw:         raw,
		Penalty:     penalty,
		Fitness:     raw - penalty,
		Neutralized: per,
	}
}

func (m *Model) neutralize(points []genome.StrikePoint, track bool) (float64, []float64) {
	remaining := m.field.Weights()
	var per []float64
	if track {
		per = make([]float64, len(remaining))
	}

	var total float64
	for _, p := range points {
		pos := p.Vec()
		for i := range remaining {
			if remaining[i] <= 0 {
				continue
			}
			t := m.field.Target(i)
			d := r2.Norm(r2.Sub(pos, t.Pos()))
			n := math.Min(remaining[i], remaining[i]*m.dmax/(m.params.DistanceScale*d+m.params.Epsilon))
			total += n
			remaining[i] -= n
			if track {
				per[i] += n
			}
		}
	}
	return total, per
}

// Penalty returns C*(T-minDist) when the closest pair of points is nearer than T.
// Fewer than two points are never penalised.
func (m *Model) Penalty(points []genome.StrikePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	minDist := MinSeparation(points)
	if minDist >= m.params.SeparationThreshold {
		return 0
	}
	return m.params.SeparationPenalty * (m.params.SeparationThreshold - minDist)
}

// MinSeparation returns the smallest pairwise distance, or +Inf for fewer than two points.
func MinSeparation(points []genome.StrikePoint) float64 {
	minDist := math.Inf(1)
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			d := r2.Norm(r2.Sub(points[i].Vec(), points[j].Vec()))
			if d < minDist {
				minDist = d
			}
		}
	}
	return minDist
}
