// Package field holds the weighted target set strike points are placed over.
package field

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrEmpty is returned when a field has no targets.
var ErrEmpty = errors.New("field: no targets")

// Target is a weighted point. Weight is the depletable mass at the target.
type Target struct {
	ID     int     `csv:"id" yaml:"id" json:"id"`
	Weight float64 `csv:"weight" yaml:"weight" json:"weight"`
	X      float64 `csv:"x" yaml:"x" json:"x"`
	Y      float64 `csv:"y" yaml:"y" json:"y"`
}

// Pos returns the target position.
func (t Target) Pos() r2.Vec {
	return r2.Vec{X: t.X, Y: t.Y}
}

// Field is an immutable set of targets loaded once per process.
// Callers that need to deplete weights must work on Weights(), never on the field itself.
type Field struct {
	targets []Target
	maxDist float64
}

// New validates targets and builds a field from a private copy of them.
func New(targets []Target) (*Field, error) {
	if len(targets) == 0 {
		return nil, ErrEmpty
	}

	seen := make(map[int]struct{}, len(targets))
	for _, t := range targets {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("field: duplicate target id %d", t.ID)
		}
		seen[t.ID] = struct{}{}

		if math.IsNaN(t.Weight) || math.IsInf(t.Weight, 0) || t.Weight < 0 {
			return nil, fmt.Errorf("field: target %d: weight must be finite and non-negative, got %v", t.ID, t.Weight)
		}
		if !isFinite(t.X) || !isFinite(t.Y) {
			return nil, fmt.Errorf("field: target %d: position (%v, %v) is not finite", t.ID, t.X, t.Y)
		}
	}

	f := &Field{targets: make([]Target, len(targets))}
	copy(f.targets, targets)
	f.maxDist = maxPairwiseDistance(f.targets)
	return f, nil
}

// Len returns the number of targets.
func (f *Field) Len() int {
	return len(f.targets)
}

// Target returns the i-th target.
func (f *Field) Target(i int) Target {
	return f.targets[i]
}

// Targets returns a copy of all targets.
func (f *Field) Targets() []Target {
	out := make([]Target, len(f.targets))
	copy(out, f.targets)
	return out
}

// Weights returns a freshly allocated copy of the target weights, in target order.
func (f *Field) Weights() []float64 {
	w := make([]float64, len(f.targets))
	for i, t := range f.targets {
		w[i] = t.Weight
	}
	return w
}

// TotalWeight returns the sum of all target weights.
func (f *Field) TotalWeight() float64 {
	var sum float64
	for _, t := range f.targets {
		sum += t.Weight
	}
	return sum
}

// MaxDistance returns the largest pairwise distance between targets (0 for a single target).
func (f *Field) MaxDistance() float64 {
	return f.maxDist
}

func maxPairwiseDistance(targets []Target) float64 {
	var dmax float64
	for i := range targets {
		for j := i + 1; j < len(targets); j++ {
			d := r2.Norm(r2.Sub(targets[i].Pos(), targets[j].Pos()))
			if d > dmax {
				dmax = d
			}
		}
	}
	return dmax
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// LoadCSV reads a target table with an id,weight,x,y header.
func LoadCSV(path string) ([]Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening targets file: %w", err)
	}
	defer f.Close()

	var targets []Target
	if err := gocsv.UnmarshalFile(f, &targets); err != nil {
		return nil, fmt.Errorf("parsing targets file: %w", err)
	}
	return targets, nil
}
