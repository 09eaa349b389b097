// Package genome maps flat gene vectors onto strike point coordinates.
package genome

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrLength reports a genome whose length does not match the configured gene count.
	ErrLength = errors.New("genome length mismatch")
	// ErrOutOfBounds reports a gene outside the configured bounds.
	ErrOutOfBounds = errors.New("gene out of bounds")
)

// StrikePoint is a candidate strike location.
type StrikePoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Vec returns the point as a gonum vector.
func (p StrikePoint) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Bounds is the closed interval every gene must stay within.
type Bounds struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Contains reports whether v lies in [Low, High].
func (b Bounds) Contains(v float64) bool {
	return v >= b.Low && v <= b.High
}

// Clamp pins v to [Low, High].
func (b Bounds) Clamp(v float64) float64 {
	return math.Min(math.Max(v, b.Low), b.High)
}

// Width returns High - Low.
func (b Bounds) Width() float64 {
	return b.High - b.Low
}

// Genome is a flat vector of 2K genes, decoded pairwise into K strike points.
type Genome []float64

// Clone returns an independent copy.
func (g Genome) Clone() Genome {
	c := make(Genome, len(g))
	copy(c, g)
	return c
}

// Points returns the number of strike points encoded.
func (g Genome) Points() int {
	return len(g) / 2
}

// Check verifies the genome has the expected length and every gene is within bounds.
func (g Genome) Check(length int, b Bounds) error {
	if len(g) != length {
		return fmt.Errorf("%w: got %d genes, want %d", ErrLength, len(g), length)
	}
	for i, v := range g {
		if math.IsNaN(v) || !b.Contains(v) {
			return fmt.Errorf("%w: gene %d = %v not in [%v, %v]", ErrOutOfBounds, i, v, b.Low, b.High)
		}
	}
	return nil
}

// Decode pairs consecutive genes into strike points, preserving order.
// Panics if the genome has odd length.
func Decode(g Genome) []StrikePoint {
	if len(g)%2 != 0 {
		panic(fmt.Sprintf("genome: cannot decode odd-length genome (%d genes)", len(g)))
	}
	points := make([]StrikePoint, len(g)/2)
	for i := range points {
		points[i] = StrikePoint{X: g[2*i], Y: g[2*i+1]}
	}
	return points
}

// Encode flattens strike points back into a genome. Inverse of Decode.
func Encode(points []StrikePoint) Genome {
	g := make(Genome, 0, 2*len(points))
	for _, p := range points {
		g = append(g, p.X, p.Y)
	}
	return g
}
