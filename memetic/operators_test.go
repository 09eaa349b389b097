package memetic

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm-cable/strike/genome"
)

var unitBounds = genome.Bounds{Low: 0, High: 100}

func TestCutPoints(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for _, length := range []int{3, 4, 6, 10} {
		for n := 0; n < 500; n++ {
			i, j := cutPoints(length, rng)
			if i < 1 || j > length-1 || i >= j {
				t.Fatalf("cutPoints(%d) = (%d, %d), want 1 <= i < j <= %d", length, i, j, length-1)
			}
		}
	}

	if i, j := cutPoints(2, rng); i != 1 || j != 2 {
		t.Errorf("cutPoints(2) = (%d, %d), want (1, 2)", i, j)
	}
}

func TestTwoPointCrossoverSegments(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	a := genome.Genome{1, 1, 1, 1, 1, 1}
	b := genome.Genome{2, 2, 2, 2, 2, 2}

	for n := 0; n < 200; n++ {
		child := twoPointCrossover(a, b, rng)
		if len(child) != len(a) {
			t.Fatalf("child length %d, want %d", len(child), len(a))
		}
		// child must be a's genes, then one contiguous run of b's, then a's again
		if child[0] != 1 || child[len(child)-1] != 1 {
			t.Fatalf("child %v: outer genes must come from a", child)
		}
		transitions := 0
		for k := 1; k < len(child); k++ {
			if child[k] != child[k-1] {
				transitions++
			}
		}
		if transitions != 2 {
			t.Fatalf("child %v: want exactly one inner segment from b", child)
		}
	}

	if a[0] != 1 || b[0] != 2 {
		t.Error("crossover modified a parent")
	}
}

func TestResetMutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))

	g := genome.Genome{10, 20, 30, 40}
	if n := resetMutation(g, 0, unitBounds, rng); n != 0 {
		t.Errorf("rate 0 reset %d genes", n)
	}
	if diff := cmp.Diff(genome.Genome{10, 20, 30, 40}, g); diff != "" {
		t.Errorf("rate 0 changed genome (-want +got):\n%s", diff)
	}

	narrow := genome.Bounds{Low: 60, High: 70}
	if n := resetMutation(g, 1, narrow, rng); n != len(g) {
		t.Errorf("rate 1 reset %d genes, want %d", n, len(g))
	}
	if err := g.Check(4, narrow); err != nil {
		t.Errorf("reset genes outside bounds: %v", err)
	}
}

func TestPickPairDistinct(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	seen := make(map[[2]int]bool)
	for n := 0; n < 1000; n++ {
		a, b := pickPair(3, rng)
		if a == b || a < 0 || b < 0 || a >= 3 || b >= 3 {
			t.Fatalf("pickPair(3) = (%d, %d)", a, b)
		}
		seen[[2]int{a, b}] = true
	}
	if len(seen) != 6 {
		t.Errorf("saw %d ordered pairs, want all 6", len(seen))
	}
}

func TestBreedStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	parents := randomPopulation(6, 6, unitBounds, rng)

	offspring := breed(parents, 50, 0.2, unitBounds, rng)
	if len(offspring) != 50 {
		t.Fatalf("got %d offspring, want 50", len(offspring))
	}
	for i, child := range offspring {
		if err := child.Check(6, unitBounds); err != nil {
			t.Errorf("offspring %d: %v", i, err)
		}
	}
}
