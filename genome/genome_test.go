package genome

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		g    Genome
	}{
		{"empty", Genome{}},
		{"single point", Genome{0, 0}},
		{"three points", Genome{20, 20, 60, 60, 80, 10}},
		{"fractional", Genome{0.125, 99.875, 33.3, 66.6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(Decode(tt.g))
			if diff := cmp.Diff(tt.g, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeOrder(t *testing.T) {
	points := Decode(Genome{1, 2, 3, 4})
	want := []StrikePoint{{X: 1, Y: 2}, {X: 3, Y: 4}}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeOddLengthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for odd-length genome")
		}
	}()
	Decode(Genome{1, 2, 3})
}

func TestCheck(t *testing.T) {
	b := Bounds{Low: 0, High: 100}
	tests := []struct {
		name    string
		g       Genome
		length  int
		wantErr error
	}{
		{"valid", Genome{0, 100, 50, 50}, 4, nil},
		{"short", Genome{0, 1}, 4, ErrLength},
		{"below", Genome{-0.1, 1}, 2, ErrOutOfBounds},
		{"above", Genome{1, 100.5}, 2, ErrOutOfBounds},
		{"nan", Genome{math.NaN(), 1}, 2, ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Check(tt.length, b)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Check() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{Low: 0, High: 100}
	for _, tc := range []struct{ in, want float64 }{
		{-5, 0}, {0, 0}, {42, 42}, {100, 100}, {101, 100},
	} {
		if got := b.Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := Genome{1, 2}
	c := g.Clone()
	c[0] = 9
	if g[0] != 1 {
		t.Error("Clone shares storage with original")
	}
}
