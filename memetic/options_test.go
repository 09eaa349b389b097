package memetic

import (
	"errors"
	"math"
	"testing"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		option string
	}{
		{"defaults", func(*Options) {}, ""},
		{"no elites", func(o *Options) { o.EliteCount = 0 }, "elite_count"},
		{"population too small", func(o *Options) { o.PopulationSize = 3; o.ParentsMating = 2 }, "population_size"},
		{"one parent", func(o *Options) { o.ParentsMating = 1; o.EliteCount = 1 }, "parents_mating"},
		{"fewer parents than elites", func(o *Options) { o.EliteCount = 5; o.ParentsMating = 4 }, "parents_mating"},
		{"more parents than population", func(o *Options) { o.ParentsMating = 61 }, "parents_mating"},
		{"negative generations", func(o *Options) { o.NumGenerations = -1 }, "num_generations"},
		{"odd genes", func(o *Options) { o.NumGenes = 7 }, "num_genes"},
		{"zero genes", func(o *Options) { o.NumGenes = 0 }, "num_genes"},
		{"inverted bounds", func(o *Options) { o.GeneBounds.Low = 100; o.GeneBounds.High = 0 }, "gene_bounds"},
		{"infinite bound", func(o *Options) { o.GeneBounds.High = math.Inf(1) }, "gene_bounds"},
		{"mutation above 1", func(o *Options) { o.MutationRate = 1.2 }, "mutation_rate"},
		{"mutation below 0", func(o *Options) { o.MutationRate = -0.1 }, "mutation_rate"},
		{"zero step", func(o *Options) { o.LocalSearchStep = 0 }, "local_search_step"},
		{"negative threshold", func(o *Options) { o.SeparationThreshold = -1 }, "separation_threshold"},
		{"negative penalty", func(o *Options) { o.SeparationPenaltyCoeff = -1 }, "separation_penalty_coeff"},
		{"mutation bounds inclusive", func(o *Options) { o.MutationRate = 1 }, ""},
		{"single strike point", func(o *Options) { o.NumGenes = 2 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()

			if tt.option == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cfgErr.Option != tt.option {
				t.Errorf("Option = %q, want %q", cfgErr.Option, tt.option)
			}
		})
	}
}

func TestOptionsEvaluations(t *testing.T) {
	opts := DefaultOptions()
	// 60 initial + 350 * (58 offspring + 12 refinement moves)
	if got, want := opts.Evaluations(), 60+350*(58+12); got != want {
		t.Errorf("Evaluations() = %d, want %d", got, want)
	}
}
