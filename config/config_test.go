package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm-cable/strike/field"
	"github.com/pthm-cable/strike/genome"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := len(cfg.Field.Targets); got != 12 {
		t.Errorf("default targets = %d, want 12", got)
	}
	if cfg.Derived.StrikePoints != 3 {
		t.Errorf("StrikePoints = %d, want 3", cfg.Derived.StrikePoints)
	}
	if cfg.GA.Seed != nil {
		t.Errorf("default seed = %v, want nil", *cfg.GA.Seed)
	}

	opts := cfg.RunOptions()
	if err := opts.Validate(); err != nil {
		t.Errorf("default options invalid: %v", err)
	}
	if opts.GeneBounds != (genome.Bounds{Low: 0, High: 100}) {
		t.Errorf("GeneBounds = %+v", opts.GeneBounds)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	data := `
ga:
  num_generations: 5
  seed: 42
field:
  targets:
    - {id: 7, weight: 10, x: 1, y: 2}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GA.NumGenerations != 5 {
		t.Errorf("NumGenerations = %d, want 5", cfg.GA.NumGenerations)
	}
	if cfg.GA.PopulationSize != 60 {
		t.Errorf("PopulationSize = %d, want default 60", cfg.GA.PopulationSize)
	}
	if cfg.GA.Seed == nil || *cfg.GA.Seed != 42 {
		t.Errorf("Seed = %v, want 42", cfg.GA.Seed)
	}
	want := []field.Target{{ID: 7, Weight: 10, X: 1, Y: 2}}
	if diff := cmp.Diff(want, cfg.Field.Targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFieldFromCSV(t *testing.T) {
	dir := t.TempDir()
	csvData := "id,weight,x,y\n1,5,0,0\n2,6,3,4\n"
	if err := os.WriteFile(filepath.Join(dir, "targets.csv"), []byte(csvData), 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "run.yaml")
	if err := os.WriteFile(path, []byte("field:\n  targets_csv: targets.csv\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f, err := cfg.BuildField()
	if err != nil {
		t.Fatalf("BuildField() error = %v", err)
	}
	if f.Len() != 2 || f.MaxDistance() != 5 {
		t.Errorf("field len=%d dmax=%v, want 2 and 5", f.Len(), f.MaxDistance())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg.RunOptions(), back.RunOptions()); diff != "" {
		t.Errorf("options changed through WriteYAML (-want +got):\n%s", diff)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
