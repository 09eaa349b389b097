// Package config provides configuration loading and access for the optimizer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/strike/field"
	"github.com/pthm-cable/strike/genome"
	"github.com/pthm-cable/strike/memetic"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run configuration parameters.
type Config struct {
	Field       FieldConfig       `yaml:"field"`
	GA          GAConfig          `yaml:"ga"`
	LocalSearch LocalSearchConfig `yaml:"local_search"`
	Objective   ObjectiveConfig   `yaml:"objective"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FieldConfig holds the target field and the strike point bounds.
// TargetsCSV, when set, replaces Targets. Relative paths resolve against the config file.
type FieldConfig struct {
	Bounds     genome.Bounds  `yaml:"bounds"`
	TargetsCSV string         `yaml:"targets_csv"`
	Targets    []field.Target `yaml:"targets"`
}

// GAConfig holds the population and operator parameters.
type GAConfig struct {
	PopulationSize int     `yaml:"population_size"`
	NumGenerations int     `yaml:"num_generations"`
	NumGenes       int     `yaml:"num_genes"`      // 2 * strike points
	ParentsMating  int     `yaml:"parents_mating"` // mating pool size
	EliteCount     int     `yaml:"elite_count"`
	MutationRate   float64 `yaml:"mutation_rate"` // per-gene reset probability
	Seed           *uint64 `yaml:"seed"`          // null = random
}

// LocalSearchConfig holds refiner parameters.
type LocalSearchConfig struct {
	Step float64 `yaml:"step"`
}

// ObjectiveConfig holds the separation penalty parameters.
type ObjectiveConfig struct {
	SeparationThreshold float64 `yaml:"separation_threshold"`
	SeparationPenalty   float64 `yaml:"separation_penalty"`
}

// TelemetryConfig holds bookmark detection parameters.
type TelemetryConfig struct {
	BookmarkWindow         int     `yaml:"bookmark_window"`
	BreakthroughMultiplier float64 `yaml:"breakthrough_multiplier"`
	PlateauGenerations     int     `yaml:"plateau_generations"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StrikePoints int    // GA.NumGenes / 2
	BaseDir      string // directory of the loaded config file ("" for defaults)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file.
		// A targets list replaces the default list wholesale.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		cfg.Derived.BaseDir = filepath.Dir(path)
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.StrikePoints = c.GA.NumGenes / 2
}

// RunOptions converts the config into optimizer options.
func (c *Config) RunOptions() memetic.Options {
	return memetic.Options{
		PopulationSize:         c.GA.PopulationSize,
		NumGenerations:         c.GA.NumGenerations,
		NumGenes:               c.GA.NumGenes,
		GeneBounds:             c.Field.Bounds,
		ParentsMating:          c.GA.ParentsMating,
		EliteCount:             c.GA.EliteCount,
		MutationRate:           c.GA.MutationRate,
		LocalSearchStep:        c.LocalSearch.Step,
		SeparationThreshold:    c.Objective.SeparationThreshold,
		SeparationPenaltyCoeff: c.Objective.SeparationPenalty,
		Seed:                   c.GA.Seed,
	}
}

// BuildField loads the configured targets, reading TargetsCSV when set.
func (c *Config) BuildField() (*field.Field, error) {
	targets := c.Field.Targets
	if c.Field.TargetsCSV != "" {
		path := c.Field.TargetsCSV
		if !filepath.IsAbs(path) && c.Derived.BaseDir != "" {
			path = filepath.Join(c.Derived.BaseDir, path)
		}
		loaded, err := field.LoadCSV(path)
		if err != nil {
			return nil, err
		}
		targets = loaded
	}
	return field.New(targets)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
