package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/strike/config"
	"github.com/pthm-cable/strike/genome"
	"github.com/pthm-cable/strike/memetic"
)

// HistoryRecord is one history.csv row.
type HistoryRecord struct {
	Generation  int     `csv:"generation"`
	BestFitness float64 `csv:"best_fitness"`
	Refined     bool    `csv:"refined"`
	BestGenome  string  `csv:"best_genome"`
}

// PointRecord is one population.csv row: a single strike point of one individual.
type PointRecord struct {
	Slot    int     `csv:"slot"`
	Point   int     `csv:"point"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Fitness float64 `csv:"fitness"`
}

// HistoryRecords flattens a run history into CSV rows.
func HistoryRecords(h memetic.RunHistory) []HistoryRecord {
	records := make([]HistoryRecord, len(h))
	for i, e := range h {
		records[i] = HistoryRecord{
			Generation:  e.Generation,
			BestFitness: e.BestFitness,
			Refined:     e.Refined,
			BestGenome:  FormatGenome(e.BestGenome),
		}
	}
	return records
}

// PointRecords flattens a population into one row per strike point.
func PointRecords(pop memetic.Population) []PointRecord {
	var records []PointRecord
	for slot := range pop {
		fitness, _ := pop[slot].Fitness()
		for k, p := range genome.Decode(pop[slot].Genome()) {
			records = append(records, PointRecord{Slot: slot, Point: k, X: p.X, Y: p.Y, Fitness: fitness})
		}
	}
	return records
}

// FormatGenome renders genes space-separated.
func FormatGenome(g genome.Genome) string {
	parts := make([]string, len(g))
	for i, v := range g {
		parts[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return strings.Join(parts, " ")
}

// OutputManager writes run artifacts into a single directory.
type OutputManager struct {
	dir string
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputManager{dir: dir}, nil
}

// WriteConfig saves the configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteHistory writes history.csv.
func (om *OutputManager) WriteHistory(h memetic.RunHistory) error {
	if om == nil {
		return nil
	}
	return om.writeCSV("history.csv", HistoryRecords(h))
}

// WritePopulation writes population.csv.
func (om *OutputManager) WritePopulation(pop memetic.Population) error {
	if om == nil {
		return nil
	}
	return om.writeCSV("population.csv", PointRecords(pop))
}

// WriteBookmarks writes bookmarks.csv.
func (om *OutputManager) WriteBookmarks(bookmarks []Bookmark) error {
	if om == nil {
		return nil
	}
	if bookmarks == nil {
		bookmarks = []Bookmark{}
	}
	return om.writeCSV("bookmarks.csv", bookmarks)
}

// WriteSummary saves the run summary as JSON.
func (om *OutputManager) WriteSummary(s Summary) error {
	if om == nil {
		return nil
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "summary.json"), data, 0644); err != nil {
		return fmt.Errorf("writing summary.json: %w", err)
	}
	return nil
}

func (om *OutputManager) writeCSV(name string, records any) error {
	f, err := os.Create(filepath.Join(om.dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := gocsv.MarshalFile(records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}
