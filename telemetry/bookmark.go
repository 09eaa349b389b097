package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/strike/config"
	"github.com/pthm-cable/strike/memetic"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkBreakthrough BookmarkType = "breakthrough"
	BookmarkPlateau      BookmarkType = "plateau"
)

// Bookmark marks a notable generation in a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Fitness     float64      `csv:"fitness"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"fitness", b.Fitness,
		"description", b.Description,
	)
}

// BookmarkDetector scans a run history for breakthroughs and plateaus.
type BookmarkDetector struct {
	// Rolling improvement history (circular buffer)
	history     []float64
	historySize int
	historyIdx  int
	historyFull bool

	multiplier     float64
	plateauLength  int
	lastBest       float64
	seen           bool
	sinceImproved  int
	plateauFlagged bool
}

// NewBookmarkDetector creates a detector from telemetry settings.
func NewBookmarkDetector(cfg config.TelemetryConfig) *BookmarkDetector {
	size := cfg.BookmarkWindow
	if size < 3 {
		size = 3 // minimum for a meaningful rolling mean
	}
	return &BookmarkDetector{
		history:       make([]float64, size),
		historySize:   size,
		multiplier:    cfg.BreakthroughMultiplier,
		plateauLength: cfg.PlateauGenerations,
	}
}

// Check analyzes the next history entry and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(e memetic.HistoryEntry) []Bookmark {
	if !bd.seen {
		bd.seen = true
		bd.lastBest = e.BestFitness
		return nil
	}

	var bookmarks []Bookmark
	gain := e.BestFitness - bd.lastBest

	if b := bd.checkBreakthrough(e, gain); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPlateau(e, gain); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(gain)
	bd.lastBest = e.BestFitness
	return bookmarks
}

// Scan runs the detector over a whole history.
func (bd *BookmarkDetector) Scan(h memetic.RunHistory) []Bookmark {
	var all []Bookmark
	for _, e := range h {
		all = append(all, bd.Check(e)...)
	}
	return all
}

func (bd *BookmarkDetector) addToHistory(gain float64) {
	bd.history[bd.historyIdx] = gain
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []float64 {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkBreakthrough(e memetic.HistoryEntry, gain float64) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || gain <= 0 {
		return nil
	}

	var total float64
	for _, g := range history {
		total += g
	}
	avg := total / float64(len(history))

	if avg > 0 && gain > avg*bd.multiplier {
		return &Bookmark{
			Type:        BookmarkBreakthrough,
			Generation:  e.Generation,
			Fitness:     e.BestFitness,
			Description: fmt.Sprintf("Gain %.3f is %.1fx rolling average (%.3f)", gain, gain/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPlateau(e memetic.HistoryEntry, gain float64) *Bookmark {
	if gain > 0 {
		bd.sinceImproved = 0
		bd.plateauFlagged = false
		return nil
	}

	bd.sinceImproved++
	if bd.plateauLength <= 0 || bd.plateauFlagged || bd.sinceImproved < bd.plateauLength {
		return nil
	}

	bd.plateauFlagged = true
	return &Bookmark{
		Type:        BookmarkPlateau,
		Generation:  e.Generation,
		Fitness:     e.BestFitness,
		Description: fmt.Sprintf("No improvement for %d generations", bd.sinceImproved),
	}
}
