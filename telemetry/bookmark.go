package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstBlood      BookmarkType = "first_blood"
	BookmarkExhaustionSpike BookmarkType = "exhaustion_spike"
	BookmarkStalemate       BookmarkType = "stalemate"
	BookmarkWipe            BookmarkType = "wipe"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	sawKill      bool
	stallWindows int // consecutive windows with issued actions and none completed
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFirstBlood(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkExhaustionSpike(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkStalemate(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkWipe(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) last() (WindowStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return WindowStats{}, false
	}
	idx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[idx], true
}

func (bd *BookmarkDetector) checkFirstBlood(stats WindowStats) *Bookmark {
	if bd.sawKill || stats.Kills == 0 {
		return nil
	}
	bd.sawKill = true
	return &Bookmark{
		Type:        BookmarkFirstBlood,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("First kill after %.1fs", stats.SimTimeSec),
	}
}

// checkExhaustionSpike fires when stamina-outs exceed twice the rolling average.
func (bd *BookmarkDetector) checkExhaustionSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 2 || stats.StaminaOut < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.StaminaOut
	}
	avg := float64(total) / float64(len(history))

	if float64(stats.StaminaOut) <= avg*2.0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkExhaustionSpike,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d actions ran out of stamina (average %.1f)", stats.StaminaOut, avg),
	}
}

// checkStalemate fires once after three windows in a row where actions were
// issued but none completed.
func (bd *BookmarkDetector) checkStalemate(stats WindowStats) *Bookmark {
	if stats.Issued == 0 || stats.Completed > 0 {
		bd.stallWindows = 0
		return nil
	}
	bd.stallWindows++
	if bd.stallWindows != 3 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStalemate,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No action completed for %d windows", bd.stallWindows),
	}
}

func (bd *BookmarkDetector) checkWipe(stats WindowStats) *Bookmark {
	prev, ok := bd.last()
	if !ok || prev.Alive == 0 || stats.Alive > 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkWipe,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("All %d actors are dead", stats.Dead),
	}
}
