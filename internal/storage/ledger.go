// Package storage persists the best completion time and the run history
// under a data directory. Persistence here is strictly best-effort: a
// missing or unreadable file means "no best time yet", and failed writes
// are dropped silently so the session is never interrupted.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	bestFile    = "best.json"
	historyFile = "history.json"
)

type Ledger struct {
	baseDir string
	now     func() time.Time
}

type bestRecord struct {
	BestMs    int64     `json:"best_ms"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CompletionRecord struct {
	Timestamp time.Time `json:"timestamp"`
	ElapsedMs int64     `json:"elapsed_ms"`
	NewBest   bool      `json:"new_best"`
}

func New(baseDir string) *Ledger {
	return &Ledger{baseDir: baseDir, now: time.Now}
}

func (l *Ledger) Init() error {
	return os.MkdirAll(l.baseDir, 0755)
}

// Best returns the persisted best completion time in milliseconds. The
// second return is false when no valid best exists, which is a normal
// initial state rather than an error.
func (l *Ledger) Best() (int64, bool) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, bestFile))
	if err != nil {
		return 0, false
	}
	var rec bestRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, false
	}
	if rec.BestMs <= 0 {
		return 0, false
	}
	return rec.BestMs, true
}

// RecordCompletion reports whether elapsed is a new personal best and, if
// so, overwrites the stored value. Every completion is appended to the
// history regardless. Write failures are swallowed.
func (l *Ledger) RecordCompletion(elapsedMs int64) bool {
	prev, ok := l.Best()
	isNew := !ok || elapsedMs < prev

	if isNew {
		rec := bestRecord{BestMs: elapsedMs, UpdatedAt: l.now()}
		if data, err := json.MarshalIndent(rec, "", "  "); err == nil {
			_ = os.WriteFile(filepath.Join(l.baseDir, bestFile), data, 0644)
		}
	}

	history := l.History()
	history = append(history, CompletionRecord{
		Timestamp: l.now(),
		ElapsedMs: elapsedMs,
		NewBest:   isNew,
	})
	if data, err := json.MarshalIndent(history, "", "  "); err == nil {
		_ = os.WriteFile(filepath.Join(l.baseDir, historyFile), data, 0644)
	}

	return isNew
}

// History returns all recorded completions, oldest first. Missing or
// corrupt history reads as empty.
func (l *Ledger) History() []CompletionRecord {
	data, err := os.ReadFile(filepath.Join(l.baseDir, historyFile))
	if err != nil {
		return nil
	}
	var records []CompletionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}
