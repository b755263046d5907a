// Package automation replays scripted sessions against the engine without a
// terminal. Scenarios drive the same pointer operations a player would, so
// a scripted run exercises the full drag, drop, and rescue machinery.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tokensort/internal/catalog"
	"github.com/san-kum/tokensort/internal/engine"
)

// Move is one scripted drag. An empty Item means "the next unsorted item".
// Outcome selects the drop target: correct (the item's own bucket), wrong
// (some other bucket), or floor (release over the play area).
type Move struct {
	Item      string `yaml:"item"`
	Outcome   string `yaml:"outcome"`
	HoldTicks int    `yaml:"hold_ticks"`
}

type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	SettleTicks int    `yaml:"settle_ticks"`
	Moves       []Move `yaml:"moves"`
}

// MoveResult records what one scripted move actually did.
type MoveResult struct {
	Item    string
	Outcome string
	Sorted  bool
}

type Report struct {
	Moves     []MoveResult
	ElapsedMs int64
	Sorted    int
	Total     int
	Done      bool
	NewBest   bool
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if len(s.Moves) == 0 {
		return nil, fmt.Errorf("scenario %q has no moves", s.Name)
	}
	return &s, nil
}

// DefaultScenario sorts every catalog item into its own bucket with a short
// hold per drag. The moves leave the item unspecified so each one grabs the
// next live token, whatever order the pile settles in.
func DefaultScenario(cat *catalog.Catalog) *Scenario {
	s := &Scenario{
		Name:        "sort-all",
		Description: "drag every item into its matching bucket",
		SettleTicks: 12,
	}
	for range cat.Items {
		s.Moves = append(s.Moves, Move{Outcome: "correct", HoldTicks: 8})
	}
	return s
}

// Run replays the scenario against a started engine. The engine is stepped
// between pointer operations exactly as the interactive loop would step it.
func Run(ctx context.Context, eng *engine.Engine, s *Scenario) (*Report, error) {
	report := &Report{Total: eng.TotalCount()}

	for i, mv := range s.Moves {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		frame := eng.Frame()
		tok := pickToken(frame, mv.Item)
		if tok == nil {
			report.Moves = append(report.Moves, MoveResult{Item: mv.Item, Outcome: "skipped"})
			continue
		}

		if !eng.PointerDown(tok.X, tok.Y) {
			return report, fmt.Errorf("move %d: failed to grab %q", i+1, tok.ID)
		}
		// Tokens overlap mid-pile, so the press can capture a neighbor of
		// the one aimed at; the drop target follows the captured item.
		grabbed, _ := eng.DraggedItem()

		tx, ty, err := dropPoint(eng, grabbed.Category, mv.Outcome)
		if err != nil {
			eng.PointerUp(tok.X, tok.Y)
			return report, fmt.Errorf("move %d: %w", i+1, err)
		}

		hold := mv.HoldTicks
		if hold <= 0 {
			hold = 1
		}
		eng.PointerMove(tx, ty)
		if err := stepN(ctx, eng, hold); err != nil {
			return report, err
		}

		before := eng.SortedCount()
		eng.PointerUp(tx, ty)
		report.Moves = append(report.Moves, MoveResult{
			Item:    grabbed.ID,
			Outcome: mv.Outcome,
			Sorted:  eng.SortedCount() > before,
		})

		if err := stepN(ctx, eng, s.SettleTicks); err != nil {
			return report, err
		}
	}

	f := eng.Frame()
	report.ElapsedMs = f.ElapsedMs
	report.Sorted = f.SortedCount
	report.Done = f.Done
	report.NewBest = f.IsNewBest
	return report, nil
}

func stepN(ctx context.Context, eng *engine.Engine, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		eng.Step()
	}
	return nil
}

// pickToken finds the named live token, or the first live token when the
// move leaves the item unspecified.
func pickToken(f engine.Frame, id string) *engine.TokenFrame {
	for i := range f.Tokens {
		if id == "" || f.Tokens[i].ID == id {
			return &f.Tokens[i]
		}
	}
	return nil
}

func dropPoint(eng *engine.Engine, cat catalog.Category, outcome string) (float64, float64, error) {
	buckets := eng.Buckets()
	switch outcome {
	case "", "correct":
		for _, b := range buckets {
			if b.Category == cat {
				x, y := b.Rect.Center()
				return x, y, nil
			}
		}
	case "wrong":
		for _, b := range buckets {
			if b.Category != cat {
				x, y := b.Rect.Center()
				return x, y, nil
			}
		}
	case "floor":
		for _, b := range buckets {
			x, _ := b.Rect.Center()
			return x, b.Rect.Y - 3, nil
		}
	}
	return 0, 0, fmt.Errorf("no drop target for outcome %q", outcome)
}
