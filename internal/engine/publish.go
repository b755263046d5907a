package engine

import "github.com/san-kum/tokensort/internal/catalog"

// TokenFrame is one live token's display state. Positions are already
// clamped into the container so the renderer never has to defend against a
// body that is momentarily outside it.
type TokenFrame struct {
	ID       string
	Label    string
	Category catalog.Category
	X, Y     float64 // body center
	Rotation float64 // radians
	Dragging bool
}

type BucketFrame struct {
	Category catalog.Category
	Rect     struct{ X, Y, W, H float64 }
	Items    []catalog.Item
}

// Frame is a self-contained snapshot for one display frame. It shares no
// mutable state with the engine; the renderer may keep it across ticks.
type Frame struct {
	Tokens      []TokenFrame
	Buckets     []BucketFrame
	SortedCount int
	TotalCount  int
	ElapsedMs   int64
	BestMs      int64
	HasBest     bool
	IsNewBest   bool
	Done        bool
}

// Frame publishes the current session state for rendering. Each token's
// center is clamped so that, whatever the physics did this tick, its
// rotated extent cannot draw outside the container.
func (e *Engine) Frame() Frame {
	f := Frame{
		SortedCount: e.sorted,
		TotalCount:  len(e.slots),
		ElapsedMs:   e.timer.ElapsedMs(),
		BestMs:      e.bestMs,
		HasBest:     e.hasBest,
		IsNewBest:   e.isNewBest,
		Done:        e.done,
	}

	f.Tokens = make([]TokenFrame, 0, len(e.slots))
	for h, s := range e.slots {
		tok := s.tok
		if tok == nil || tok.Removed() {
			continue
		}
		pos := tok.Body.Position()
		clip := e.bounds.Inset(tok.HalfDiag)
		x, y := clip.ClampPoint(pos.X, pos.Y)
		f.Tokens = append(f.Tokens, TokenFrame{
			ID:       s.item.ID,
			Label:    s.item.Label,
			Category: s.item.Category,
			X:        x,
			Y:        y,
			Rotation: tok.Body.Angle(),
			Dragging: Handle(h) == e.dragged,
		})
	}

	f.Buckets = make([]BucketFrame, len(e.buckets))
	for i, b := range e.buckets {
		bf := BucketFrame{Category: b.Category}
		bf.Rect.X, bf.Rect.Y, bf.Rect.W, bf.Rect.H = b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H
		bf.Items = append([]catalog.Item(nil), b.Items...)
		f.Buckets[i] = bf
	}
	return f
}
