package world

import (
	"math"

	"github.com/jakecoffman/cp/v2"
)

// Mode is a token's collision category. Boundary-respecting tokens collide
// with other tokens and the static boundaries; boundary-ignoring tokens
// (used only while dragged) still collide with other tokens but pass
// through walls and floor so the pointer can pull them anywhere.
type Mode int

const (
	ModeRespectsBounds Mode = iota
	ModeIgnoresBounds
)

const (
	catToken    uint = 1 << 0
	catBoundary uint = 1 << 1
)

const (
	ctToken cp.CollisionType = iota + 1
	ctFloor
)

var (
	filterRespects = cp.NewShapeFilter(cp.NO_GROUP, catToken, catToken|catBoundary)
	filterIgnores  = cp.NewShapeFilter(cp.NO_GROUP, catToken, catToken)
	filterBoundary = cp.NewShapeFilter(cp.NO_GROUP, catBoundary, catToken)

	// GrabFilter matches token shapes only, never boundaries.
	GrabFilter = cp.NewShapeFilter(cp.NO_GROUP, catToken, catToken)
)

func filterForMode(m Mode) cp.ShapeFilter {
	if m == ModeIgnoresBounds {
		return filterIgnores
	}
	return filterRespects
}

// installFloorHandler registers the minimum-rebound rule: a token reaching
// the floor with too little speed is corrected up to the rebound threshold,
// so contacts stay visibly lively instead of going dead.
func (w *World) installFloorHandler() {
	handler := w.Space.NewCollisionHandler(ctFloor, ctToken)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		_, body := arb.Bodies()
		v := body.Velocity()
		if math.Abs(v.Y) < w.tuning.MinRebound {
			body.SetVelocity(v.X, -w.tuning.MinRebound)
		}
		return true
	}
}

// settle applies the at-rest rule once per tick: a near-stationary token
// sitting at or through the floor line is lifted onto the floor and given a
// small upward kick so nothing visibly sinks.
func (w *World) settle() {
	const slop = 0.5
	for _, t := range w.tokens {
		if t.Phase == PhaseDragging {
			continue
		}
		v := t.Body.Velocity()
		if v.Length() >= w.tuning.SettleSpeed {
			continue
		}
		if t.Bottom() < w.floorY-slop {
			continue
		}
		pos := t.Body.Position()
		t.Body.SetPosition(cp.Vector{X: pos.X, Y: w.floorY - t.HalfH})
		t.Body.SetVelocity(v.X, -w.tuning.SettleKick)
	}
}
