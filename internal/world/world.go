// Package world owns the authoritative rigid-body state: a chipmunk space
// with gravity, static boundary geometry, and one dynamic box per in-play
// token. Y grows downward, matching screen coordinates, so gravity is
// positive and "below the floor" means y beyond the floor line.
package world

import (
	"math/rand"

	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/tokensort/internal/config"
	"github.com/san-kum/tokensort/internal/geom"
)

const segmentRadius = 0.1

type World struct {
	Space *cp.Space

	tuning *config.Tuning
	bounds geom.Rect
	floorY float64

	statics []*cp.Shape
	tokens  []*Token
	rng     *rand.Rand
}

// New builds the space and its boundary geometry. floorY is where the floor
// segment sits, just above the bucket row; the walls and ceiling follow the
// container bounds.
func New(tuning *config.Tuning, bounds geom.Rect, floorY float64, rng *rand.Rand) *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: 0, Y: tuning.Gravity})
	space.SetDamping(tuning.Damping)

	w := &World{
		Space:  space,
		tuning: tuning,
		rng:    rng,
	}
	w.installFloorHandler()
	w.rebuildStatics(bounds, floorY)
	return w
}

func (w *World) Bounds() geom.Rect { return w.bounds }
func (w *World) FloorY() float64   { return w.floorY }

func (w *World) rebuildStatics(bounds geom.Rect, floorY float64) {
	for _, s := range w.statics {
		w.Space.RemoveShape(s)
	}
	w.statics = w.statics[:0]
	w.bounds = bounds
	w.floorY = floorY

	segs := []struct {
		a, b  cp.Vector
		floor bool
	}{
		{cp.Vector{X: bounds.X, Y: floorY}, cp.Vector{X: bounds.Right(), Y: floorY}, true},
		{cp.Vector{X: bounds.X, Y: bounds.Y}, cp.Vector{X: bounds.X, Y: bounds.Bottom()}, false},
		{cp.Vector{X: bounds.Right(), Y: bounds.Y}, cp.Vector{X: bounds.Right(), Y: bounds.Bottom()}, false},
		{cp.Vector{X: bounds.X, Y: bounds.Y}, cp.Vector{X: bounds.Right(), Y: bounds.Y}, false},
	}
	for _, seg := range segs {
		shape := w.Space.AddShape(cp.NewSegment(w.Space.StaticBody, seg.a, seg.b, segmentRadius))
		shape.SetElasticity(w.tuning.Restitution)
		shape.SetFriction(w.tuning.Friction)
		shape.SetFilter(filterBoundary)
		if seg.floor {
			shape.SetCollisionType(ctFloor)
		}
		w.statics = append(w.statics, shape)
	}
}

// SetBounds rebuilds the boundary geometry after a container resize and
// lifts any token left resting below the new floor line.
func (w *World) SetBounds(bounds geom.Rect, floorY float64) {
	w.rebuildStatics(bounds, floorY)
	for _, t := range w.tokens {
		if t.Phase != PhaseDragging && t.Bottom() > w.floorY {
			pos := t.Body.Position()
			t.Body.SetPosition(cp.Vector{X: pos.X, Y: w.floorY - t.HalfH})
			t.Body.SetVelocity(t.Body.Velocity().X, -w.tuning.SettleKick)
		}
	}
}

// Spawn creates a token body sized from the item's rendered footprint and
// adds it to the space in the default boundary-respecting category.
func (w *World) Spawn(id string, width, height float64, pos cp.Vector) *Token {
	mass := 1.0
	body := w.Space.AddBody(cp.NewBody(mass, cp.MomentForBox(mass, width, height)))
	body.SetPosition(pos)

	shape := w.Space.AddShape(cp.NewBox(body, width, height, 0))
	shape.SetElasticity(w.tuning.Restitution)
	shape.SetFriction(w.tuning.Friction)
	shape.SetCollisionType(ctToken)
	shape.SetFilter(filterRespects)

	t := newToken(id, body, shape, width, height)
	w.tokens = append(w.tokens, t)
	return t
}

// Scatter jitters freshly spawned tokens apart and gives each an
// upward-biased shove so they separate instead of stacking.
func (w *World) Scatter(tokens []*Token) {
	j := w.tuning.ScatterJitter
	imp := w.tuning.ScatterImpulse
	for _, t := range tokens {
		if t.removed {
			continue
		}
		pos := t.Body.Position()
		x, y := w.bounds.Inset(w.tuning.EdgeGuard).ClampPoint(
			pos.X+(w.rng.Float64()*2-1)*j,
			pos.Y+(w.rng.Float64()*2-1)*j,
		)
		t.Body.SetPosition(cp.Vector{X: x, Y: y})
		t.Body.SetVelocity(
			(w.rng.Float64()*2-1)*imp,
			-(0.5+w.rng.Float64()*0.5)*imp,
		)
		t.Body.SetAngularVelocity((w.rng.Float64()*2 - 1) * 2)
	}
}

// Remove permanently deletes a token from the space. Removing an already
// removed token is a no-op.
func (w *World) Remove(t *Token) {
	if t == nil || t.removed {
		return
	}
	w.Space.RemoveShape(t.Shape)
	w.Space.RemoveBody(t.Body)
	t.removed = true
	for i, cur := range w.tokens {
		if cur == t {
			w.tokens = append(w.tokens[:i], w.tokens[i+1:]...)
			break
		}
	}
}

// Step advances the simulation one tick under the configured time scale and
// then applies the at-rest settle rule. The caller is the single stepping
// authority; the world never schedules itself.
func (w *World) Step() {
	w.Space.Step(w.tuning.Dt() * w.tuning.TimeScale)
	w.settle()
}

// Tokens returns the live token list. The slice is reused between calls;
// callers must not retain it across Remove.
func (w *World) Tokens() []*Token { return w.tokens }

func (w *World) LiveCount() int { return len(w.tokens) }
