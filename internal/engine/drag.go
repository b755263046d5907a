package engine

import (
	"math"

	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/tokensort/internal/geom"
	"github.com/san-kum/tokensort/internal/world"
)

// PointerDown tries to capture the token under the pointer. Drag is
// exclusive: while one token is captured every other press is rejected.
// On capture the token switches to the boundary-ignoring collision
// category and its out-of-bounds counter resets.
func (e *Engine) PointerDown(x, y float64) bool {
	if e.world == nil || e.dragged != NoHandle {
		return false
	}

	p := cp.Vector{X: x, Y: y}
	info := e.world.Space.PointQueryNearest(p, e.tuning.GrabRadius, world.GrabFilter)
	if info == nil || info.Shape == nil {
		return false
	}
	tok, ok := info.Shape.UserData.(*world.Token)
	if !ok || tok.Removed() {
		return false
	}
	handle, ok := e.byItem[tok.ID]
	if !ok {
		return false
	}

	tok.Phase = world.PhaseDragging
	tok.GraceTicks = 0
	tok.OOB = 0
	tok.SetMode(world.ModeIgnoresBounds)

	grabPoint := info.Point
	if info.Distance <= 0 {
		grabPoint = p
	}
	e.mouseBody.SetPosition(p)
	e.mouseBody.SetVelocity(0, 0)
	e.dragTarget = p

	joint := cp.NewPivotJoint2(e.mouseBody, tok.Body, cp.Vector{}, tok.Body.WorldToLocal(grabPoint))
	joint.SetMaxForce(e.tuning.DragMaxForce)
	joint.SetErrorBias(math.Pow(1.0-e.tuning.DragErrorBias, float64(e.tuning.TickRate)))
	e.dragJoint = e.world.Space.AddConstraint(joint)
	e.dragged = handle
	return true
}

// PointerMove records the pointer target. The actual pull happens on the
// next tick through the elastic joint, preserving physical feel instead of
// teleporting the body.
func (e *Engine) PointerMove(x, y float64) {
	if e.dragged == NoHandle {
		return
	}
	e.dragTarget = cp.Vector{X: x, Y: y}
}

// stepMouse advances the kinematic pointer body toward the latest target
// with smoothing, so the joint sees a continuous velocity.
func (e *Engine) stepMouse() {
	if e.dragged == NoHandle {
		return
	}
	newPoint := e.mouseBody.Position().Lerp(e.dragTarget, e.tuning.DragSmoothing)
	e.mouseBody.SetVelocityVector(newPoint.Sub(e.mouseBody.Position()).Mult(float64(e.tuning.TickRate)))
	e.mouseBody.SetPosition(newPoint)
}

// PointerUp releases the captured token and decides the outcome by testing
// the release pointer position - deliberately the pointer, not the body
// center - against the bucket row in category order.
func (e *Engine) PointerUp(x, y float64) {
	if e.dragged == NoHandle {
		return
	}
	handle := e.dragged
	s := e.slots[handle]
	tok := s.tok
	e.dragged = NoHandle

	if e.dragJoint != nil {
		e.world.Space.RemoveConstraint(e.dragJoint)
		e.dragJoint = nil
	}
	if tok == nil || tok.Removed() {
		e.applyDeferredLayout()
		return
	}
	tok.SetMode(world.ModeRespectsBounds)

	if bucket := e.hitBucket(x, y); bucket != nil {
		if bucket.Category == s.item.Category {
			e.sortInto(handle, bucket)
			e.applyDeferredLayout()
			e.maybeFinish()
			return
		}
		e.rejectDrop(tok, x)
	} else if tok.Bottom() > e.floorY {
		// Released below the floor line with no bucket under the pointer:
		// lift back up with a moderate kick.
		pos := tok.Body.Position()
		tok.Body.SetPosition(cp.Vector{X: pos.X, Y: e.floorY - tok.HalfH})
		tok.Body.SetVelocity(tok.Body.Velocity().X, -e.tuning.LiftKick)
	}
	// Otherwise the token keeps the velocity the pointer gave it.

	tok.Phase = world.PhaseGrace
	tok.GraceTicks = e.tuning.GraceTicks
	tok.OOB = 0
	if tok.GraceTicks <= 0 {
		tok.Phase = world.PhaseIdle
	}
	e.applyDeferredLayout()
}

// hitBucket returns the first bucket whose rectangle contains the release
// point, in category order. First match wins even if rectangles overlap.
func (e *Engine) hitBucket(x, y float64) *Bucket {
	for _, b := range e.buckets {
		if b.Rect.Contains(x, y) {
			return b
		}
	}
	return nil
}

// sortInto is terminal for the item: the body leaves the simulation and
// the item joins the bucket permanently.
func (e *Engine) sortInto(h Handle, bucket *Bucket) {
	s := e.slots[h]
	e.world.Remove(s.tok)
	s.tok = nil
	bucket.Items = append(bucket.Items, s.item)
	e.sorted++
}

// rejectDrop is the wrong-bucket outcome: the token reappears just above
// the floor at a clamped horizontal position and gets a strong
// upward-and-lateral bounce.
func (e *Engine) rejectDrop(tok *world.Token, x float64) {
	cx := geom.Clamp(x, e.region.X+tok.HalfW, e.region.Right()-tok.HalfW)
	tok.Body.SetPosition(cp.Vector{X: cx, Y: e.floorY - tok.HalfH - 1})

	lateral := e.tuning.RejectLateral
	if e.rng.Float64() < 0.5 {
		lateral = -lateral
	}
	tok.Body.SetVelocity(lateral, -e.tuning.RejectBounce)
	tok.Body.SetAngularVelocity((e.rng.Float64()*2 - 1) * 3)
}

func (e *Engine) applyDeferredLayout() {
	if e.deferred == nil {
		return
	}
	l := e.deferred
	e.deferred = nil
	e.applyLayout(l.bounds, l.buckets)
}

// Dragging reports the handle of the captured token, or NoHandle.
func (e *Engine) Dragging() Handle { return e.dragged }
