package engine

import (
	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/tokensort/internal/world"
)

// rescueTick runs the two-tier out-of-bounds watchdog. A token counts as
// astray only while idle: dragging is always intentional and the grace
// window after a release suppresses false positives on fast throws. The
// soft tier steers the body back toward the playable region; the hard tier
// gives up on physics and teleports it to the region center. Either way
// the counter resets the moment the token is back inside.
func (e *Engine) rescueTick() {
	for _, s := range e.slots {
		tok := s.tok
		if tok == nil || tok.Removed() {
			continue
		}
		if tok.Phase != world.PhaseIdle {
			tok.OOB = 0
			continue
		}
		pos := tok.Body.Position()
		if e.region.ContainsTol(pos.X, pos.Y, e.tuning.OOBTolerance) {
			tok.OOB = 0
			continue
		}
		tok.OOB++

		switch {
		case tok.OOB > e.tuning.HardRescueTicks:
			e.hardRescue(tok)
		case tok.OOB > e.tuning.SoftRescueTicks:
			e.softRescue(tok, pos)
		}
	}
}

// softRescue overrides the body's velocity so it coasts straight back
// toward the nearest point of the playable region at a fixed speed.
func (e *Engine) softRescue(tok *world.Token, pos cp.Vector) {
	cx, cy := e.region.ClampPoint(pos.X, pos.Y)
	dir := cp.Vector{X: cx - pos.X, Y: cy - pos.Y}
	if dir.Length() == 0 {
		dir = cp.Vector{X: 0, Y: -1}
	}
	tok.Body.SetVelocityVector(dir.Normalize().Mult(e.tuning.RescueSpeed))
}

// hardRescue relocates a token the soft tier could not recover. The drop
// point is the region center with a little random drift so stacked rescues
// do not land a perfect pile.
func (e *Engine) hardRescue(tok *world.Token) {
	cx, cy := e.region.Center()
	jitter := e.tuning.ScatterJitter
	tok.Body.SetPosition(cp.Vector{
		X: cx + (e.rng.Float64()*2-1)*jitter,
		Y: cy + (e.rng.Float64()*2-1)*jitter,
	})
	tok.Body.SetVelocity((e.rng.Float64()*2-1)*e.tuning.RejectLateral, -e.tuning.SettleKick)
	tok.Body.SetAngularVelocity((e.rng.Float64()*2 - 1))
	tok.OOB = 0
}
