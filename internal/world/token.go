package world

import (
	"math"

	"github.com/jakecoffman/cp/v2"
)

// Phase is the per-token interaction state. Idle tokens are watched by the
// rescue monitor; Dragging and Grace tokens are left alone.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseGrace
)

// Token is the live physical representation of one in-play item. The
// interaction phase, grace countdown, and out-of-bounds counter live on the
// same record as the body so the invariants stay in one place.
type Token struct {
	ID    string
	Body  *cp.Body
	Shape *cp.Shape

	HalfW, HalfH float64
	// HalfDiag bounds the token at any rotation; the render sync clamp
	// uses it so a rotated token is never clipped by the container edge.
	HalfDiag float64

	Phase      Phase
	GraceTicks int
	OOB        int

	mode    Mode
	removed bool
}

func newToken(id string, body *cp.Body, shape *cp.Shape, w, h float64) *Token {
	t := &Token{
		ID:       id,
		Body:     body,
		Shape:    shape,
		HalfW:    w / 2,
		HalfH:    h / 2,
		HalfDiag: math.Hypot(w/2, h/2),
		mode:     ModeRespectsBounds,
	}
	body.UserData = t
	shape.UserData = t
	return t
}

func (t *Token) Removed() bool { return t.removed }

func (t *Token) Mode() Mode { return t.mode }

// SetMode switches the collision category. The switch is immediate: it must
// be fully applied before the next space step so a freshly grabbed token
// never collides with a boundary it should be ignoring.
func (t *Token) SetMode(m Mode) {
	if t.removed || t.mode == m {
		return
	}
	t.mode = m
	t.Shape.SetFilter(filterForMode(m))
}

// Bottom is the y coordinate of the token's lower edge (y grows downward).
func (t *Token) Bottom() float64 {
	return t.Body.Position().Y + t.HalfH
}
