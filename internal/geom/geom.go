// Package geom provides the axis-aligned rectangle math shared by the
// world, the engine, and the terminal front end. It has no dependency on
// the physics library so layout code stays testable on its own.
package geom

import "math"

type Rect struct {
	X, Y float64
	W, H float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsTol is Contains with the rectangle grown by tol on every side.
func (r Rect) ContainsTol(x, y, tol float64) bool {
	return x >= r.X-tol && x < r.Right()+tol && y >= r.Y-tol && y < r.Bottom()+tol
}

// Inset shrinks the rectangle by d on every side. An inset larger than the
// half extent collapses that axis to a zero-size line at the center.
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
	if out.W < 0 {
		out.X, out.W = r.X+r.W/2, 0
	}
	if out.H < 0 {
		out.Y, out.H = r.Y+r.H/2, 0
	}
	return out
}

// ClampPoint returns the nearest point inside the rectangle.
func (r Rect) ClampPoint(x, y float64) (float64, float64) {
	return Clamp(x, r.X, r.Right()), Clamp(y, r.Y, r.Bottom())
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(math.Max(v, lo), hi)
}
