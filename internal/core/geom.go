// Package core provides fundamental types and utilities for the simulation.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vector2 is a mutable 2D point or offset.
// Arithmetic methods mutate the receiver and return it for chaining.
type Vector2 struct {
	X, Y float64
}

// Vec creates a new vector.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Copy returns an independent vector with the same coordinates.
func (v Vector2) Copy() Vector2 {
	return Vector2{X: v.X, Y: v.Y}
}

// Add adds (x, y) in place.
func (v *Vector2) Add(x, y float64) *Vector2 {
	v.X += x
	v.Y += y
	return v
}

// AddVec adds o in place.
func (v *Vector2) AddVec(o Vector2) *Vector2 {
	return v.Add(o.X, o.Y)
}

// Sub subtracts (x, y) in place.
func (v *Vector2) Sub(x, y float64) *Vector2 {
	v.X -= x
	v.Y -= y
	return v
}

// SubVec subtracts o in place.
func (v *Vector2) SubVec(o Vector2) *Vector2 {
	return v.Sub(o.X, o.Y)
}

// Mul multiplies each axis in place.
func (v *Vector2) Mul(x, y float64) *Vector2 {
	v.X *= x
	v.Y *= y
	return v
}

// MulVec multiplies component-wise by o in place.
func (v *Vector2) MulVec(o Vector2) *Vector2 {
	return v.Mul(o.X, o.Y)
}

// Scale multiplies both axes by s in place.
func (v *Vector2) Scale(s float64) *Vector2 {
	return v.Mul(s, s)
}

// Div divides each axis in place.
func (v *Vector2) Div(x, y float64) *Vector2 {
	v.X /= x
	v.Y /= y
	return v
}

// DivVec divides component-wise by o in place.
func (v *Vector2) DivVec(o Vector2) *Vector2 {
	return v.Div(o.X, o.Y)
}

// DivScalar divides both axes by s in place.
func (v *Vector2) DivScalar(s float64) *Vector2 {
	return v.Div(s, s)
}

// Clamp restricts each axis independently to [min, max].
func (v *Vector2) Clamp(min, max Vector2) *Vector2 {
	v.X = math.Max(min.X, math.Min(max.X, v.X))
	v.Y = math.Max(min.Y, math.Min(max.Y, v.Y))
	return v
}

// Rect is an axis-aligned size attached to a position it does not own.
// Pos usually points at the owning entity's position, so moving the entity
// moves the rect.
type Rect struct {
	W, H float64
	Pos  *Vector2
}

// NewRect creates a rect of the given size over pos.
// A nil pos gets a fresh zero position.
func NewRect(w, h float64, pos *Vector2) Rect {
	if pos == nil {
		pos = &Vector2{}
	}
	return Rect{W: w, H: h, Pos: pos}
}

// RectAt creates a rect with its own position at (x, y).
func RectAt(x, y, w, h float64) Rect {
	return NewRect(w, h, &Vector2{X: x, Y: y})
}

// Size returns the dimensions as a vector, for use in vector math.
func (r Rect) Size() Vector2 {
	return Vector2{X: r.W, Y: r.H}
}

// Set changes the dimensions.
func (r *Rect) Set(w, h float64) {
	r.W = w
	r.H = h
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Pos.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Pos.Y + r.H
}

// Intersects reports whether the two rects overlap.
// Edges are half-open: rects that only touch do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.Pos.X < other.Pos.X+other.W &&
		r.Pos.X+r.W > other.Pos.X &&
		r.Pos.Y < other.Pos.Y+other.H &&
		r.Pos.Y+r.H > other.Pos.Y
}

// Copy returns an independent rect; the position is copied, not shared.
func (r Rect) Copy() Rect {
	pos := r.Pos.Copy()
	return Rect{W: r.W, H: r.H, Pos: &pos}
}

// ScaledAboutCenter returns an independent rect scaled by f around the
// centre of r.
func (r Rect) ScaledAboutCenter(f float64) Rect {
	out := r.Copy()
	out.W = r.W * f
	out.H = r.H * f
	out.Pos.Add((r.W-out.W)/2, (r.H-out.H)/2)
	return out
}

// CellRect is an integer rectangle in terminal cell coordinates.
type CellRect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewCellRect creates a new cell rectangle with the given position and dimensions.
func NewCellRect(x, y, w, h int) CellRect {
	return CellRect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r CellRect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r CellRect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
