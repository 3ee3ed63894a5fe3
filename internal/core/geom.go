// Package core provides fundamental types and utilities shared by the
// progression engine and its collaborators. It contains no external
// dependencies so game logic stays pure and testable.
package core

import "math"

// Vec is a 2D position or velocity in layout units.
type Vec struct {
	X, Y float64
}

// V creates a new vector.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns the component-wise sum of two vectors.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns the vector multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Finite reports whether both components are finite numbers.
func (v Vec) Finite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// Bounds is an axis-aligned area in layout units.
type Bounds struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewBounds creates bounds covering a w x h grid anchored at the origin.
func NewBounds(w, h int) Bounds {
	return Bounds{W: float64(w), H: float64(h)}
}

// Contains returns true if the point lies inside the bounds.
// The right and bottom edges are exclusive.
func (b Bounds) Contains(p Vec) bool {
	return p.X >= b.X && p.X < b.X+b.W && p.Y >= b.Y && p.Y < b.Y+b.H
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

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
