package kinematic

// This package includes vector math for the ground plane (x, z).

import (
	"math"
)

// Vector is a point or direction on the ground plane.
type Vector struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Add returns the sum of two vectors.
func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Z: v.Z + other.Z}
}

// Sub returns the difference of two vectors.
func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Z: v.Z - other.Z}
}

// Scale returns the vector scaled by a factor.
func (v Vector) Scale(factor float64) Vector {
	return Vector{X: v.X * factor, Z: v.Z * factor}
}

// Length returns the length of the vector.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalized returns a unit vector in the same direction,
// or the zero vector if the length is zero.
func (v Vector) Normalized() Vector {
	length := v.Length()
	if length == 0 {
		return Vector{}
	}
	return Vector{X: v.X / length, Z: v.Z / length}
}

// Distance returns the Euclidean distance between two points.
func Distance(a Vector, b Vector) float64 {
	return math.Hypot(b.X-a.X, b.Z-a.Z)
}

// Heading returns the rotation facing from one point toward another,
// measured from the +Z axis toward the +X axis.
func Heading(from Vector, to Vector) float64 {
	return math.Atan2(to.X-from.X, to.Z-from.Z)
}
