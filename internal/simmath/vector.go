// Package simmath provides the 3D vector and angle primitives shared by
// every simulated entity: positions, velocities, accelerations, and the
// world-bounds predicate the tick engine uses to detect entities that
// leave the world region.
package simmath

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// World bounds, in meters, shared by every out-of-bounds predicate.
const (
	WorldXMin = -1_000_000.0
	WorldXMax = 1_000_000.0
	WorldYMin = -1_000_000.0
	WorldYMax = 1_000_000.0
	WorldZMin = 0.0
	WorldZMax = 5000.0
)

// Vector3 is a plain 3D component triple. Position3, Velocity3 and
// Accel3 are all defined as this same shape; they exist as distinct
// names so a function signature documents which quantity it expects,
// even though the arithmetic is identical.
type Vector3 struct {
	X, Y, Z float64
}

// Position3, Velocity3 and Accel3 are aliases of Vector3 differentiated
// only for readability at call sites (a Position3 is never added to a
// Velocity3 without an explicit conversion through the dt-scaled term).
type (
	Position3 = Vector3
	Velocity3 = Vector3
	Accel3    = Vector3
)

// NewPosition3 constructs a position, clamping Z to the world's
// altitude band.
func NewPosition3(x, y, z float64) Position3 {
	return Position3{X: x, Y: y, Z: floats.Clamp(z, WorldZMin, WorldZMax)}
}

func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Cross returns the 3D cross product v × other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Dot returns the scalar (inner) product v · other.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// MagnitudeXY returns the magnitude of the vector's projection onto
// the XY plane (ignores Z).
func (v Vector3) MagnitudeXY() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the direction of v, or the zero
// vector when v itself is zero.
func (v Vector3) Normalize() Vector3 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector3{}
	}
	return v.Scale(1.0 / mag)
}

// ClampMagnitude scales v down so its magnitude does not exceed max;
// a vector already within bound is returned unchanged.
func (v Vector3) ClampMagnitude(max float64) Vector3 {
	mag := v.Magnitude()
	if mag <= max || mag == 0 {
		return v
	}
	return v.Scale(max / mag)
}

// DistanceXY returns the XY-plane distance between two positions.
func (v Vector3) DistanceXY(other Vector3) float64 {
	return v.Sub(other).MagnitudeXY()
}

// Distance3 returns the full 3D distance between two positions.
func (v Vector3) Distance3(other Vector3) float64 {
	return v.Sub(other).Magnitude()
}

// InBounds reports whether v lies within the simulation's world
// region on every axis.
func (v Vector3) InBounds() bool {
	return v.X >= WorldXMin && v.X <= WorldXMax &&
		v.Y >= WorldYMin && v.Y <= WorldYMax &&
		v.Z >= WorldZMin && v.Z <= WorldZMax
}

// ClampZ returns v with Z clamped into the world's altitude band.
func (v Vector3) ClampZ() Vector3 {
	return Vector3{X: v.X, Y: v.Y, Z: floats.Clamp(v.Z, WorldZMin, WorldZMax)}
}
