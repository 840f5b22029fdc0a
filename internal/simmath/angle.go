package simmath

import "math"

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// NormalizeAngleDeg reduces an angle in degrees to the half-open range
// (-180, 180].
func NormalizeAngleDeg(deg float64) float64 {
	a := math.Mod(deg, 360.0)
	if a <= -180.0 {
		a += 360.0
	} else if a > 180.0 {
		a -= 360.0
	}
	return a
}

// AngleDiffDeg returns the signed shortest angular distance from a to
// b, in (-180, 180].
func AngleDiffDeg(a, b float64) float64 {
	return NormalizeAngleDeg(b - a)
}

// Attitude is a yaw/pitch/roll triple in degrees, used only for the
// observable attitude of a missile; it does not feed back into the
// velocity/position integration.
type Attitude struct {
	Yaw, Pitch, Roll float64
}

// AttitudeFromVelocity derives the desired attitude implied by a
// velocity vector: pitch from the vertical rate vs. horizontal speed,
// yaw from the horizontal heading, and zero roll.
func AttitudeFromVelocity(v Velocity3) Attitude {
	return Attitude{
		Yaw:   RadToDeg(math.Atan2(v.Y, v.X)),
		Pitch: RadToDeg(math.Atan2(v.Z, v.MagnitudeXY())),
		Roll:  0,
	}
}

// TurnToward moves current toward desired by at most maxDeltaDeg on
// each axis (independently), using the signed shortest-path
// difference per axis.
func (a Attitude) TurnToward(desired Attitude, maxDeltaDeg float64) Attitude {
	step := func(cur, want float64) float64 {
		diff := AngleDiffDeg(cur, want)
		if diff > maxDeltaDeg {
			diff = maxDeltaDeg
		} else if diff < -maxDeltaDeg {
			diff = -maxDeltaDeg
		}
		return NormalizeAngleDeg(cur + diff)
	}
	return Attitude{
		Yaw:   step(a.Yaw, desired.Yaw),
		Pitch: step(a.Pitch, desired.Pitch),
		Roll:  step(a.Roll, desired.Roll),
	}
}
