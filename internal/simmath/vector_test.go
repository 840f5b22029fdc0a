package simmath

import (
	"math"
	"testing"
)

func TestVector3Arithmetic(t *testing.T) {
	a := Vector3{X: 1, Y: 2, Z: 3}
	b := Vector3{X: 4, Y: -1, Z: 2}

	if got := a.Add(b); got != (Vector3{X: 5, Y: 1, Z: 5}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vector3{X: -3, Y: 3, Z: 1}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vector3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale = %+v", got)
	}
}

func TestVector3Magnitude(t *testing.T) {
	v := Vector3{X: 3, Y: 4, Z: 0}
	if got := v.Magnitude(); got != 5 {
		t.Errorf("Magnitude = %v, want 5", got)
	}
	if got := v.MagnitudeXY(); got != 5 {
		t.Errorf("MagnitudeXY = %v, want 5", got)
	}
}

func TestVector3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vector3
		want Vector3
	}{
		{"zero vector stays zero", Vector3{}, Vector3{}},
		{"unit along x", Vector3{X: 5}, Vector3{X: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 || math.Abs(got.Z-tt.want.Z) > 1e-9 {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVector3ClampMagnitude(t *testing.T) {
	v := Vector3{X: 10, Y: 0, Z: 0}
	clamped := v.ClampMagnitude(5)
	if clamped.Magnitude() != 5 {
		t.Errorf("ClampMagnitude over bound = %+v", clamped)
	}
	unclamped := Vector3{X: 1, Y: 0, Z: 0}.ClampMagnitude(5)
	if unclamped != (Vector3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("ClampMagnitude under bound changed vector: %+v", unclamped)
	}
}

func TestPosition3InBounds(t *testing.T) {
	tests := []struct {
		name string
		pos  Position3
		want bool
	}{
		{"origin", Position3{}, true},
		{"z above world", Position3{Z: 10000}, false},
		{"x beyond world", Position3{X: 2_000_000}, false},
		{"on boundary", Position3{X: WorldXMax, Y: WorldYMax, Z: WorldZMax}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.InBounds(); got != tt.want {
				t.Errorf("InBounds(%+v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestNewPosition3ClampsZ(t *testing.T) {
	p := NewPosition3(0, 0, 6000)
	if p.Z != WorldZMax {
		t.Errorf("Z = %v, want %v", p.Z, WorldZMax)
	}
	p = NewPosition3(0, 0, -10)
	if p.Z != WorldZMin {
		t.Errorf("Z = %v, want %v", p.Z, WorldZMin)
	}
}

func TestDistanceXYAnd3D(t *testing.T) {
	a := Position3{X: 0, Y: 0, Z: 0}
	b := Position3{X: 3, Y: 4, Z: 12}
	if got := a.DistanceXY(b); got != 5 {
		t.Errorf("DistanceXY = %v, want 5", got)
	}
	if got := a.Distance3(b); got != 13 {
		t.Errorf("Distance3 = %v, want 13", got)
	}
}

func TestNormalizeAngleDeg(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{181, -179},
		{-180, 180},
		{360, 0},
		{720 + 45, 45},
	}
	for _, tt := range tests {
		if got := NormalizeAngleDeg(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngleDeg(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngleDiffDeg(t *testing.T) {
	if got := AngleDiffDeg(170, -170); math.Abs(got-20) > 1e-9 {
		t.Errorf("AngleDiffDeg(170,-170) = %v, want 20", got)
	}
}

func TestAttitudeTurnTowardClampsRate(t *testing.T) {
	cur := Attitude{Yaw: 0}
	desired := Attitude{Yaw: 90}
	got := cur.TurnToward(desired, 10)
	if math.Abs(got.Yaw-10) > 1e-9 {
		t.Errorf("TurnToward clamped yaw = %v, want 10", got.Yaw)
	}
}
