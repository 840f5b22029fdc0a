package simulation

import (
	"math"
	"testing"

	"github.com/picogrid/defsim/internal/simmath"
)

func TestMissileStartsInBoostPhase(t *testing.T) {
	m := NewMissile("L001_M001", "G001_T001", simmath.NewPosition3(0, 0, 0), testParams())
	if m.GuidancePhase != PhaseBoost {
		t.Fatalf("expected new missile to start in Boost, got %v", m.GuidancePhase)
	}
	if m.Velocity.Z != testParams().InitialSpeed {
		t.Fatalf("expected initial vertical velocity = initial_speed, got %v", m.Velocity.Z)
	}
}

func TestMissileTransitionsBoostToMidcourse(t *testing.T) {
	m := NewMissile("L001_M001", "G001_T001", simmath.NewPosition3(0, 0, 0), testParams())
	target := simmath.NewPosition3(0, 0, 50000)

	for i := 0; i < 30 && m.GuidancePhase == PhaseBoost; i++ {
		m.Tick(0.1, target)
	}

	if m.GuidancePhase == PhaseBoost {
		t.Fatalf("expected missile to leave Boost after 2s of flight time")
	}
}

func TestMissileHitsStationaryTargetWithinInterceptRadius(t *testing.T) {
	params := testParams()
	m := NewMissile("L001_M001", "G001_T001", simmath.NewPosition3(0, 0, 0), params)
	target := simmath.NewPosition3(0, 0, params.InterceptRadius/2)

	hit := false
	for i := 0; i < 5 && !hit; i++ {
		hit = m.Tick(0.1, target)
	}

	if !hit {
		t.Fatalf("expected a hit against a target already within intercept radius")
	}
	if m.Status != MissileDestroyed || m.EndReason != EndHit {
		t.Fatalf("expected Destroyed/Hit after a hit, got status=%v reason=%v", m.Status, m.EndReason)
	}
}

func TestMissileOutOfBoundsSelfDestructs(t *testing.T) {
	m := NewMissile("L001_M001", "G001_T001", simmath.NewPosition3(simmath.WorldXMax-1, 0, 2000), testParams())
	m.Velocity = simmath.Velocity3{X: 2000, Y: 0, Z: 0}

	m.Tick(1.0, simmath.NewPosition3(1000000, 0, 2000))

	if m.Status != MissileSelfDestructed || m.EndReason != EndOutOfBounds {
		t.Fatalf("expected SelfDestructed/OutOfBounds leaving world bounds, got status=%v reason=%v", m.Status, m.EndReason)
	}
}

func TestMissileTickNoOpOnceTerminated(t *testing.T) {
	m := NewMissile("L001_M001", "G001_T001", simmath.NewPosition3(0, 0, 0), testParams())
	m.TerminateTargetLost()

	pos := m.Position
	hit := m.Tick(1.0, simmath.NewPosition3(0, 0, 100))

	if hit {
		t.Fatalf("expected no hit from a terminated missile")
	}
	if m.Position != pos {
		t.Fatalf("expected a terminated missile's position to be frozen")
	}
}

func TestMissileCollisionPrioritizedOverSelfDestructSameTick(t *testing.T) {
	params := testParams()
	params.EndgameMissIncreaseTicks = 1
	m := NewMissile("L001_M001", "G001_T001", simmath.NewPosition3(0, 0, 0), params)
	m.GuidancePhase = PhaseEndgame
	m.MissHistory = []float64{1, 2}
	m.MissIncreaseCnt = 1

	target := simmath.NewPosition3(0, 0, params.InterceptRadius/2)
	hit := m.Tick(0.0001, target)

	if !hit || m.EndReason != EndHit {
		t.Fatalf("expected collision to win over a same-tick self-destruct trip, got hit=%v reason=%v", hit, m.EndReason)
	}
}

func TestMissileHasNonFiniteStateGuard(t *testing.T) {
	m := NewMissile("L001_M001", "G001_T001", simmath.NewPosition3(0, 0, 0), testParams())
	if m.HasNonFiniteState() {
		t.Fatalf("expected a freshly built missile to be finite")
	}

	m.Velocity.X = math.Inf(1)
	if !m.HasNonFiniteState() {
		t.Fatalf("expected an Inf velocity component to be detected")
	}
}
