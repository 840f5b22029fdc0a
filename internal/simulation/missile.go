package simulation

import (
	"math"

	"github.com/picogrid/defsim/internal/simmath"
)

// GuidancePhase is the missile's flight-phase machine, monotonically
// non-decreasing for the life of a missile.
type GuidancePhase int

const (
	PhaseBoost GuidancePhase = iota
	PhaseMidcourse
	PhaseEndgame
)

func (p GuidancePhase) String() string {
	switch p {
	case PhaseBoost:
		return "Boost"
	case PhaseMidcourse:
		return "Midcourse"
	case PhaseEndgame:
		return "Endgame"
	default:
		return "Unknown"
	}
}

// MissileStatus is the missile's top-level lifecycle state.
type MissileStatus int

const (
	MissileActive MissileStatus = iota
	MissileDestroyed
	MissileSelfDestructed
)

// EndReason records why a missile stopped being Active, set exactly
// once on the tick it transitions out of MissileActive.
type EndReason string

const (
	EndNone         EndReason = ""
	EndHit          EndReason = "Hit"
	EndSelfDestruct EndReason = "SelfDestruct"
	EndTargetLost   EndReason = "TargetLost"
	EndOutOfBounds  EndReason = "OutOfBounds"
)

// MissileParams are the per-interceptor prototype parameters a
// Launcher stamps into every Missile it fires.
type MissileParams struct {
	InitialSpeed             float64
	MaxSpeed                 float64
	MaxAccel                 float64
	MaxTurnRateDegS          float64
	InterceptRadius          float64
	GuidanceN                float64
	EndgameFactor            float64
	EndgameMissIncreaseTicks int
}

// Missile is a guided interceptor: true 3D proportional navigation
// with a boost/midcourse/endgame phase machine and a miss-distance
// self-destruct predicate.
type Missile struct {
	ID       string
	TargetID string

	Position     simmath.Position3
	Velocity     simmath.Velocity3
	Acceleration simmath.Accel3
	Attitude     simmath.Attitude

	Params MissileParams

	EndgameThreshold float64

	MissHistory      []float64
	MissIncreaseCnt  int
	GuidancePhase    GuidancePhase
	FlightTime       float64
	TotalDistance    float64
	Status           MissileStatus
	EndReason        EndReason
}

// NewMissile constructs an Active missile at a launcher's position,
// launched straight up at the prototype's initial speed, in Boost
// phase.
func NewMissile(id, targetID string, launchPos simmath.Position3, params MissileParams) *Missile {
	return &Missile{
		ID:               id,
		TargetID:         targetID,
		Position:         launchPos,
		Velocity:         simmath.Velocity3{X: 0, Y: 0, Z: params.InitialSpeed},
		Params:           params,
		EndgameThreshold: params.InterceptRadius * params.EndgameFactor,
		GuidancePhase:    PhaseBoost,
		Status:           MissileActive,
	}
}

func (m *Missile) IsActive() bool { return m.Status == MissileActive }

// guidanceAccel computes the commanded acceleration for the current
// flight phase against a target position.
func (m *Missile) guidanceAccel(targetPos simmath.Position3) simmath.Accel3 {
	pn := m.proNavAccel(targetPos)

	if m.GuidancePhase == PhaseBoost {
		boost := simmath.Accel3{Z: 0.5 * m.Params.MaxAccel}
		halfPN := simmath.Accel3{X: pn.X * 0.5, Y: pn.Y * 0.5}
		return boost.Add(halfPN)
	}
	return pn
}

// proNavAccel computes the true-3D proportional-navigation command:
// cross-product LOS-rate approximation with closing-velocity gating
// and a pure-pursuit fallback.
func (m *Missile) proNavAccel(targetPos simmath.Position3) simmath.Accel3 {
	r := targetPos.Sub(m.Position)
	d := r.Magnitude()
	if d < 1e-6 {
		return simmath.Accel3{}
	}

	los := r.Normalize()
	closingSpeed := -m.Velocity.Dot(los)

	if closingSpeed <= 0 {
		return los.Scale(m.Params.MaxAccel)
	}

	omega := m.Velocity.Cross(los).Scale(1.0 / d)
	return omega.Scale(m.Params.GuidanceN * closingSpeed)
}

// Tick advances an Active missile by one timestep against its
// target's current position. Once the missile leaves MissileActive
// this is a no-op. Returns true iff the missile inflicts a hit this
// tick (the caller applies damage to the bound target).
func (m *Missile) Tick(dt float64, targetPos simmath.Position3) (hit bool) {
	if m.Status != MissileActive {
		return false
	}

	accel := m.guidanceAccel(targetPos).ClampMagnitude(m.Params.MaxAccel)
	m.Acceleration = accel

	m.Velocity = m.Velocity.Add(accel.Scale(dt)).ClampMagnitude(m.Params.MaxSpeed)

	prevPos := m.Position
	m.Position = m.Position.Add(m.Velocity.Scale(dt)).ClampZ()
	m.TotalDistance += m.Position.Distance3(prevPos)

	desired := simmath.AttitudeFromVelocity(m.Velocity)
	m.Attitude = m.Attitude.TurnToward(desired, m.Params.MaxTurnRateDegS*dt)

	d := m.Position.Distance3(targetPos)
	m.transitionPhase(d)

	hit = m.runChecks(d)

	m.FlightTime += dt
	return hit
}

func (m *Missile) transitionPhase(d float64) {
	switch m.GuidancePhase {
	case PhaseBoost:
		if m.FlightTime > 2.0 {
			m.GuidancePhase = PhaseMidcourse
		}
	case PhaseMidcourse:
		if d <= m.EndgameThreshold {
			m.GuidancePhase = PhaseEndgame
		}
	}
}

// runChecks evaluates the out-of-bounds, collision, and miss-distance
// predicates in that fixed order: a collision always wins over a
// same-tick self-destruct, so a missile that reaches intercept_radius
// scores as a Hit even on a tick where the endgame miss-distance
// counter would also have tripped.
func (m *Missile) runChecks(d float64) (hit bool) {
	if !m.Position.InBounds() {
		m.Status = MissileSelfDestructed
		m.EndReason = EndOutOfBounds
		return false
	}

	if d <= m.Params.InterceptRadius {
		m.Status = MissileDestroyed
		m.EndReason = EndHit
		return true
	}

	if m.GuidancePhase == PhaseEndgame {
		m.pushMissHistory(d)
	}

	return false
}

func (m *Missile) pushMissHistory(d float64) {
	m.MissHistory = append(m.MissHistory, d)
	if len(m.MissHistory) > 10 {
		m.MissHistory = m.MissHistory[len(m.MissHistory)-10:]
	}

	n := len(m.MissHistory)
	if n < 2 {
		return
	}
	if m.MissHistory[n-1] > m.MissHistory[n-2] {
		m.MissIncreaseCnt++
	} else {
		m.MissIncreaseCnt = 0
	}

	if m.MissIncreaseCnt >= m.Params.EndgameMissIncreaseTicks {
		m.Status = MissileSelfDestructed
		m.EndReason = EndSelfDestruct
	}
}

// TerminateTargetLost ends the missile's flight when its bound
// target has already terminated this tick; it is non-fatal to the
// simulation and distinct from a Hit.
func (m *Missile) TerminateTargetLost() {
	if m.Status != MissileActive {
		return
	}
	m.Status = MissileSelfDestructed
	m.EndReason = EndTargetLost
}

// TerminateInvariantBreach ends the missile's flight when guidance
// math has produced a non-finite value, self-destructing it rather
// than letting NaN/Inf propagate into later ticks.
func (m *Missile) TerminateInvariantBreach() {
	if m.Status != MissileActive {
		return
	}
	m.Status = MissileSelfDestructed
	m.EndReason = EndSelfDestruct
}

// HasNonFiniteState reports whether the missile's position or
// velocity has picked up a NaN/Inf component.
func (m *Missile) HasNonFiniteState() bool {
	vals := []float64{
		m.Position.X, m.Position.Y, m.Position.Z,
		m.Velocity.X, m.Velocity.Y, m.Velocity.Z,
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
