package simulation

import (
	"math"

	"github.com/picogrid/defsim/internal/simmath"
)

// TargetStatus is the lifecycle state of a Target.
type TargetStatus int

const (
	TargetInactive TargetStatus = iota
	TargetActive
	TargetDestroyed
	TargetReached
	TargetRemoved
)

func (s TargetStatus) String() string {
	switch s {
	case TargetInactive:
		return "Inactive"
	case TargetActive:
		return "Active"
	case TargetDestroyed:
		return "Destroyed"
	case TargetReached:
		return "Reached"
	case TargetRemoved:
		return "Removed"
	default:
		return "Unknown"
	}
}

// Target is a straight-line, constant-velocity hostile track. It is
// created Inactive and becomes Active once the engine's current_time
// reaches its spawn_time.
type Target struct {
	ID           string
	GroupID      string
	Position     simmath.Position3
	Velocity     simmath.Velocity3
	Destination  simmath.Position3
	ArrivalRad   float64
	Endurance    uint32
	MaxEndurance uint32
	SpawnTime    float64
	Speed        float64
	Status       TargetStatus
}

// NewTarget constructs an Inactive target. SetParameters must be
// called once before the first tick to finalize its motion and
// combat parameters.
func NewTarget(id string, start, destination simmath.Position3, groupID string) *Target {
	return &Target{
		ID:          id,
		GroupID:     groupID,
		Position:    start,
		Destination: destination,
		Status:      TargetInactive,
	}
}

// SetParameters finalizes a target's arrival radius, endurance, spawn
// time and speed, and derives its constant velocity toward its
// destination.
func (t *Target) SetParameters(arrivalRadius float64, endurance uint32, spawnTime, speed float64) {
	t.ArrivalRad = arrivalRadius
	t.Endurance = endurance
	t.MaxEndurance = endurance
	t.SpawnTime = spawnTime
	t.Speed = speed

	direction := t.Destination.Sub(t.Position)
	t.Velocity = direction.Normalize().Scale(speed)
}

// CheckSpawn transitions an Inactive target to Active once
// currentTime reaches its spawn time.
func (t *Target) CheckSpawn(currentTime float64) {
	if t.Status == TargetInactive && currentTime >= t.SpawnTime {
		t.Status = TargetActive
	}
}

// Tick advances an Active target by one timestep: straight-line
// motion, then the arrival and out-of-bounds predicates, in that
// order.
func (t *Target) Tick(dt float64) {
	if t.Status != TargetActive {
		return
	}
	t.Position = t.Position.Add(t.Velocity.Scale(dt)).ClampZ()
	t.checkArrival()
	t.checkOutOfBounds()
}

func (t *Target) checkArrival() {
	if t.Status != TargetActive {
		return
	}
	if t.Position.DistanceXY(t.Destination) <= t.ArrivalRad {
		t.Status = TargetReached
	}
}

// checkOutOfBounds removes a target that has left the world region.
// TargetRemoved is terminal, distinct from TargetInactive: CheckSpawn
// only ever re-activates a target still in its pre-spawn Inactive
// state, so a removed target can never be resurrected.
func (t *Target) checkOutOfBounds() {
	if t.Status != TargetActive {
		return
	}
	if !t.Position.InBounds() {
		t.Status = TargetRemoved
	}
}

// TakeDamage applies damage to an Active target; endurance reaching
// zero destroys it.
func (t *Target) TakeDamage(damage uint32) {
	if t.Status != TargetActive {
		return
	}
	if damage >= t.Endurance {
		t.Endurance = 0
		t.Status = TargetDestroyed
	} else {
		t.Endurance -= damage
	}
}

// TimeToGo returns the estimated time for the target to reach its
// arrival ring, or +Inf if it is not Active or has zero speed.
func (t *Target) TimeToGo() float64 {
	if t.Status != TargetActive {
		return math.Inf(1)
	}
	if t.Speed <= 0 {
		return math.Inf(1)
	}
	remaining := t.Position.DistanceXY(t.Destination) - t.ArrivalRad
	if remaining < 0 {
		remaining = 0
	}
	return remaining / t.Speed
}

func (t *Target) IsActive() bool { return t.Status == TargetActive }
