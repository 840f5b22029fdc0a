package simulation

import (
	"fmt"

	"github.com/picogrid/defsim/internal/simmath"
)

// LaunchRecord is one entry in a Launcher's firing history.
type LaunchRecord struct {
	Timestamp      float64
	MissileID      string
	TargetID       string
	LaunchPosition simmath.Position3
}

// Launcher is a magazine + cooldown state machine that fires
// Missiles built from its own interceptor prototype parameters.
type Launcher struct {
	ID       string
	Position simmath.Position3
	Active   bool

	Magazine    uint32
	MaxMagazine uint32

	CooldownTime      float64
	CooldownRemaining float64

	counter uint32
	History []LaunchRecord

	MissileParams MissileParams
}

// NewLauncher constructs an Active launcher. launcherInitiallyCooled
// selects whether it starts at zero cooldown (ready to fire
// immediately) or at its full cooldown time.
func NewLauncher(id string, pos simmath.Position3, magazine uint32, cooldownTime float64, launcherInitiallyCooled bool, params MissileParams) *Launcher {
	l := &Launcher{
		ID:            id,
		Position:      pos,
		Active:        true,
		Magazine:      magazine,
		MaxMagazine:   magazine,
		CooldownTime:  cooldownTime,
		MissileParams: params,
	}
	if launcherInitiallyCooled {
		l.CooldownRemaining = 0
	} else {
		l.CooldownRemaining = cooldownTime
	}
	return l
}

// Ready reports whether the launcher can fire right now.
func (l *Launcher) Ready() bool {
	return l.Active && l.Magazine > 0 && l.CooldownRemaining <= 0
}

// Fire mints a new missile ID, constructs a Missile at the launcher's
// position with its interceptor prototype, decrements the magazine,
// resets the cooldown, and appends a launch record. It returns nil
// if the launcher is not Ready.
func (l *Launcher) Fire(targetID string, currentTime float64) *Missile {
	if !l.Ready() {
		return nil
	}

	l.counter++
	missileID := fmt.Sprintf("%s_M%03d", l.ID, l.counter)

	missile := NewMissile(missileID, targetID, l.Position, l.MissileParams)

	l.Magazine--
	l.CooldownRemaining = l.CooldownTime
	l.History = append(l.History, LaunchRecord{
		Timestamp:      currentTime,
		MissileID:      missileID,
		TargetID:       targetID,
		LaunchPosition: l.Position,
	})

	return missile
}

// Tick decrements the cooldown timer, floored at zero.
func (l *Launcher) Tick(dt float64) {
	if l.CooldownRemaining > 0 {
		l.CooldownRemaining -= dt
		if l.CooldownRemaining < 0 {
			l.CooldownRemaining = 0
		}
	}
}

// DistanceXYTo returns the XY distance from the launcher's own
// position to a target position. CommandPost launcher selection must
// use this — never the command post's own position.
func (l *Launcher) DistanceXYTo(pos simmath.Position3) float64 {
	return l.Position.DistanceXY(pos)
}
