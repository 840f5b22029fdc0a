package simulation

import (
	"math"
	"sort"

	"github.com/picogrid/defsim/internal/simmath"
)

// TargetPriority is one entry of the CommandPost's per-tick priority
// list, sorted by (tgo ascending, distance_xy ascending, target_id
// ascending).
type TargetPriority struct {
	TargetID         string
	Tgo              float64
	DistanceXY       float64
	AssignedMissiles int
	Endurance        uint32
}

// CommandPost evaluates threats, orders them, selects launchers, and
// tracks live missile-to-target assignments.
type CommandPost struct {
	ID             string
	Position       simmath.Position3
	ArrivalRadiusM float64

	DetectedTargets map[string]bool
	Assignments     map[string][]string // target_id -> live missile IDs
	Priorities      []TargetPriority
}

// NewCommandPost constructs an empty CommandPost.
func NewCommandPost(id string, pos simmath.Position3, arrivalRadiusM float64) *CommandPost {
	return &CommandPost{
		ID:              id,
		Position:        pos,
		ArrivalRadiusM:  arrivalRadiusM,
		DetectedTargets: make(map[string]bool),
		Assignments:     make(map[string][]string),
	}
}

// RebuildPriorities recomputes the CommandPost's priority list from
// the fused detection set and the current target population, sorted
// by (tgo asc, distance_xy asc, target_id asc). A NaN tgo sorts as
// if it were +Inf.
func (cp *CommandPost) RebuildPriorities(fused map[string]bool, targetsByID map[string]*Target) {
	cp.DetectedTargets = fused

	priorities := make([]TargetPriority, 0, len(fused))
	for id := range fused {
		t, ok := targetsByID[id]
		if !ok || !t.IsActive() {
			continue
		}
		priorities = append(priorities, TargetPriority{
			TargetID:         id,
			Tgo:              t.TimeToGo(),
			DistanceXY:       t.Position.DistanceXY(cp.Position),
			AssignedMissiles: len(cp.Assignments[id]),
			Endurance:        t.Endurance,
		})
	}

	sort.Slice(priorities, func(i, j int) bool {
		a, b := priorities[i], priorities[j]
		at, bt := tgoOrInf(a.Tgo), tgoOrInf(b.Tgo)
		if at != bt {
			return at < bt
		}
		if a.DistanceXY != b.DistanceXY {
			return a.DistanceXY < b.DistanceXY
		}
		return a.TargetID < b.TargetID
	})

	cp.Priorities = priorities
}

func tgoOrInf(tgo float64) float64 {
	if math.IsNaN(tgo) {
		return math.Inf(1)
	}
	return tgo
}

// Allocate walks the priority list in order and, for each target
// still under-assigned relative to its endurance, attempts to commit
// at most one additional missile this tick by selecting the best
// Ready launcher and firing it. It returns the missiles that were
// actually fired this tick, each paired with the launcher that fired
// it.
func (cp *CommandPost) Allocate(launchers []*Launcher, targetsByID map[string]*Target, currentTime float64) []FiredMissile {
	var fired []FiredMissile

	for _, p := range cp.Priorities {
		if uint32(p.AssignedMissiles) >= p.Endurance {
			continue
		}

		target, ok := targetsByID[p.TargetID]
		if !ok {
			continue
		}

		launcher := selectBestLauncher(launchers, target.Position)
		if launcher == nil {
			continue
		}

		missile := launcher.Fire(p.TargetID, currentTime)
		if missile == nil {
			continue
		}

		cp.Assignments[p.TargetID] = append(cp.Assignments[p.TargetID], missile.ID)
		fired = append(fired, FiredMissile{Missile: missile, Launcher: launcher})
	}

	return fired
}

// FiredMissile pairs a newly created Missile with the Launcher that
// fired it, for the engine to splice into its missile list and emit
// a MissileLaunched event from.
type FiredMissile struct {
	Missile  *Missile
	Launcher *Launcher
}

// selectBestLauncher picks the Ready launcher minimizing
// (cooldown_remaining asc, XY-distance(launcher, target) asc,
// launcher_id asc), using each launcher's own position — never the
// command post's — for the distance term.
func selectBestLauncher(launchers []*Launcher, targetPos simmath.Position3) *Launcher {
	var best *Launcher
	var bestCooldown, bestDistance float64

	for _, l := range launchers {
		if !l.Ready() {
			continue
		}
		distance := l.DistanceXYTo(targetPos)

		if best == nil ||
			l.CooldownRemaining < bestCooldown ||
			(l.CooldownRemaining == bestCooldown && distance < bestDistance) ||
			(l.CooldownRemaining == bestCooldown && distance == bestDistance && l.ID < best.ID) {
			best = l
			bestCooldown = l.CooldownRemaining
			bestDistance = distance
		}
	}

	return best
}

// NotifyMissileTerminated removes a terminated missile's ID from
// whichever assignment entry references it.
func (cp *CommandPost) NotifyMissileTerminated(missileID string) {
	for targetID, ids := range cp.Assignments {
		for i, id := range ids {
			if id == missileID {
				cp.Assignments[targetID] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
}

// NotifyTargetTerminated deletes a terminated target's assignment
// entry and removes it from the detected set.
func (cp *CommandPost) NotifyTargetTerminated(targetID string) {
	delete(cp.Assignments, targetID)
	delete(cp.DetectedTargets, targetID)
}
