// Package simulation implements the deterministic tick engine: the
// five-phase per-tick loop and the entity kinds it schedules.
package simulation

import (
	"sort"

	"github.com/picogrid/defsim/internal/event"
	"github.com/picogrid/defsim/internal/scenario"
	"github.com/picogrid/defsim/internal/simmath"
)

// Stats accumulates run-level counters a caller can read once the
// engine stops, the raw material for an after-action report.
type Stats struct {
	StepCount          uint64
	MissilesLaunched   int
	MissilesHit        int
	MissilesSelfDestruct int
	MissilesTargetLost int
	MissilesOutOfBounds int
	TargetsDestroyed   int
	TargetsReached     int
}

// Engine owns every entity in a run and drives the fixed-step,
// single-threaded, five-phase tick loop.
type Engine struct {
	CurrentTime float64
	DtS         float64
	TMaxS       float64
	MaxSteps    uint64

	CommandPost *CommandPost

	Targets  []*Target
	Sensors  []*Sensor
	Launcher []*Launcher
	Missiles []*Missile

	targetsByID map[string]*Target

	Sink  event.Sink
	Stats Stats
}

// New constructs an Engine from a loaded, validated Scenario. The
// engine does not mutate the scenario; it copies the values it needs
// into its own entity records.
func New(s *scenario.Scenario, sink event.Sink) *Engine {
	if sink == nil {
		sink = event.NopSink{}
	}

	e := &Engine{
		DtS:         s.Sim.DtS,
		TMaxS:       s.Sim.TMaxS,
		MaxSteps:    uint64(s.Sim.TMaxS/s.Sim.DtS) * 10,
		targetsByID: make(map[string]*Target),
		Sink:        sink,
	}

	cpPos := simmath.NewPosition3(s.CommandPost.Position.XM, s.CommandPost.Position.YM, 0)
	e.CommandPost = NewCommandPost(s.CommandPost.ID, cpPos, s.CommandPost.ArrivalRadiusM)

	for _, spec := range s.FriendlyForces.Sensors {
		pos := simmath.NewPosition3(spec.Pos.XM, spec.Pos.YM, spec.Pos.ZM)
		e.Sensors = append(e.Sensors, NewSensor(spec.ID, pos, spec.RangeM))
	}

	mk := s.MissileDefault.Kinematics
	missileParams := MissileParams{
		InitialSpeed:             mk.InitialSpeedMps,
		MaxSpeed:                 mk.MaxSpeedMps,
		MaxAccel:                 mk.MaxAccelMps2,
		MaxTurnRateDegS:          mk.MaxTurnRateDegS,
		InterceptRadius:          mk.InterceptRadiusM,
		GuidanceN:                s.Policy.MissileGuidance.N,
		EndgameFactor:            s.Policy.MissileGuidance.EndgameFactor,
		EndgameMissIncreaseTicks: s.Policy.MissileGuidance.EndgameMissIncreaseTicks,
	}

	for _, spec := range s.FriendlyForces.Launchers {
		pos := simmath.NewPosition3(spec.Pos.XM, spec.Pos.YM, spec.Pos.ZM)
		e.Launcher = append(e.Launcher, NewLauncher(
			spec.ID, pos, spec.MissilesLoaded, spec.CooldownS,
			s.Policy.LauncherInitiallyCooled(), missileParams,
		))
	}

	for _, g := range s.EnemyForces.Groups {
		spec := TargetGroupSpec{
			ID:             g.ID,
			CenterPosition: simmath.NewPosition3(g.CenterXY.XM, g.CenterXY.YM, g.ZM),
			Count:          g.Count,
			RingSpacingM:   g.RingSpacingM,
			StartAngleDeg:  g.StartAngleDeg,
			RingHalfOffset: g.RingHalfOffset,
			Endurance:      g.EndurancePt,
			SpawnTime:      g.SpawnTimeS,
			Speed:          g.SpeedMps,
			Destination:    cpPos,
			ArrivalRadius:  s.CommandPost.ArrivalRadiusM,
		}
		for _, t := range spec.GenerateTargets() {
			e.Targets = append(e.Targets, t)
			e.targetsByID[t.ID] = t
		}
	}

	return e
}

// Running reports whether the engine should continue ticking: before
// t_max, and before the step-count safety cap.
func (e *Engine) Running() bool {
	return e.CurrentTime < e.TMaxS && e.Stats.StepCount <= e.MaxSteps
}

// Step advances the simulation by exactly one tick, running all five
// phases in order, then advancing current_time and step_count.
func (e *Engine) Step() {
	e.phaseTargets()
	e.phaseMissiles()
	e.phaseSensors()
	e.phaseCommandPost()
	e.phaseLaunchers()

	e.CurrentTime += e.DtS
	e.Stats.StepCount++
}

// Run ticks the engine until Running() is false.
func (e *Engine) Run() {
	for e.Running() {
		e.Step()
	}
}

func (e *Engine) phaseTargets() {
	for _, t := range e.Targets {
		prevStatus := t.Status
		t.CheckSpawn(e.CurrentTime)
		if t.IsActive() {
			t.Tick(e.DtS)
		}
		e.emitTargetTerminalEvents(t, prevStatus)
	}
}

func (e *Engine) emitTargetTerminalEvents(t *Target, prevStatus TargetStatus) {
	if prevStatus == t.Status {
		return
	}
	switch t.Status {
	case TargetDestroyed:
		e.Stats.TargetsDestroyed++
		e.Sink.Emit(event.Event{Time: e.CurrentTime, Type: event.TargetDestroyed, EntityID: t.ID, Position: t.Position})
		e.CommandPost.NotifyTargetTerminated(t.ID)
	case TargetReached:
		e.Stats.TargetsReached++
		e.Sink.Emit(event.Event{Time: e.CurrentTime, Type: event.TargetReached, EntityID: t.ID, Position: t.Position})
		e.CommandPost.NotifyTargetTerminated(t.ID)
	case TargetRemoved:
		// left the world region; terminal, same bookkeeping as any other terminal status
		e.CommandPost.NotifyTargetTerminated(t.ID)
	}
}

func (e *Engine) phaseMissiles() {
	for _, m := range e.Missiles {
		if !m.IsActive() {
			continue
		}

		target, ok := e.targetsByID[m.TargetID]
		if !ok || !target.IsActive() {
			m.TerminateTargetLost()
			e.Stats.MissilesTargetLost++
			e.CommandPost.NotifyMissileTerminated(m.ID)
			continue
		}

		prevPhase := m.GuidancePhase
		hit := m.Tick(e.DtS, target.Position)

		if m.HasNonFiniteState() {
			m.TerminateInvariantBreach()
		}

		if m.GuidancePhase != prevPhase {
			e.Sink.Emit(event.Event{
				Time: e.CurrentTime, Type: event.MissilePhaseTransition, EntityID: m.ID,
				PhaseFrom: prevPhase.String(), PhaseTo: m.GuidancePhase.String(),
			})
		}

		if hit {
			prevTargetStatus := target.Status
			target.TakeDamage(1)
			e.Stats.MissilesHit++
			e.Sink.Emit(event.Event{Time: e.CurrentTime, Type: event.MissileHit, EntityID: m.ID, RelatedID: target.ID, Position: m.Position, Damage: 1})
			e.emitTargetTerminalEvents(target, prevTargetStatus)
		}

		if !m.IsActive() {
			e.CommandPost.NotifyMissileTerminated(m.ID)
			switch m.EndReason {
			case EndSelfDestruct:
				e.Stats.MissilesSelfDestruct++
				e.Sink.Emit(event.Event{Time: e.CurrentTime, Type: event.MissileSelfDestruct, EntityID: m.ID, RelatedID: m.TargetID, Position: m.Position, Reason: string(m.EndReason)})
			case EndOutOfBounds:
				e.Stats.MissilesOutOfBounds++
				e.Sink.Emit(event.Event{Time: e.CurrentTime, Type: event.MissileOutOfBounds, EntityID: m.ID, RelatedID: m.TargetID, Position: m.Position})
			}
		}
	}
}

func (e *Engine) phaseSensors() {
	for _, s := range e.Sensors {
		if s.Active {
			s.UpdateDetections(e.Targets, e.CurrentTime, e.Sink)
		}
	}
}

func (e *Engine) phaseCommandPost() {
	fused := FuseDetections(e.Sensors)
	e.CommandPost.RebuildPriorities(fused, e.targetsByID)
	fired := e.CommandPost.Allocate(e.Launcher, e.targetsByID, e.CurrentTime)

	sort.Slice(fired, func(i, j int) bool { return fired[i].Missile.ID < fired[j].Missile.ID })

	for _, f := range fired {
		e.Missiles = append(e.Missiles, f.Missile)
		e.Stats.MissilesLaunched++
		e.Sink.Emit(event.Event{
			Time: e.CurrentTime, Type: event.MissileLaunched, EntityID: f.Missile.ID,
			RelatedID: f.Missile.TargetID, Position: f.Launcher.Position,
		})
	}
}

func (e *Engine) phaseLaunchers() {
	for _, l := range e.Launcher {
		l.Tick(e.DtS)
	}
}
