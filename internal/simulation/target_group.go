package simulation

import (
	"fmt"
	"math"

	"github.com/picogrid/defsim/internal/simmath"
)

// TargetGroupSpec is the placement and shared-parameter spec for a
// wave of targets, deterministically arranged into concentric rings.
type TargetGroupSpec struct {
	ID             string
	CenterPosition simmath.Position3
	Count          uint32
	RingSpacingM   float64
	StartAngleDeg  float64
	RingHalfOffset bool
	Endurance      uint32
	SpawnTime      float64
	Speed          float64
	Destination    simmath.Position3
	ArrivalRadius  float64
}

// GeneratePositions lays out Count positions in concentric rings
// around CenterPosition: 1 at the center, then for each outer ring k
// = 2, 3, …, capacity = floor(circumference / ring_spacing) targets
// at equally spaced angles, optionally half-step offset on rings
// beyond the second.
func (g TargetGroupSpec) GeneratePositions() []simmath.Position3 {
	positions := make([]simmath.Position3, 0, g.Count)
	remaining := int(g.Count)
	ring := 1

	for remaining > 0 {
		if ring == 1 {
			positions = append(positions, g.CenterPosition)
			remaining--
			ring++
			continue
		}

		radius := float64(ring) * g.RingSpacingM
		circumference := 2 * math.Pi * radius
		capacity := int(circumference / g.RingSpacingM)
		if capacity <= 0 {
			capacity = 1
		}

		placed := remaining
		if placed > capacity {
			placed = capacity
		}

		angleStep := 360.0 / float64(placed)
		offset := 0.0
		if g.RingHalfOffset && ring > 2 {
			offset = angleStep / 2.0
		}

		for i := 0; i < placed; i++ {
			angleDeg := g.StartAngleDeg + float64(i)*angleStep + offset
			angleRad := simmath.DegToRad(angleDeg)
			positions = append(positions, simmath.NewPosition3(
				g.CenterPosition.X+radius*math.Cos(angleRad),
				g.CenterPosition.Y+radius*math.Sin(angleRad),
				g.CenterPosition.Z,
			))
		}

		remaining -= placed
		ring++
	}

	return positions
}

// GenerateTargets constructs the group's Target population at their
// ring-placed positions, each sharing the group's destination,
// arrival radius, endurance, spawn time and speed. Target IDs are
// assigned in placement order starting at <group_id>_T001.
func (g TargetGroupSpec) GenerateTargets() []*Target {
	positions := g.GeneratePositions()
	targets := make([]*Target, 0, len(positions))

	for i, pos := range positions {
		id := fmt.Sprintf("%s_T%03d", g.ID, i+1)
		t := NewTarget(id, pos, g.Destination, g.ID)
		t.SetParameters(g.ArrivalRadius, g.Endurance, g.SpawnTime, g.Speed)
		targets = append(targets, t)
	}

	return targets
}
