package simulation

import (
	"sort"

	"github.com/picogrid/defsim/internal/event"
	"github.com/picogrid/defsim/internal/simmath"
)

// Sensor is a passive spherical-range detector. Its only active work
// happens in UpdateDetections; it has no per-tick update of its own.
type Sensor struct {
	ID             string
	Position       simmath.Position3
	DetectionRange float64
	Active         bool
	DetectedIDs    map[string]bool
}

// NewSensor constructs an Active sensor with an empty detection set.
func NewSensor(id string, pos simmath.Position3, rangeM float64) *Sensor {
	return &Sensor{
		ID:             id,
		Position:       pos,
		DetectionRange: rangeM,
		Active:         true,
		DetectedIDs:    make(map[string]bool),
	}
}

// UpdateDetections recomputes the sensor's detected-ID set against
// the current target population, emitting SensorFirstDetected for
// newly detected IDs and SensorLost for IDs that drop out. Targets are
// visited in stable (ID-sorted) order so event emission is
// deterministic regardless of slice ordering upstream.
func (s *Sensor) UpdateDetections(targets []*Target, currentTime float64, sink event.Sink) {
	if !s.Active {
		return
	}

	ordered := make([]*Target, len(targets))
	copy(ordered, targets)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	next := make(map[string]bool, len(s.DetectedIDs))

	for _, t := range ordered {
		if !t.IsActive() {
			continue
		}
		distance := s.Position.Distance3(t.Position)
		if distance > s.DetectionRange {
			continue
		}
		next[t.ID] = true
		if !s.DetectedIDs[t.ID] {
			sink.Emit(event.Event{Time: currentTime, Type: event.SensorFirstDetected, EntityID: s.ID, RelatedID: t.ID, Position: t.Position})
		}
	}

	lostIDs := make([]string, 0)
	for id := range s.DetectedIDs {
		if !next[id] {
			lostIDs = append(lostIDs, id)
		}
	}
	sort.Strings(lostIDs)
	for _, id := range lostIDs {
		sink.Emit(event.Event{Time: currentTime, Type: event.SensorLost, EntityID: s.ID, RelatedID: id})
	}

	s.DetectedIDs = next
}
