// Package report builds the after-action report from a completed
// run's events and stats, and narrates a run live to the console.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/picogrid/defsim/internal/event"
	"github.com/picogrid/defsim/internal/simulation"
)

// AAR is the after-action report for one completed run.
type AAR struct {
	RunID           string    `json:"run_id"`
	ScenarioName    string    `json:"scenario_name"`
	GeneratedAt     time.Time `json:"generated_at"`
	FinalTime       float64   `json:"final_time_s"`
	StepCount       uint64    `json:"step_count"`

	MissilesLaunched    int `json:"missiles_launched"`
	MissilesHit         int `json:"missiles_hit"`
	MissilesSelfDestruct int `json:"missiles_self_destruct"`
	MissilesTargetLost  int `json:"missiles_target_lost"`
	MissilesOutOfBounds int `json:"missiles_out_of_bounds"`
	TargetsDestroyed    int `json:"targets_destroyed"`
	TargetsReached      int `json:"targets_reached"`

	HitRate            float64 `json:"hit_rate"`
	MeanFlightTimeS     float64 `json:"mean_flight_time_s"`
	StddevFlightTimeS   float64 `json:"stddev_flight_time_s"`
	MeanMissDistanceM   float64 `json:"mean_miss_distance_m"`

	Timeline []TimelineEntry `json:"timeline"`
}

// TimelineEntry is one narrated line of the report's event timeline.
type TimelineEntry struct {
	TimeS       float64 `json:"time_s"`
	Type        string  `json:"type"`
	EntityID    string  `json:"entity_id"`
	RelatedID   string  `json:"related_id,omitempty"`
	Description string  `json:"description"`
}

// Generate builds an AAR from the final engine state and the full
// recorded event sequence. Statistics are computed with gonum/stat
// from the engine's own missile records: flight-time mean and stddev
// over missiles that ended in a hit, and the mean of each missile's
// last recorded endgame miss distance (missiles that never entered
// Endgame contribute none).
func Generate(runID, scenarioName string, eng *simulation.Engine, events []event.Event) *AAR {
	aar := &AAR{
		RunID:        runID,
		ScenarioName: scenarioName,
		GeneratedAt:  time.Now(),
		FinalTime:    eng.CurrentTime,
		StepCount:    eng.Stats.StepCount,

		MissilesLaunched:     eng.Stats.MissilesLaunched,
		MissilesHit:          eng.Stats.MissilesHit,
		MissilesSelfDestruct: eng.Stats.MissilesSelfDestruct,
		MissilesTargetLost:   eng.Stats.MissilesTargetLost,
		MissilesOutOfBounds:  eng.Stats.MissilesOutOfBounds,
		TargetsDestroyed:     eng.Stats.TargetsDestroyed,
		TargetsReached:       eng.Stats.TargetsReached,
	}

	if aar.MissilesLaunched > 0 {
		aar.HitRate = float64(aar.MissilesHit) / float64(aar.MissilesLaunched)
	}

	var hitFlightTimes, missDistances []float64
	for _, m := range eng.Missiles {
		if m.Status == simulation.MissileDestroyed {
			hitFlightTimes = append(hitFlightTimes, m.FlightTime)
		}
		if n := len(m.MissHistory); n > 0 {
			missDistances = append(missDistances, m.MissHistory[n-1])
		}
	}

	if len(hitFlightTimes) > 0 {
		aar.MeanFlightTimeS = stat.Mean(hitFlightTimes, nil)
		aar.StddevFlightTimeS = stat.StdDev(hitFlightTimes, nil)
	}
	if len(missDistances) > 0 {
		aar.MeanMissDistanceM = stat.Mean(missDistances, nil)
	}

	for _, e := range events {
		aar.Timeline = append(aar.Timeline, TimelineEntry{
			TimeS:       e.Time,
			Type:        string(e.Type),
			EntityID:    e.EntityID,
			RelatedID:   e.RelatedID,
			Description: describe(e),
		})
	}
	sort.SliceStable(aar.Timeline, func(i, j int) bool { return aar.Timeline[i].TimeS < aar.Timeline[j].TimeS })

	return aar
}

func describe(e event.Event) string {
	switch e.Type {
	case event.MissileLaunched:
		return fmt.Sprintf("%s launched against %s", e.EntityID, e.RelatedID)
	case event.MissilePhaseTransition:
		return fmt.Sprintf("%s transitioned %s -> %s", e.EntityID, e.PhaseFrom, e.PhaseTo)
	case event.MissileHit:
		return fmt.Sprintf("%s hit %s", e.EntityID, e.RelatedID)
	case event.MissileSelfDestruct:
		return fmt.Sprintf("%s self-destructed (%s)", e.EntityID, e.Reason)
	case event.MissileOutOfBounds:
		return fmt.Sprintf("%s left the world region", e.EntityID)
	case event.TargetDestroyed:
		return fmt.Sprintf("%s destroyed", e.EntityID)
	case event.TargetReached:
		return fmt.Sprintf("%s reached its destination", e.EntityID)
	case event.SensorFirstDetected:
		return fmt.Sprintf("%s acquired %s", e.EntityID, e.RelatedID)
	case event.SensorLost:
		return fmt.Sprintf("%s lost %s", e.EntityID, e.RelatedID)
	default:
		return string(e.Type)
	}
}

// SaveJSON writes the AAR to <dir>/AAR_<runID>.json.
func (a *AAR) SaveJSON(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal AAR: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("AAR_%s.json", a.RunID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write AAR: %w", err)
	}
	return path, nil
}

// SaveMarkdown writes a human-readable AAR to <dir>/AAR_<runID>.md.
func (a *AAR) SaveMarkdown(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# After Action Report: %s\n\n", a.ScenarioName))
	sb.WriteString(fmt.Sprintf("Run ID: %s\n\n", a.RunID))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", a.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Simulated %.1fs over %d steps.\n\n", a.FinalTime, a.StepCount))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Missiles launched: %d\n", a.MissilesLaunched))
	sb.WriteString(fmt.Sprintf("- Hits: %d (%.1f%% hit rate)\n", a.MissilesHit, a.HitRate*100))
	sb.WriteString(fmt.Sprintf("- Self-destructs: %d\n", a.MissilesSelfDestruct))
	sb.WriteString(fmt.Sprintf("- Target lost (missile outlived its target): %d\n", a.MissilesTargetLost))
	sb.WriteString(fmt.Sprintf("- Out of bounds: %d\n", a.MissilesOutOfBounds))
	sb.WriteString(fmt.Sprintf("- Targets destroyed: %d\n", a.TargetsDestroyed))
	sb.WriteString(fmt.Sprintf("- Targets reached: %d\n\n", a.TargetsReached))

	sb.WriteString("## Flight statistics\n\n")
	sb.WriteString(fmt.Sprintf("- Mean flight time to hit: %.2fs (stddev %.2fs)\n", a.MeanFlightTimeS, a.StddevFlightTimeS))
	sb.WriteString(fmt.Sprintf("- Mean terminal miss distance: %.1fm\n\n", a.MeanMissDistanceM))

	sb.WriteString("## Timeline\n\n")
	for _, t := range a.Timeline {
		sb.WriteString(fmt.Sprintf("- t=%.1fs %s\n", t.TimeS, t.Description))
	}

	path := filepath.Join(dir, fmt.Sprintf("AAR_%s.md", a.RunID))
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write AAR: %w", err)
	}
	return path, nil
}
