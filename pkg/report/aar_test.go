package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/picogrid/defsim/internal/event"
	"github.com/picogrid/defsim/internal/scenario"
	"github.com/picogrid/defsim/internal/simulation"
)

func runLoneIntercept(t *testing.T) (*simulation.Engine, []event.Event) {
	t.Helper()
	s, err := scenario.Load("../../internal/scenario/testdata/lone_intercept.yaml")
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	sink := &event.SliceSink{}
	eng := simulation.New(s, sink)
	eng.Run()
	return eng, sink.Events
}

func TestGenerateComputesHitRate(t *testing.T) {
	eng, events := runLoneIntercept(t)
	aar := Generate("run-1", "lone-intercept", eng, events)

	if aar.MissilesLaunched == 0 {
		t.Fatal("expected at least one missile launched")
	}
	wantRate := float64(aar.MissilesHit) / float64(aar.MissilesLaunched)
	if aar.HitRate != wantRate {
		t.Errorf("got hit rate %v, want %v", aar.HitRate, wantRate)
	}
}

func TestGenerateTimelineIsSortedByTime(t *testing.T) {
	eng, events := runLoneIntercept(t)
	aar := Generate("run-2", "lone-intercept", eng, events)

	for i := 1; i < len(aar.Timeline); i++ {
		if aar.Timeline[i].TimeS < aar.Timeline[i-1].TimeS {
			t.Fatalf("timeline not sorted at index %d: %v before %v", i, aar.Timeline[i-1].TimeS, aar.Timeline[i].TimeS)
		}
	}
}

func TestGenerateWithNoLaunchesHasZeroHitRate(t *testing.T) {
	eng, events := runLoneIntercept(t)
	eng.Stats.MissilesLaunched = 0
	aar := Generate("run-3", "lone-intercept", eng, events)
	if aar.HitRate != 0 {
		t.Errorf("expected zero hit rate with no launches, got %v", aar.HitRate)
	}
}

func TestSaveJSONAndMarkdownWriteFiles(t *testing.T) {
	eng, events := runLoneIntercept(t)
	aar := Generate("run-4", "lone-intercept", eng, events)

	dir := t.TempDir()

	jsonPath, err := aar.SaveJSON(dir)
	if err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	if _, err := os.Stat(jsonPath); err != nil {
		t.Fatalf("expected json report file: %v", err)
	}
	if filepath.Base(jsonPath) != "AAR_run-4.json" {
		t.Errorf("got json path %q", jsonPath)
	}

	mdPath, err := aar.SaveMarkdown(dir)
	if err != nil {
		t.Fatalf("SaveMarkdown: %v", err)
	}
	if _, err := os.Stat(mdPath); err != nil {
		t.Fatalf("expected markdown report file: %v", err)
	}
}

func TestDescribeCoversEveryEventType(t *testing.T) {
	types := []event.Type{
		event.MissileLaunched,
		event.MissilePhaseTransition,
		event.MissileHit,
		event.MissileSelfDestruct,
		event.MissileOutOfBounds,
		event.TargetDestroyed,
		event.TargetReached,
		event.SensorFirstDetected,
		event.SensorLost,
	}
	for _, ty := range types {
		got := describe(event.Event{Type: ty, EntityID: "X001", RelatedID: "Y001"})
		if got == "" {
			t.Errorf("describe(%v) returned an empty string", ty)
		}
	}
}
