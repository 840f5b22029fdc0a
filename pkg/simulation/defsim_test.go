package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/picogrid/defsim/internal/event"
)

func TestDefSimConfigureRequiresScenarioPath(t *testing.T) {
	d := &DefSim{}
	if err := d.Configure(map[string]interface{}{}); err == nil {
		t.Fatal("expected an error when scenario_path is missing")
	}
	if err := d.Configure(map[string]interface{}{"scenario_path": "../../internal/scenario/testdata/lone_intercept.yaml"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
}

func TestDefSimRunToCompletion(t *testing.T) {
	d := &DefSim{}
	if err := d.Configure(map[string]interface{}{"scenario_path": "../../internal/scenario/testdata/lone_intercept.yaml"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if err := d.Run(context.Background(), event.NopSink{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if d.Engine() == nil {
		t.Fatal("expected Engine() to return the completed run's engine")
	}
	if d.Engine().Stats.MissilesLaunched == 0 {
		t.Error("expected at least one missile launched over the run")
	}
}

func TestDefSimStopEndsRunEarly(t *testing.T) {
	d := &DefSim{}
	if err := d.Configure(map[string]interface{}{"scenario_path": "../../internal/scenario/testdata/lone_intercept.yaml"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background(), event.NopSink{}) }()

	// Give the run loop a moment to start before stopping it; this is
	// a best-effort race rather than a deterministic trigger, since
	// the engine may finish on its own on a short scenario.
	time.Sleep(time.Millisecond)
	if err := d.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestDefSimConfigDescribesScenarioPathParameter(t *testing.T) {
	d := &DefSim{}
	cfg := d.Config()
	if cfg.Name != "defsim" {
		t.Errorf("got name %q, want %q", cfg.Name, "defsim")
	}
	found := false
	for _, p := range cfg.Parameters {
		if p.Name == "scenario_path" && p.Required {
			found = true
		}
	}
	if !found {
		t.Error("expected a required scenario_path parameter")
	}
}
