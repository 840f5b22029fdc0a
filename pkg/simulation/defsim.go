package simulation

import (
	"context"
	"fmt"
	"sync"

	"github.com/picogrid/defsim/internal/event"
	"github.com/picogrid/defsim/internal/scenario"
	sim "github.com/picogrid/defsim/internal/simulation"
)

// DefSim adapts the deterministic tick engine to the Simulation
// interface, the registry's canonical entry for this module.
type DefSim struct {
	scenarioPath string

	mu      sync.Mutex
	engine  *sim.Engine
	stopped bool
}

func init() {
	_ = DefaultRegistry.Register("defsim", func() Simulation { return &DefSim{} })
}

func (d *DefSim) Name() string { return "defsim" }

func (d *DefSim) Description() string {
	return "deterministic tick-based missile defense engagement simulator"
}

func (d *DefSim) Config() SimulationConfig {
	return SimulationConfig{
		Name:        "defsim",
		Description: d.Description(),
		Version:     "1.0.0",
		Category:    "missile-defense",
		Parameters: []Parameter{
			{
				Name:        "scenario_path",
				Type:        "string",
				Description: "path to a scenario YAML file",
				Required:    true,
			},
		},
	}
}

func (d *DefSim) Configure(params map[string]interface{}) error {
	path, ok := params["scenario_path"].(string)
	if !ok || path == "" {
		return fmt.Errorf("defsim: scenario_path is required")
	}
	d.scenarioPath = path
	return nil
}

// Run loads and validates the configured scenario, then ticks the
// engine forward until it reaches t_max, Stop is called, or ctx is
// cancelled. Cancellation is checked once per tick, the only point in
// the loop the CLI layer is allowed to interrupt from.
func (d *DefSim) Run(ctx context.Context, sink event.Sink) error {
	s, err := scenario.Load(d.scenarioPath)
	if err != nil {
		return err
	}

	eng := sim.New(s, sink)

	d.mu.Lock()
	d.engine = eng
	d.stopped = false
	d.mu.Unlock()

	for eng.Running() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if stopped {
			return nil
		}

		eng.Step()
	}

	return nil
}

func (d *DefSim) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	return nil
}

// Engine returns the most recently run Engine, for a caller (the CLI)
// that wants its final Stats after Run returns.
func (d *DefSim) Engine() *sim.Engine {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine
}
