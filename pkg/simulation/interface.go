package simulation

import (
	"context"

	"github.com/picogrid/defsim/internal/event"
)

// Simulation defines the interface every registered simulation
// implements. defsim ships a single registration, "defsim", backed by
// the deterministic tick engine in internal/simulation, but the
// registry stays generic so a host program can register others.
type Simulation interface {
	// Name returns the name of the simulation.
	Name() string

	// Description returns a brief description of what the simulation does.
	Description() string

	// Config describes the parameters Configure accepts, so a CLI or
	// other host can validate input or render help without importing
	// the simulation's own package.
	Config() SimulationConfig

	// Configure sets up the simulation with the provided parameters,
	// typically at minimum a "scenario_path" string.
	Configure(params map[string]interface{}) error

	// Run executes the simulation to completion (or until ctx is
	// cancelled), emitting every structured event to sink.
	Run(ctx context.Context, sink event.Sink) error

	// Stop requests an early, graceful stop of a running simulation.
	Stop() error
}
