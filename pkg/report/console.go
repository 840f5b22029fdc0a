package report

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/picogrid/defsim/internal/event"
)

var (
	colorLaunch = color.New(color.FgCyan)
	colorPhase  = color.New(color.FgHiBlack)
	colorHit    = color.New(color.FgGreen, color.Bold)
	colorLoss   = color.New(color.FgRed)
	colorSensor = color.New(color.FgYellow)
)

// ConsoleNarrator is an event.Sink that prints a live, colorized line
// per event to stdout. It is purely a presentation concern, separate
// from the structured logrus output in pkg/logger.
type ConsoleNarrator struct{}

func (ConsoleNarrator) Emit(e event.Event) {
	line := fmt.Sprintf("[t=%7.1fs] %s", e.Time, describe(e))

	switch e.Type {
	case event.MissileLaunched:
		colorLaunch.Println(line)
	case event.MissilePhaseTransition:
		colorPhase.Println(line)
	case event.MissileHit, event.TargetDestroyed:
		colorHit.Println(line)
	case event.MissileSelfDestruct, event.MissileOutOfBounds, event.TargetReached:
		colorLoss.Println(line)
	case event.SensorFirstDetected, event.SensorLost:
		colorSensor.Println(line)
	default:
		fmt.Println(line)
	}
}
