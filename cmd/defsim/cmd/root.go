// Package cmd implements defsim's single-command CLI: load a scenario,
// run the deterministic tick engine to completion, and write an
// after-action report.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/picogrid/defsim/internal/event"
	"github.com/picogrid/defsim/internal/scenario"
	"github.com/picogrid/defsim/pkg/logger"
	"github.com/picogrid/defsim/pkg/report"
	defsimpkg "github.com/picogrid/defsim/pkg/simulation"
)

var (
	logLevel string
	logDir   string
	noColor  bool
	dryRun   bool
	verbose  int
)

var rootCmd = &cobra.Command{
	Use:   "defsim [scenario.yaml]",
	Short: "Deterministic tick-based missile defense engagement simulator",
	Long: `defsim runs a single deterministic, fixed-timestep missile-defense
engagement scenario to completion and writes an after-action report.

With no scenario argument and an interactive terminal, defsim prompts
for a scenario file to run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScenario,
}

func init() {
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logDir, "log-dir", "./reports", "directory to write after-action reports to")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored console output")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "load and validate the scenario, then exit without simulating")
	rootCmd.Flags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (-v, -vv)")

	_ = viper.BindPFlag("log_level", rootCmd.Flags().Lookup("log-level"))
	_ = viper.BindPFlag("log_dir", rootCmd.Flags().Lookup("log-dir"))
	_ = viper.BindPFlag("no_color", rootCmd.Flags().Lookup("no-color"))
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runScenario(_ *cobra.Command, args []string) error {
	logLevel = viper.GetString("log_level")
	logDir = viper.GetString("log_dir")
	noColor = viper.GetBool("no_color")

	level := logLevel
	if verbose >= 2 {
		level = "debug"
	} else if verbose == 1 && level == "info" {
		level = "debug"
	}
	logger.SetLevel(logger.ParseLevel(level))
	logger.SetNoColor(noColor)

	path, err := resolveScenarioPath(args)
	if err != nil {
		return err
	}

	s, err := scenario.Load(path)
	if err != nil {
		return describeLoadFailure(err)
	}

	logger.LogSection(fmt.Sprintf("Scenario: %s", s.Meta.Name))
	logger.Infof("dt=%.3fs t_max=%.1fs groups=%d launchers=%d sensors=%d",
		s.Sim.DtS, s.Sim.TMaxS, len(s.EnemyForces.Groups), len(s.FriendlyForces.Launchers), len(s.FriendlyForces.Sensors))

	if dryRun {
		logger.Success("Scenario loaded and validated; dry-run requested, stopping here.")
		return nil
	}

	runID := uuid.NewString()

	sim, err := defsimpkg.DefaultRegistry.Get("defsim")
	if err != nil {
		return fmt.Errorf("resolve simulation: %w", err)
	}
	logger.Debugf("simulation %q v%s (%s)", sim.Config().Name, sim.Config().Version, sim.Config().Category)
	if err := sim.Configure(map[string]interface{}{"scenario_path": path}); err != nil {
		return fmt.Errorf("configure simulation: %w", err)
	}

	sliceSink := &event.SliceSink{}
	sink := event.MultiSink{Sinks: []event.Sink{sliceSink, report.ConsoleNarrator{}}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("received interrupt, stopping simulation")
		_ = sim.Stop()
		cancel()
	}()

	logger.LogSection(fmt.Sprintf("Starting run %s", runID))
	if err := sim.Run(ctx, sink); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	ds, ok := sim.(*defsimpkg.DefSim)
	if !ok || ds.Engine() == nil {
		logger.Success("Simulation completed")
		return nil
	}

	aar := report.Generate(runID, s.Meta.Name, ds.Engine(), sliceSink.Events)
	jsonPath, err := aar.SaveJSON(logDir)
	if err != nil {
		return fmt.Errorf("save AAR json: %w", err)
	}
	mdPath, err := aar.SaveMarkdown(logDir)
	if err != nil {
		return fmt.Errorf("save AAR markdown: %w", err)
	}

	printSummaryTable(aar)
	logger.Successf("Run complete: %d launched, %d hit, %.1f%% hit rate", aar.MissilesLaunched, aar.MissilesHit, aar.HitRate*100)
	logger.Infof("After-action report written to %s and %s", jsonPath, mdPath)

	return nil
}

func printSummaryTable(aar *report.AAR) {
	t := logger.NewTable("Metric", "Value")
	t.AddRow("Missiles launched", fmt.Sprintf("%d", aar.MissilesLaunched))
	t.AddRow("Hits", fmt.Sprintf("%d", aar.MissilesHit))
	t.AddRow("Hit rate", fmt.Sprintf("%.1f%%", aar.HitRate*100))
	t.AddRow("Self-destructs", fmt.Sprintf("%d", aar.MissilesSelfDestruct))
	t.AddRow("Target lost", fmt.Sprintf("%d", aar.MissilesTargetLost))
	t.AddRow("Out of bounds", fmt.Sprintf("%d", aar.MissilesOutOfBounds))
	t.AddRow("Targets destroyed", fmt.Sprintf("%d", aar.TargetsDestroyed))
	t.AddRow("Targets reached", fmt.Sprintf("%d", aar.TargetsReached))
	t.Print()
}

func describeLoadFailure(err error) error {
	var loadErr *scenario.LoadError
	var validationErr *scenario.ValidationError
	switch {
	case asLoadError(err, &loadErr):
		return fmt.Errorf("scenario load failed: %w", loadErr)
	case asValidationError(err, &validationErr):
		return fmt.Errorf("scenario validation failed: %w", validationErr)
	default:
		return err
	}
}

func asLoadError(err error, target **scenario.LoadError) bool {
	le, ok := err.(*scenario.LoadError)
	if ok {
		*target = le
	}
	return ok
}

func asValidationError(err error, target **scenario.ValidationError) bool {
	ve, ok := err.(*scenario.ValidationError)
	if ok {
		*target = ve
	}
	return ok
}

// resolveScenarioPath returns the scenario path from the positional
// argument, or falls back to an interactive picker when stdin is a
// terminal and none was given.
func resolveScenarioPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("a scenario file path is required (non-interactive session)")
	}

	candidates, _ := filepath.Glob("scenarios/*.yaml")
	if len(candidates) == 0 {
		var path string
		prompt := &survey.Input{Message: "Scenario YAML path:"}
		if err := survey.AskOne(prompt, &path, survey.WithValidator(survey.Required)); err != nil {
			return "", err
		}
		return path, nil
	}

	var selected string
	prompt := &survey.Select{Message: "Select a scenario:", Options: candidates}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}
