package main

//go:generate go run github.com/wippyai/joltbridge/cmd/vtablegen

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/joltbridge/foreign"
	"github.com/wippyai/joltbridge/physics"
)

func main() {
	var (
		configPath  = flag.String("config", "", "TOML file with the foreign library settings")
		steps       = flag.Int("steps", 1, "Number of steps to run")
		bodies      = flag.String("bodies", "static,dynamic", "Bodies to create (comma-separated layers)")
		maxBodies   = flag.Uint("max", uint(physics.DefaultPhysicsSettings().MaxBodies), "Maximum number of bodies")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log library internals")
	)
	flag.Parse()

	if err := setup(*configPath, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer physics.Shutdown(context.Background())

	settings := physics.DefaultPhysicsSettings()
	settings.MaxBodies = uint32(*maxBodies)

	var err error
	if *interactive {
		err = runInteractive(settings)
	} else {
		err = run(settings, *bodies, *steps)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(configPath string, verbose bool) error {
	cfg := foreign.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = foreign.LoadConfig(configPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		physics.SetLogger(logger.Named("physics"))
		foreign.SetLogger(logger.Named("foreign"))
	}
	if err := physics.Initialize(context.Background(), cfg); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return nil
}

func run(settings physics.PhysicsSettings, bodiesStr string, steps int) error {
	ctx := context.Background()

	s, err := newScene(ctx, settings)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer s.close()

	for _, name := range strings.Split(bodiesStr, ",") {
		if name == "" {
			continue
		}
		layer, err := parseLayer(name)
		if err != nil {
			return err
		}
		id, err := s.add(ctx, layer)
		if err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		fmt.Printf("body %d: %s\n", id, layerName(layer))
	}
	printLines(s.drain())

	for i := range steps {
		n, err := s.step(ctx)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Printf("\nstep %d: %d contacts\n", i+1, n)
		printLines(s.drain())
	}
	return nil
}

func printLines(lines []string) {
	for _, l := range lines {
		fmt.Printf("  %s\n", l)
	}
}
