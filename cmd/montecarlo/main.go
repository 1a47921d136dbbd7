// Package main runs one dice simulation from a configuration file and a
// scenario definition.
package main

import (
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/montecarlo/internal/config"
	"github.com/cory-johannsen/montecarlo/internal/observability"
	"github.com/cory-johannsen/montecarlo/internal/simulation"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	scenarioPath := flag.String("scenario", "", "path to scenario YAML; overrides simulation.scenario")
	rolls := flag.Int("rolls", 0, "number of rolls; overrides simulation.rolls and the scenario's rolls")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *scenarioPath != "" {
		cfg.Simulation.Scenario = *scenarioPath
	}
	if *rolls > 0 {
		cfg.Simulation.Rolls = *rolls
		cfg.Simulation.ForceRolls = true
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting simulation",
		zap.String("scenario", cfg.Simulation.Scenario),
		zap.Int("rolls", cfg.Simulation.Rolls),
		zap.Bool("seeded", cfg.Simulation.Seed != 0),
	)

	if _, err := simulation.Run(cfg.Simulation, logger); err != nil {
		logger.Fatal("running simulation", zap.Error(err))
	}
	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
}
