// Package simulation wires a scenario, a game, and an analyzer into a single
// configured run.
package simulation

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/montecarlo/internal/analysis"
	"github.com/cory-johannsen/montecarlo/internal/config"
	"github.com/cory-johannsen/montecarlo/internal/dice"
	"github.com/cory-johannsen/montecarlo/internal/game"
	"github.com/cory-johannsen/montecarlo/internal/scenario"
)

// Report is the structured outcome of one run.
type Report struct {
	GameID    string
	Scenario  string
	Rolls     int
	Dice      int
	Jackpots  int
	Table     game.Table
	FaceCount analysis.FaceCounts
	// Combos and Permutations hold at most cfg.Top entries, most frequent first.
	Combos       []analysis.Count
	Permutations []analysis.Count
}

// Run loads the configured scenario, plays it, and analyzes the results.
// The scenario's own roll count wins over cfg.Rolls when set, unless
// cfg.ForceRolls is true.
//
// Precondition: cfg has passed config.Validate; logger is non-nil.
// Postcondition: returns a Report or a non-nil error.
func Run(cfg config.SimulationConfig, logger *zap.Logger) (Report, error) {
	start := time.Now()

	s, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return Report{}, fmt.Errorf("loading scenario: %w", err)
	}
	form, err := game.ParseForm(cfg.Form)
	if err != nil {
		return Report{}, err
	}

	g, err := s.Game(dice.NewRoller(SourceFor(cfg.Seed), logger), logger)
	if err != nil {
		return Report{}, fmt.Errorf("building game: %w", err)
	}
	if err := g.Play(rollsFor(cfg, s)); err != nil {
		return Report{}, err
	}

	an, err := analysis.New(g)
	if err != nil {
		return Report{}, err
	}
	tbl, err := g.Show(form)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		GameID:       g.ID(),
		Scenario:     s.Name,
		Rolls:        g.NumRolls(),
		Dice:         len(g.Dice()),
		Jackpots:     an.Jackpot(),
		Table:        tbl,
		FaceCount:    an.FaceCountsPerRoll(),
		Combos:       head(an.ComboCount(), cfg.Top),
		Permutations: head(an.PermutationCount(), cfg.Top),
	}
	logger.Info("simulation complete",
		zap.String("game_id", r.GameID),
		zap.String("scenario", r.Scenario),
		zap.Int("rolls", r.Rolls),
		zap.Int("dice", r.Dice),
		zap.Int("jackpots", r.Jackpots),
		zap.Int("table_rows", len(r.Table.Rows)),
		zap.Duration("elapsed", time.Since(start)),
	)
	for _, c := range r.Combos {
		logger.Info("combo", zap.Stringer("outcome", c), zap.Int("count", c.Count))
	}
	return r, nil
}

func rollsFor(cfg config.SimulationConfig, s *scenario.Scenario) int {
	if s.Rolls > 0 && !cfg.ForceRolls {
		return s.Rolls
	}
	return cfg.Rolls
}

// SourceFor returns a seeded source for a non-zero seed and crypto/rand
// otherwise.
func SourceFor(seed uint64) dice.Source {
	if seed == 0 {
		return dice.NewCryptoSource()
	}
	return dice.NewSeededSource(seed)
}

func head(cs []analysis.Count, n int) []analysis.Count {
	if len(cs) > n {
		return cs[:n]
	}
	return cs
}
