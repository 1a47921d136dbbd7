// Package game groups dice that share a face set, plays them for a number of
// rolls, and exposes the recorded outcome table.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/montecarlo/internal/dice"
)

// ErrInconsistentFaces indicates dice with differing face sets.
var ErrInconsistentFaces = errors.New("inconsistent faces")

// ErrInvalidArgument is dice.ErrInvalidArgument, re-exported for callers that
// only import game.
var ErrInvalidArgument = dice.ErrInvalidArgument

// Game owns an ordered set of dice and the results of the most recent Play.
//
// Invariant: every die exposes the face set of dice[0].
// Invariant: rolls is nil before the first successful Play, otherwise a dense
// NumRolls() × len(dice) table.
//
// Dice are held by reference: weight changes made between Play calls affect
// later plays. A Game is not safe for concurrent mutation.
type Game struct {
	id     string
	dice   []*dice.Die
	roller *dice.Roller
	logger *zap.Logger
	rolls  [][]dice.Face
}

// New builds a game over ds. A nil roller uses dice.DefaultRoller.
//
// Precondition: ds is non-empty and contains no nil dice.
// Postcondition: returns a Game, or an error wrapping ErrInvalidArgument or
// ErrInconsistentFaces.
func New(ds []*dice.Die, roller *dice.Roller, logger *zap.Logger) (*Game, error) {
	if len(ds) == 0 {
		return nil, fmt.Errorf("game: New: at least one die is required: %w", ErrInvalidArgument)
	}
	for i, d := range ds {
		if d == nil {
			return nil, fmt.Errorf("game: New: die %d is nil: %w", i, ErrInvalidArgument)
		}
		if !d.SameFaces(ds[0]) {
			return nil, fmt.Errorf("game: New: die %d faces differ from die 0: %w", i, ErrInconsistentFaces)
		}
	}
	if roller == nil {
		roller = dice.DefaultRoller()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	held := make([]*dice.Die, len(ds))
	copy(held, ds)
	id := uuid.New().String()
	return &Game{
		id:     id,
		dice:   held,
		roller: roller,
		logger: logger.With(zap.String("game_id", id)),
	}, nil
}

// ID returns the game's unique identifier.
func (g *Game) ID() string { return g.id }

// Dice returns the dice in column order. The slice is a copy; the dice are
// shared.
func (g *Game) Dice() []*dice.Die {
	out := make([]*dice.Die, len(g.dice))
	copy(out, g.dice)
	return out
}

// Faces returns the shared face set in the first die's order, or nil for a
// Game not built by New.
func (g *Game) Faces() []dice.Face {
	if len(g.dice) == 0 {
		return nil
	}
	return g.dice[0].Faces()
}

// NumRolls returns the number of rolls recorded by the last Play, or 0.
func (g *Game) NumRolls() int { return len(g.rolls) }

// Played reports whether Play has succeeded at least once.
func (g *Game) Played() bool { return g.rolls != nil }

// Rolls returns a copy of the results table: one row per roll, one column per
// die.
func (g *Game) Rolls() [][]dice.Face {
	out := make([][]dice.Face, len(g.rolls))
	for i, row := range g.rolls {
		out[i] = append([]dice.Face(nil), row...)
	}
	return out
}

// Play rolls every die n times, in die order, and replaces the results table.
//
// Precondition: n >= 1.
// Postcondition: on success NumRolls() == n; on error the previous results
// are kept.
func (g *Game) Play(n int) error {
	if n < 1 {
		return fmt.Errorf("game: Play: num_rolls must be >= 1, got %d: %w", n, ErrInvalidArgument)
	}
	start := time.Now()

	rolls := make([][]dice.Face, n)
	for i := range rolls {
		rolls[i] = make([]dice.Face, len(g.dice))
	}
	for col, d := range g.dice {
		outcomes, err := g.roller.Roll(d, n)
		if err != nil {
			return fmt.Errorf("game: Play: die %d: %w", col, err)
		}
		for row, f := range outcomes {
			rolls[row][col] = f
		}
	}
	g.rolls = rolls

	g.logger.Debug("game played",
		zap.Int("rolls", n),
		zap.Int("dice", len(g.dice)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
