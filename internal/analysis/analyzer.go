// Package analysis computes statistics over the results of a played game.
package analysis

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cory-johannsen/montecarlo/internal/dice"
	"github.com/cory-johannsen/montecarlo/internal/game"
)

// ErrTypeMismatch indicates the Analyzer was not given a game.
var ErrTypeMismatch = errors.New("type mismatch")

// Analyzer is a read-only view over a Game's results. Every method reads the
// game's current results table; none of them mutate the game.
//
// An unplayed game yields zero counts and empty results.
type Analyzer struct {
	game *game.Game
}

// New wraps g.
//
// Postcondition: returns an Analyzer, or an error wrapping ErrTypeMismatch
// when g is nil or holds no dice (a zero Game rather than one from game.New).
func New(g *game.Game) (*Analyzer, error) {
	if g == nil {
		return nil, fmt.Errorf("analysis: New: a game is required: %w", ErrTypeMismatch)
	}
	if len(g.Dice()) == 0 {
		return nil, fmt.Errorf("analysis: New: game has no dice: %w", ErrTypeMismatch)
	}
	return &Analyzer{game: g}, nil
}

// Jackpot returns the number of rolls in which every die shows the same face.
//
// Postcondition: 0 <= result <= game.NumRolls().
func (a *Analyzer) Jackpot() int {
	n := 0
	for _, row := range a.game.Rolls() {
		if allSame(row) {
			n++
		}
	}
	return n
}

func allSame(row []dice.Face) bool {
	for _, f := range row[1:] {
		if f != row[0] {
			return false
		}
	}
	return true
}

// FaceCountRow holds, for one roll, how many dice landed on each face.
// Counts is indexed like FaceCounts.Faces.
type FaceCountRow struct {
	Roll   int
	Counts []int
}

// FaceCounts is a roll × face table of occurrence counts.
type FaceCounts struct {
	Faces []dice.Face
	Rows  []FaceCountRow
}

// FaceCountsPerRoll counts, for every roll, how many dice landed on each face
// of the shared face set. Faces are ordered by dice.Face.Compare and roll
// numbers start at 1.
//
// Postcondition: every row's counts sum to the number of dice.
func (a *Analyzer) FaceCountsPerRoll() FaceCounts {
	faces := a.game.Faces()
	slices.SortFunc(faces, dice.Face.Compare)
	col := make(map[dice.Face]int, len(faces))
	for i, f := range faces {
		col[f] = i
	}

	rolls := a.game.Rolls()
	rows := make([]FaceCountRow, len(rolls))
	for i, row := range rolls {
		counts := make([]int, len(faces))
		for _, f := range row {
			counts[col[f]]++
		}
		rows[i] = FaceCountRow{Roll: i + 1, Counts: counts}
	}
	return FaceCounts{Faces: faces, Rows: rows}
}

// Count is the number of rolls that produced Outcome.
type Count struct {
	Outcome []dice.Face
	Count   int
}

// String renders the outcome as a parenthesized tuple, e.g. "(1, 2)".
func (c Count) String() string {
	labels := make([]string, len(c.Outcome))
	for i, f := range c.Outcome {
		labels[i] = f.String()
	}
	return "(" + strings.Join(labels, ", ") + ")"
}

// ComboCount groups rolls by their order-insensitive outcome, represented as
// the outcome sorted by dice.Face.Compare.
//
// Postcondition: counts sum to game.NumRolls(); results are ordered by
// descending count, then by outcome.
func (a *Analyzer) ComboCount() []Count {
	return groupBy(a.game.Rolls(), func(row []dice.Face) []dice.Face {
		slices.SortFunc(row, dice.Face.Compare)
		return row
	})
}

// PermutationCount groups rolls by their ordered outcome, die order preserved.
//
// Postcondition: as ComboCount.
func (a *Analyzer) PermutationCount() []Count {
	return groupBy(a.game.Rolls(), func(row []dice.Face) []dice.Face { return row })
}

// groupBy counts rolls by projection(row). projection may reorder row in place.
func groupBy(rolls [][]dice.Face, projection func([]dice.Face) []dice.Face) []Count {
	index := make(map[string]int)
	var out []Count
	for _, row := range rolls {
		outcome := projection(row)
		k := key(outcome)
		if i, ok := index[k]; ok {
			out[i].Count++
			continue
		}
		index[k] = len(out)
		out = append(out, Count{Outcome: outcome, Count: 1})
	}
	slices.SortFunc(out, func(x, y Count) int {
		if x.Count != y.Count {
			return y.Count - x.Count
		}
		return slices.CompareFunc(x.Outcome, y.Outcome, dice.Face.Compare)
	})
	return out
}

// key encodes an outcome unambiguously; text labels are quoted so separators
// inside labels cannot collide.
func key(outcome []dice.Face) string {
	var b strings.Builder
	for i, f := range outcome {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(f.String()))
	}
	return b.String()
}
