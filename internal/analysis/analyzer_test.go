package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/montecarlo/internal/analysis"
	"github.com/cory-johannsen/montecarlo/internal/dice"
	"github.com/cory-johannsen/montecarlo/internal/game"
)

type scriptedSource struct {
	vals []uint64
	i    int
}

func (s *scriptedSource) Uint64() uint64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

const (
	low = 0       // first face of a uniform die
	mid = 1 << 63 // middle face of a uniform three-face die
)

func newGame(t require.TestingT, src dice.Source, nDice int, faces ...float64) *game.Game {
	ds := make([]*dice.Die, nDice)
	for i := range ds {
		d, err := dice.NewNumeric(faces...)
		require.NoError(t, err)
		ds[i] = d
	}
	g, err := game.New(ds, dice.NewRoller(src, zap.NewNop()), nil)
	require.NoError(t, err)
	return g
}

// exampleAnalyzer plays two {1,2,3} dice to the outcomes (1,1), (1,2), (2,1).
func exampleAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	src := &scriptedSource{vals: []uint64{low, low, mid, low, mid, low}}
	g := newGame(t, src, 2, 1, 2, 3)
	require.NoError(t, g.Play(3))
	a, err := analysis.New(g)
	require.NoError(t, err)
	return a
}

func faces(vs ...float64) []dice.Face {
	out := make([]dice.Face, len(vs))
	for i, v := range vs {
		out[i] = dice.Num(v)
	}
	return out
}

func TestNew_RejectsNil(t *testing.T) {
	_, err := analysis.New(nil)
	assert.ErrorIs(t, err, analysis.ErrTypeMismatch)
}

func TestJackpot_Example(t *testing.T) {
	assert.Equal(t, 1, exampleAnalyzer(t).Jackpot())
}

func TestComboCount_Example(t *testing.T) {
	assert.Equal(t, []analysis.Count{
		{Outcome: faces(1, 2), Count: 2},
		{Outcome: faces(1, 1), Count: 1},
	}, exampleAnalyzer(t).ComboCount())
}

func TestPermutationCount_Example(t *testing.T) {
	assert.Equal(t, []analysis.Count{
		{Outcome: faces(1, 1), Count: 1},
		{Outcome: faces(1, 2), Count: 1},
		{Outcome: faces(2, 1), Count: 1},
	}, exampleAnalyzer(t).PermutationCount())
}

func TestFaceCountsPerRoll_Example(t *testing.T) {
	got := exampleAnalyzer(t).FaceCountsPerRoll()
	assert.Equal(t, faces(1, 2, 3), got.Faces)
	assert.Equal(t, []analysis.FaceCountRow{
		{Roll: 1, Counts: []int{2, 0, 0}},
		{Roll: 2, Counts: []int{1, 1, 0}},
		{Roll: 3, Counts: []int{1, 1, 0}},
	}, got.Rows)
}

func TestCount_String(t *testing.T) {
	c := analysis.Count{Outcome: []dice.Face{dice.Text("H"), dice.Text("T")}, Count: 3}
	assert.Equal(t, "(H, T)", c.String())
}

func TestFaceCountsPerRoll_SortsTextFaces(t *testing.T) {
	a, err := dice.NewText("tails", "heads")
	require.NoError(t, err)
	g, err := game.New([]*dice.Die{a}, dice.NewRoller(dice.NewSeededSource(1), zap.NewNop()), nil)
	require.NoError(t, err)
	require.NoError(t, g.Play(5))
	an, err := analysis.New(g)
	require.NoError(t, err)
	assert.Equal(t, []dice.Face{dice.Text("heads"), dice.Text("tails")}, an.FaceCountsPerRoll().Faces)
}

func TestAnalyzer_UnplayedGameIsEmpty(t *testing.T) {
	g := newGame(t, dice.NewSeededSource(1), 2, 1, 2, 3)
	a, err := analysis.New(g)
	require.NoError(t, err)

	assert.Zero(t, a.Jackpot())
	assert.Empty(t, a.ComboCount())
	assert.Empty(t, a.PermutationCount())
	fc := a.FaceCountsPerRoll()
	assert.Empty(t, fc.Rows)
	assert.Len(t, fc.Faces, 3)
}

func TestAnalyzer_SeesLaterPlays(t *testing.T) {
	g := newGame(t, dice.NewSeededSource(2), 1, 1, 2)
	a, err := analysis.New(g)
	require.NoError(t, err)
	require.NoError(t, g.Play(7))
	assert.Equal(t, 7, a.Jackpot())
}

func TestAnalyzer_DoesNotMutateGame(t *testing.T) {
	src := &scriptedSource{vals: []uint64{mid, low}}
	g := newGame(t, src, 2, 1, 2, 3)
	require.NoError(t, g.Play(1))
	before := g.Rolls()

	a, err := analysis.New(g)
	require.NoError(t, err)
	_ = a.ComboCount()
	_ = a.PermutationCount()
	assert.Equal(t, before, g.Rolls())
	assert.Equal(t, faces(2, 1), g.Rolls()[0])
}

func TestNew_RejectsZeroGame(t *testing.T) {
	_, err := analysis.New(&game.Game{})
	assert.ErrorIs(t, err, analysis.ErrTypeMismatch)
}

func TestCountsTextLabelsWithSeparators(t *testing.T) {
	// ("a,", "") and ("a", ",") both join to "a,," without quoting.
	ds := make([]*dice.Die, 2)
	for i := range ds {
		d, err := dice.NewText("a,", ",", "a", "")
		require.NoError(t, err)
		ds[i] = d
	}
	// Uniform four-face die: 0 picks face 0, 3<<61 face 1, 5<<61 face 2, 7<<61 face 3.
	src := &scriptedSource{vals: []uint64{0, 5 << 61, 7 << 61, 3 << 61}}
	g, err := game.New(ds, dice.NewRoller(src, zap.NewNop()), nil)
	require.NoError(t, err)
	require.NoError(t, g.Play(2))
	require.Equal(t, [][]dice.Face{
		{dice.Text("a,"), dice.Text("")},
		{dice.Text("a"), dice.Text(",")},
	}, g.Rolls())

	a, err := analysis.New(g)
	require.NoError(t, err)
	assert.Equal(t, []analysis.Count{
		{Outcome: []dice.Face{dice.Text("a"), dice.Text(",")}, Count: 1},
		{Outcome: []dice.Face{dice.Text("a,"), dice.Text("")}, Count: 1},
	}, a.PermutationCount())
	assert.Len(t, a.ComboCount(), 2)
}

// TestAnalyzer_Property checks count totals and jackpot bounds for arbitrary
// games.
func TestAnalyzer_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		nDice := rapid.IntRange(1, 5).Draw(rt, "dice")
		n := rapid.IntRange(1, 150).Draw(rt, "rolls")
		sides := rapid.IntRange(1, 6).Draw(rt, "sides")
		fs := make([]float64, sides)
		for i := range fs {
			fs[i] = float64(i + 1)
		}
		g := newGame(rt, dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), nDice, fs...)
		require.NoError(rt, g.Play(n))
		a, err := analysis.New(g)
		require.NoError(rt, err)

		jackpots := a.Jackpot()
		assert.LessOrEqual(rt, jackpots, n)
		if nDice == 1 {
			assert.Equal(rt, n, jackpots)
		}

		sum := func(cs []analysis.Count) int {
			total := 0
			for _, c := range cs {
				total += c.Count
			}
			return total
		}
		combos := a.ComboCount()
		perms := a.PermutationCount()
		assert.Equal(rt, n, sum(combos))
		assert.Equal(rt, n, sum(perms))
		assert.LessOrEqual(rt, len(combos), len(perms))

		for _, row := range a.FaceCountsPerRoll().Rows {
			total := 0
			for _, c := range row.Counts {
				total += c
			}
			assert.Equal(rt, nDice, total)
		}
	})
}
