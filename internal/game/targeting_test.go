package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// seqRand replays fixed values, each reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func hit() Outcome { return Outcome{Hit: true} }

func TestEngineFollowsLine(t *testing.T) {
	b := NewDefaultBoard()
	e := NewEngine(&seqRand{})

	e.RecordOutcome(coord(t, "E4"), hit())
	require.Equal(t, PhaseAdjacent, e.Phase())
	e.RecordOutcome(coord(t, "E5"), hit())

	require.Equal(t, PhaseFollow, e.Phase())
	require.Equal(t, coords(t, "E4", "E5"), e.Streak())
	require.Equal(t, coords(t, "E6", "E7", "E3", "E2"), e.LineQueue())

	// Miss rotates the line so the other end comes up next.
	e.RecordOutcome(coord(t, "E6"), Outcome{})
	require.Equal(t, coords(t, "E7", "E3", "E2", "E6"), e.LineQueue())

	c, err := e.SelectGuess(b)
	require.NoError(t, err)
	require.Equal(t, "E7", c.String())
}

func TestEngineLineSkipsExcluded(t *testing.T) {
	e := NewEngine(&seqRand{})
	e.RecordOutcome(coord(t, "E6"), Outcome{})
	e.RecordOutcome(coord(t, "E4"), hit())
	e.RecordOutcome(coord(t, "E5"), hit())
	require.Equal(t, coords(t, "E7", "E3", "E2"), e.LineQueue())
}

func TestEngineLineMissAsymmetry(t *testing.T) {
	b := NewDefaultBoard()
	e := NewEngine(&seqRand{})
	e.RecordOutcome(coord(t, "E4"), hit())
	e.RecordOutcome(coord(t, "E5"), hit())

	// The guess is popped before the miss is recorded, so the rotation
	// moves E7 behind the far end of the line.
	c, err := e.SelectGuess(b)
	require.NoError(t, err)
	require.Equal(t, "E6", c.String())
	e.RecordOutcome(c, Outcome{})
	require.Equal(t, coords(t, "E3", "E2", "E7"), e.LineQueue())

	c, err = e.SelectGuess(b)
	require.NoError(t, err)
	require.Equal(t, "E3", c.String())
	e.RecordOutcome(c, Outcome{})
	require.Equal(t, coords(t, "E7", "E2"), e.LineQueue())

	c, err = e.SelectGuess(b)
	require.NoError(t, err)
	require.Equal(t, "E7", c.String())
}

func TestEngineFollowHitKeepsStreak(t *testing.T) {
	b := NewDefaultBoard()
	e := NewEngine(&seqRand{})
	e.RecordOutcome(coord(t, "E4"), hit())
	e.RecordOutcome(coord(t, "E5"), hit())

	c, err := e.SelectGuess(b)
	require.NoError(t, err)
	e.RecordOutcome(c, hit())
	require.Equal(t, coords(t, "E4", "E5"), e.Streak())
	require.Equal(t, coords(t, "E7", "E3", "E2"), e.LineQueue())
}

func TestEngineTriesNeighbours(t *testing.T) {
	b := NewDefaultBoard()
	e := NewEngine(&seqRand{vals: []int{1}})
	e.RecordOutcome(coord(t, "E4"), hit())

	// Down, up, right, left rotated right by one.
	c, err := e.SelectGuess(b)
	require.NoError(t, err)
	require.Equal(t, "D4", c.String())
	require.Equal(t, coords(t, "E5", "E3", "F4"), e.AdjacencyQueue())
	require.True(t, e.IsExcluded(c))

	e.RecordOutcome(c, Outcome{})
	c, err = e.SelectGuess(b)
	require.NoError(t, err)
	require.Equal(t, "E5", c.String())
}

func TestEngineNeighboursSkipExcluded(t *testing.T) {
	b := NewDefaultBoard()
	e := NewEngine(&seqRand{})
	e.RecordOutcome(coord(t, "E5"), Outcome{})
	e.RecordOutcome(coord(t, "D4"), Outcome{})
	e.RecordOutcome(coord(t, "E4"), hit())

	c, err := e.SelectGuess(b)
	require.NoError(t, err)
	require.Equal(t, "E3", c.String())
	require.Equal(t, coords(t, "F4"), e.AdjacencyQueue())
}

func TestEngineCornerNeighbours(t *testing.T) {
	b := NewDefaultBoard()
	e := NewEngine(&seqRand{})
	e.RecordOutcome(coord(t, "A0"), hit())

	var tried []string
	for range 2 {
		c, err := e.SelectGuess(b)
		require.NoError(t, err)
		tried = append(tried, c.String())
		e.RecordOutcome(c, Outcome{})
	}
	require.Equal(t, []string{"A1", "B0"}, tried)

	// Nothing left around the hit: the streak is dropped.
	c, err := e.SelectGuess(b)
	require.NoError(t, err)
	require.NotContains(t, []string{"A0", "A1", "B0"}, c.String())
	require.Empty(t, e.Streak())
	require.Equal(t, PhaseSearch, e.Phase())
}

func TestEngineSinkExcludesBuffer(t *testing.T) {
	b := NewDefaultBoard()
	_, err := b.Place(coord(t, "C3"), Right, Destroyer)
	require.NoError(t, err)
	e := NewEngine(&seqRand{})

	for _, s := range []string{"C3", "D3"} {
		c := coord(t, s)
		o, err := b.ReceiveGuess(c)
		require.NoError(t, err)
		e.RecordOutcome(c, o)
	}

	require.Empty(t, e.Streak())
	require.Empty(t, e.LineQueue())
	require.Empty(t, e.AdjacencyQueue())
	require.Equal(t, PhaseSearch, e.Phase())
	require.Equal(t, coords(t, "B3", "C2", "C3", "C4", "D2", "D3", "D4", "E3"), e.Excluded())
}

func TestEngineStreakOverflow(t *testing.T) {
	b := NewDefaultBoard()
	e := NewEngine(&seqRand{})
	e.streak = coords(t, "E4", "E5", "E6")
	e.line.PushBack(coord(t, "E7"))

	c, err := e.SelectGuess(b)
	require.NoError(t, err)
	require.Empty(t, e.Streak())
	require.Empty(t, e.LineQueue())
	require.Equal(t, "A0", c.String())
}

func TestEngineSearchExcludesEachGuess(t *testing.T) {
	b := NewDefaultBoard()
	e := NewEngine(rand.New(rand.NewSource(3)))

	for i := 1; i <= 30; i++ {
		c, err := e.SelectGuess(b)
		require.NoError(t, err)
		require.True(t, e.IsExcluded(c))
		require.Len(t, e.Excluded(), i)
		e.RecordOutcome(c, Outcome{})
	}
}

func TestEngineNoCandidates(t *testing.T) {
	b, err := NewBoard(2, 1)
	require.NoError(t, err)
	e := NewEngine(rand.New(rand.NewSource(1)))

	seen := map[Coordinate]bool{}
	for range 2 {
		c, err := e.SelectGuess(b)
		require.NoError(t, err)
		require.False(t, seen[c])
		seen[c] = true
	}
	_, err = e.SelectGuess(b)
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestEnginePlaysFullGame(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		b := NewDefaultBoard()
		require.NoError(t, PlaceRandomFleet(b, 0, rand.New(rand.NewSource(seed))))
		e := NewEngine(rand.New(rand.NewSource(seed * 31)))

		for !b.AllSunk() {
			c, o, err := e.Guess(b)
			require.NoError(t, err, "seed %d", seed)
			require.True(t, b.Guessed(c))
			if o.Sunk {
				for _, n := range o.Ship.Buffer() {
					require.True(t, e.IsExcluded(n))
				}
			}
		}
		require.LessOrEqual(t, b.GuessCount(), DefaultWidth*DefaultHeight)

		// Keep drawing until the board runs dry; no cell comes up twice.
		for {
			_, err := e.SelectGuess(b)
			if err != nil {
				require.ErrorIs(t, err, ErrNoCandidates)
				break
			}
		}
		require.Len(t, e.Excluded(), DefaultWidth*DefaultHeight)
	}
}
