package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineAdjacencyOffset(t *testing.T) {
	// Neighbours of E4 load as down, up, right, left and are shifted back
	// to front by the random offset.
	tests := []struct {
		offset int
		want   []string
	}{
		{offset: 0, want: []string{"E5", "E3", "F4", "D4"}},
		{offset: 1, want: []string{"D4", "E5", "E3", "F4"}},
		{offset: 2, want: []string{"F4", "D4", "E5", "E3"}},
		{offset: 3, want: []string{"E3", "F4", "D4", "E5"}},
	}
	for _, test := range tests {
		e := NewEngine(&seqRand{vals: []int{test.offset}})
		e.loadAdjacent(coord(t, "E4"))
		require.Equal(t, coords(t, test.want...), e.AdjacencyQueue(), "offset %d", test.offset)
	}
}

func TestEngineLineMissRotation(t *testing.T) {
	e := NewEngine(&seqRand{})
	for _, s := range []string{"C2", "C3", "C4", "C5"} {
		e.line.PushBack(coord(t, s))
	}

	e.RecordOutcome(coord(t, "J9"), Outcome{})
	require.Equal(t, coords(t, "C3", "C4", "C5", "C2"), e.LineQueue())
	e.RecordOutcome(coord(t, "J8"), Outcome{})
	require.Equal(t, coords(t, "C4", "C5", "C2", "C3"), e.LineQueue())

	// A hit leaves the order alone.
	e.RecordOutcome(coord(t, "C6"), hit())
	require.Equal(t, coords(t, "C4", "C5", "C2", "C3"), e.LineQueue())
}

func TestEnginePopFreshDrainsQueue(t *testing.T) {
	b := NewDefaultBoard()
	e := NewEngine(&seqRand{})
	e.excluded.Add(coord(t, "C2"))
	e.line.PushBack(coord(t, "C2"))
	e.line.PushBack(coord(t, "C3"))

	c, ok := e.popFresh(e.line, b)
	require.True(t, ok)
	require.Equal(t, "C3", c.String())

	_, ok = e.popFresh(e.line, b)
	require.False(t, ok)
	require.Empty(t, e.LineQueue())
}

func TestCoordinateSet(t *testing.T) {
	s := NewCoordinateSet(0, coords(t, "C3", "A1", "C3")...)
	require.Equal(t, 2, s.Len())
	require.Equal(t, coords(t, "A1", "C3"), s.Slice())
	require.True(t, s.Contains(coord(t, "A1")))

	require.True(t, s.Remove(coord(t, "A1")))
	require.False(t, s.Remove(coord(t, "A1")))

	other := NewCoordinateSet(4, coords(t, "B2", "C3")...)
	require.True(t, s.Intersects(other))
	require.True(t, other.Intersects(s))
	require.False(t, s.Intersects(NewCoordinateSet(1, coord(t, "J9"))))

	s.Clear()
	require.True(t, s.IsEmpty())
	require.False(t, s.Intersects(other))
}
