package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlacementFor(t *testing.T) {
	want := []ShipClass{
		Battleship,
		Cruiser, Cruiser,
		Destroyer, Destroyer, Destroyer,
		Submarine, Submarine, Submarine, Submarine,
	}
	for i, class := range want {
		p, err := PlacementFor(i)
		require.NoError(t, err)
		require.Equal(t, class, p.Class, "index %d", i)
		require.Equal(t, i, p.Index)
		require.True(t, p.RequiresDirection)
	}

	for _, i := range []int{-1, FleetSize, 42} {
		_, err := PlacementFor(i)
		require.ErrorIs(t, err, ErrInvalidPlacement)
	}
}

func TestFleetComposition(t *testing.T) {
	fleet := Fleet()
	require.Len(t, fleet, FleetSize)

	cells := 0
	counts := map[ShipClass]int{}
	for _, p := range fleet {
		cells += p.Class.Length()
		counts[p.Class]++
	}
	require.Equal(t, 20, cells)
	require.Equal(t, map[ShipClass]int{Battleship: 1, Cruiser: 2, Destroyer: 3, Submarine: 4}, counts)
}

// requireFleetInvariants checks that no ship touches another one.
func requireFleetInvariants(t *testing.T, b *Board) {
	t.Helper()
	ships := b.Ships()
	for i, a := range ships {
		require.Len(t, a.Occupied(), a.Class().Length())
		for _, c := range a.Occupied() {
			require.True(t, b.contains(c))
		}
		for j, other := range ships {
			if i == j {
				continue
			}
			require.False(t, a.extent.Intersects(other.extent), "%s / %s", a, other)
			require.False(t, a.extent.Intersects(other.buffer), "%s / %s", a, other)
		}
	}
}

func TestPlaceRandomFleet(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		b := NewDefaultBoard()
		require.NoError(t, PlaceRandomFleet(b, 0, rand.New(rand.NewSource(seed))))
		require.Equal(t, FleetSize, b.ShipsAfloat())
		requireFleetInvariants(t, b)

		for i, s := range b.Ships() {
			p, _ := PlacementFor(i)
			require.Equal(t, p.Class, s.Class())
		}
	}
}

func TestPlaceRandomFleetKeepsManualShips(t *testing.T) {
	b := NewDefaultBoard()
	bs, err := b.Place(coord(t, "A0"), Right, Battleship)
	require.NoError(t, err)
	cr, err := b.Place(coord(t, "J9"), Up, Cruiser)
	require.NoError(t, err)

	require.NoError(t, PlaceRandomFleet(b, 2, rand.New(rand.NewSource(7))))
	require.Equal(t, FleetSize, b.ShipsAfloat())
	require.Same(t, bs, b.Ships()[0])
	require.Same(t, cr, b.Ships()[1])
	requireFleetInvariants(t, b)
}

func TestPlaceRandomFleetRejectsIndex(t *testing.T) {
	err := PlaceRandomFleet(NewDefaultBoard(), 11, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, ErrInvalidPlacement)
}

func TestPlaceRandomFleetFullBoard(t *testing.T) {
	b, err := NewBoard(1, 1)
	require.NoError(t, err)
	err = PlaceRandomFleet(b, 0, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, errFleetStuck)
}
