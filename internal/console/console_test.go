package console

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/krishanu7/sinkorsail/internal/game"
	"github.com/stretchr/testify/require"
)

func seeded(seed int64) func() game.Rand {
	return func() game.Rand { return rand.New(rand.NewSource(seed)) }
}

// computerFleet replays the layout a match seeded with seed gives the
// computer.
func computerFleet(t *testing.T, seed int64) []string {
	t.Helper()
	b := game.NewDefaultBoard()
	require.NoError(t, game.PlaceRandomFleet(b, 0, rand.New(rand.NewSource(seed))))
	var cells []string
	for _, s := range b.Ships() {
		for _, c := range s.Occupied() {
			cells = append(cells, c.String())
		}
	}
	return cells
}

func TestRenderBoard(t *testing.T) {
	b, err := game.NewBoard(3, 2)
	require.NoError(t, err)
	_, err = b.Place(game.MustCoordinate(0, 0, 3, 2), game.Right, game.Destroyer)
	require.NoError(t, err)
	_, err = b.ReceiveGuess(game.MustCoordinate(2, 1, 3, 2))
	require.NoError(t, err)

	want := "\nAhab\n" +
		"  A B C\n" +
		"0 D D ~\n" +
		"1 ~ ~ .\n" +
		"Ships Afloat: 1\n"
	require.Equal(t, want, RenderBoard("Ahab", b, game.ViewOwn))
}

func TestPlayWins(t *testing.T) {
	const seed = 21
	input := []string{"1", "Ahab", "auto", "hello", "Z9"}
	targets := computerFleet(t, seed)
	input = append(input, targets[0], targets[0])
	input = append(input, targets[1:]...)
	input = append(input, "2")

	var out bytes.Buffer
	c := New(strings.NewReader(strings.Join(input, "\n")+"\n"), &out, seeded(seed), nil)
	require.NoError(t, c.Run())

	text := out.String()
	require.Contains(t, text, "Invalid input.")
	require.Contains(t, text, "Out of bounds.")
	require.Contains(t, text, "You've already guessed there. Try again.")
	require.Contains(t, text, "You sank opponent's battleship!")
	require.Contains(t, text, "Round: 20\n")
	require.Contains(t, text, "Winner! (20 rounds)")
	require.NotContains(t, text, "You Lose.")
}

func TestPlaceFleetPrompts(t *testing.T) {
	input := []string{
		"Ahab",
		"H0", "right", // battleship runs off the board
		"A0", "sideways", "right",
		"B1", // inside the battleship's buffer, rejected before the direction
		"auto",
	}
	var out bytes.Buffer
	c := New(strings.NewReader(strings.Join(input, "\n")+"\n"), &out, seeded(3), nil)

	// Input ends at the first guess.
	require.Error(t, c.Play())

	text := out.String()
	require.Contains(t, text, "Place your battleship! (4x1)")
	require.Contains(t, text, "Extension Out of Bounds. Try Again.")
	require.Contains(t, text, "Input must be one of the following")
	require.Contains(t, text, "Place your cruiser! (3x1)")
	require.Contains(t, text, "Ship Overlap. Try Again.")
	require.Equal(t, 3, strings.Count(text, "Enter direction: "))
	require.Contains(t, text, "0 B B B B")
	require.Contains(t, text, "Round: 1\n")
}

func TestRunQuit(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, New(strings.NewReader("q\n"), &out, seeded(1), nil).Run())
	require.Contains(t, out.String(), "1. Play\n2. Quit")

	out.Reset()
	require.NoError(t, New(strings.NewReader(""), &out, seeded(1), nil).Run())
}
