package console

import (
	"fmt"
	"strings"

	"github.com/krishanu7/sinkorsail/internal/game"
)

// RenderBoard draws b as a labelled grid under name, followed by the
// number of ships still afloat.
func RenderBoard(name string, b *game.Board, view game.View) string {
	var sb strings.Builder
	sb.WriteString("\n" + name + "\n")

	sb.WriteString(" ")
	for x := range b.Width() {
		fmt.Fprintf(&sb, " %c", 'A'+x)
	}
	sb.WriteString("\n")

	for y, row := range b.Render(view) {
		fmt.Fprintf(&sb, "%d", y)
		for _, s := range row {
			fmt.Fprintf(&sb, " %c", rune(s))
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Ships Afloat: %d\n", b.ShipsAfloat())
	return sb.String()
}
