package game

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 10
)

// Coordinate is a (column, row) location bound to the dimensions of the
// board it was created for. The zero value is not a valid coordinate.
type Coordinate struct {
	x      int
	y      int
	width  int
	height int
}

func NewCoordinate(x, y, width, height int) (Coordinate, error) {
	if x < 0 || y < 0 || x >= width || y >= height {
		return Coordinate{}, errOutOfBounds(x, y, width, height)
	}
	return Coordinate{x: x, y: y, width: width, height: height}, nil
}

// MustCoordinate is NewCoordinate for values known to be valid.
func MustCoordinate(x, y, width, height int) Coordinate {
	c, err := NewCoordinate(x, y, width, height)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coordinate) X() int      { return c.x }
func (c Coordinate) Y() int      { return c.y }
func (c Coordinate) Width() int  { return c.width }
func (c Coordinate) Height() int { return c.height }

// Less orders by column first, then by row.
func (c Coordinate) Less(other Coordinate) bool {
	return c.Compare(other) < 0
}

func (c Coordinate) Compare(other Coordinate) int {
	switch {
	case c.x < other.x:
		return -1
	case c.x > other.x:
		return 1
	case c.y < other.y:
		return -1
	case c.y > other.y:
		return 1
	}
	return 0
}

// Translate returns the coordinate offset by (dx, dy) on the same board.
func (c Coordinate) Translate(dx, dy int) (Coordinate, error) {
	return NewCoordinate(c.x+dx, c.y+dy, c.width, c.height)
}

// Step moves n cells in direction dir.
func (c Coordinate) Step(dir Direction, n int) (Coordinate, error) {
	dx, dy := dir.Delta()
	return c.Translate(dx*n, dy*n)
}

// Neighbors returns the orthogonally adjacent coordinates inside the
// board, in the order down, up, right, left.
func (c Coordinate) Neighbors() []Coordinate {
	adj := make([]Coordinate, 0, 4)
	for _, dir := range []Direction{Down, Up, Right, Left} {
		if n, err := c.Step(dir, 1); err == nil {
			adj = append(adj, n)
		}
	}
	return adj
}

func (c Coordinate) fits(width, height int) bool {
	return c.width == width && c.height == height &&
		c.x >= 0 && c.y >= 0 && c.x < width && c.y < height
}

// String formats the coordinate as a column letter followed by the row
// number, e.g. "E4".
func (c Coordinate) String() string {
	if c.x < 26 {
		return fmt.Sprintf("%c%d", 'A'+c.x, c.y)
	}
	return fmt.Sprintf("(%d,%d)", c.x, c.y)
}

// ParseCoordinate converts notation such as "A4" to a Coordinate on a
// width x height board. The column letter is case-insensitive.
func ParseCoordinate(s string, width, height int) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Coordinate{}, fmt.Errorf("invalid coordinate: %q", s)
	}
	col := strings.ToUpper(s[:1])[0]
	if col < 'A' || col > 'Z' {
		return Coordinate{}, fmt.Errorf("invalid column: %q", s[:1])
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid row: %q", s[1:])
	}
	return NewCoordinate(int(col-'A'), row, width, height)
}

// Direction is the axis a ship extends along from its origin.
type Direction int

const (
	Down Direction = iota
	Up
	Right
	Left
)

var directionNames = map[Direction]string{
	Down:  "down",
	Up:    "up",
	Right: "right",
	Left:  "left",
}

func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

// Delta is the unit step of the direction; y grows downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Down:
		return 0, 1
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Left:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) Horizontal() bool {
	return d == Right || d == Left
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts "down", "up", "right", "left" or their first
// letter, in any case.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if s == name || (len(s) == 1 && s[0] == name[0]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidPlacement, s)
}
