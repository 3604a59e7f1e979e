package game

import (
	"fmt"
	"slices"
)

// Symbol is a single cell of a rendered board.
type Symbol rune

const (
	SymbolWater  Symbol = '~'
	SymbolHit    Symbol = 'X'
	SymbolMiss   Symbol = '.'
	SymbolBuffer Symbol = '#'
)

// View selects what a rendered board reveals.
type View int

const (
	// ViewOwn shows ships, hits and misses.
	ViewOwn View = iota
	// ViewPlacement is ViewOwn plus the buffer around every ship.
	ViewPlacement
	// ViewOpponent shows only hits and misses.
	ViewOpponent
)

// Outcome is the result of a guess. The zero value is a miss.
type Outcome struct {
	Hit   bool
	Sunk  bool
	Class ShipClass
	// Ship is the ship that was hit, nil on a miss.
	Ship *Ship
}

func (o Outcome) String() string {
	switch {
	case o.Sunk:
		return "sunk " + o.Class.String()
	case o.Hit:
		return "hit " + o.Class.String()
	}
	return "miss"
}

type Board struct {
	width   int
	height  int
	ships   []*Ship
	sunk    []*Ship
	guesses *CoordinateSet
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid board size %dx%d", width, height)
	}
	return &Board{
		width:   width,
		height:  height,
		guesses: NewCoordinateSet(width * height),
	}, nil
}

// NewDefaultBoard returns an empty 10x10 board.
func NewDefaultBoard() *Board {
	b, _ := NewBoard(DefaultWidth, DefaultHeight)
	return b
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) Coordinate(x, y int) (Coordinate, error) {
	return NewCoordinate(x, y, b.width, b.height)
}

// Parse reads notation such as "E4" against this board's dimensions.
func (b *Board) Parse(s string) (Coordinate, error) {
	return ParseCoordinate(s, b.width, b.height)
}

// Coordinates lists every cell of the board in ascending order.
func (b *Board) Coordinates() []Coordinate {
	all := make([]Coordinate, 0, b.width*b.height)
	for x := range b.width {
		for y := range b.height {
			all = append(all, Coordinate{x: x, y: y, width: b.width, height: b.height})
		}
	}
	return all
}

func (b *Board) contains(c Coordinate) bool {
	return c.fits(b.width, b.height)
}

// Place puts a ship of class on the board starting at origin and
// extending along dir.
func (b *Board) Place(origin Coordinate, dir Direction, class ShipClass) (*Ship, error) {
	if !b.contains(origin) {
		return nil, errOutOfBounds(origin.x, origin.y, b.width, b.height)
	}
	cells, err := shipCells(origin, dir, class)
	if err != nil {
		return nil, err
	}
	for _, c := range cells {
		if b.IsOccupiedOrBuffered(c) {
			return nil, errOverlap(c)
		}
	}

	ship := newShip(cells, dir, class)
	b.ships = append(b.ships, ship)
	return ship, nil
}

// IsOccupiedOrBuffered reports whether c is taken by a ship afloat on the
// board or lies in its buffer.
func (b *Board) IsOccupiedOrBuffered(c Coordinate) bool {
	for _, s := range b.ships {
		if s.Occupies(c) || s.InBuffer(c) {
			return true
		}
	}
	return false
}

// ReceiveGuess resolves a guess against the ships afloat. A ship whose
// last cell is hit leaves the board in the same call.
func (b *Board) ReceiveGuess(c Coordinate) (Outcome, error) {
	if !b.contains(c) {
		return Outcome{}, errOutOfBounds(c.x, c.y, b.width, b.height)
	}
	if b.guesses.Contains(c) {
		return Outcome{}, errAlreadyGuessed(c)
	}
	b.guesses.Add(c)

	for i, s := range b.ships {
		if !s.hit(c) {
			continue
		}
		out := Outcome{Hit: true, Class: s.class, Ship: s}
		if s.IsSunk() {
			out.Sunk = true
			b.ships = slices.Delete(b.ships, i, i+1)
			b.sunk = append(b.sunk, s)
		}
		return out, nil
	}
	return Outcome{}, nil
}

func (b *Board) Guessed(c Coordinate) bool {
	return b.guesses.Contains(c)
}

func (b *Board) GuessCount() int {
	return b.guesses.Len()
}

// LineBetween extends the line through two hits: up to two cells past h2
// on the ray from h1, then up to two cells past h1 on the ray from h2.
func (b *Board) LineBetween(h1, h2 Coordinate) []Coordinate {
	if !b.contains(h1) || !b.contains(h2) {
		return nil
	}
	return LineBetween(h1, h2)
}

// LineBetween is the board-free form of Board.LineBetween; the bounds
// carried by the coordinates clip the line. It returns nil when h1 equals
// h2 or the two do not share a row or column.
func LineBetween(h1, h2 Coordinate) []Coordinate {
	dx, dy := sign(h2.x-h1.x), sign(h2.y-h1.y)
	if (dx == 0) == (dy == 0) {
		return nil
	}

	line := make([]Coordinate, 0, 4)
	extend := func(from Coordinate, dx, dy int) {
		for i := 1; i <= 2; i++ {
			c, err := from.Translate(dx*i, dy*i)
			if err != nil {
				return
			}
			line = append(line, c)
		}
	}
	extend(h2, dx, dy)
	extend(h1, -dx, -dy)
	return line
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// Ships returns the ships still afloat in placement order.
func (b *Board) Ships() []*Ship {
	return slices.Clone(b.ships)
}

func (b *Board) SunkShips() []*Ship {
	return slices.Clone(b.sunk)
}

func (b *Board) ShipsAfloat() int {
	return len(b.ships)
}

// AllSunk reports whether a fleet was placed and every ship of it sank.
func (b *Board) AllSunk() bool {
	return len(b.ships) == 0 && len(b.sunk) > 0
}

// Render derives a [y][x] grid of symbols from the ships and the guess
// history.
func (b *Board) Render(view View) [][]Symbol {
	grid := make([][]Symbol, b.height)
	for y := range grid {
		grid[y] = make([]Symbol, b.width)
		for x := range grid[y] {
			grid[y][x] = SymbolWater
		}
	}

	all := append(b.Ships(), b.sunk...)
	if view == ViewPlacement {
		for _, s := range all {
			s.buffer.m.Iter(func(c Coordinate, _ struct{}) (stop bool) {
				grid[c.y][c.x] = SymbolBuffer
				return false
			})
		}
	}
	if view != ViewOpponent {
		for _, s := range all {
			for _, c := range s.occupied {
				grid[c.y][c.x] = s.class.Symbol()
			}
		}
	}

	b.guesses.m.Iter(func(c Coordinate, _ struct{}) (stop bool) {
		grid[c.y][c.x] = SymbolMiss
		for _, s := range all {
			if s.Occupies(c) {
				grid[c.y][c.x] = SymbolHit
				break
			}
		}
		return false
	})
	return grid
}
