package game

import (
	"fmt"
	"slices"
)

type ShipClass int

const (
	Battleship ShipClass = iota
	Cruiser
	Destroyer
	Submarine
)

type shipSpec struct {
	name   string
	length int
	symbol Symbol
}

var shipConfig = map[ShipClass]shipSpec{
	Battleship: {name: "battleship", length: 4, symbol: 'B'},
	Cruiser:    {name: "cruiser", length: 3, symbol: 'C'},
	Destroyer:  {name: "destroyer", length: 2, symbol: 'D'},
	Submarine:  {name: "submarine", length: 1, symbol: 'S'},
}

func (c ShipClass) Valid() bool {
	_, ok := shipConfig[c]
	return ok
}

// Length is the number of cells a ship of this class occupies, or 0 for
// an unknown class.
func (c ShipClass) Length() int {
	return shipConfig[c].length
}

func (c ShipClass) Symbol() Symbol {
	return shipConfig[c].symbol
}

func (c ShipClass) String() string {
	if spec, ok := shipConfig[c]; ok {
		return spec.name
	}
	return fmt.Sprintf("ShipClass(%d)", int(c))
}

// Ship is a contiguous run of cells owned by one Board.
type Ship struct {
	class     ShipClass
	direction Direction
	occupied  []Coordinate
	extent    *CoordinateSet
	remaining *CoordinateSet
	buffer    *CoordinateSet
}

// shipCells returns the cells a ship of class would cover from origin
// along dir, sorted ascending.
func shipCells(origin Coordinate, dir Direction, class ShipClass) ([]Coordinate, error) {
	if !class.Valid() {
		return nil, errInvalidClass(class)
	}
	if !dir.Valid() {
		return nil, errInvalidDirection(dir)
	}
	cells := make([]Coordinate, 0, class.Length())
	for i := range class.Length() {
		c, err := origin.Step(dir, i)
		if err != nil {
			return nil, fmt.Errorf("%s from %s going %s: %w", class, origin, dir, err)
		}
		cells = append(cells, c)
	}
	slices.SortFunc(cells, Coordinate.Compare)
	return cells, nil
}

func newShip(cells []Coordinate, dir Direction, class ShipClass) *Ship {
	return &Ship{
		class:     class,
		direction: dir,
		occupied:  cells,
		extent:    NewCoordinateSet(len(cells), cells...),
		remaining: NewCoordinateSet(len(cells), cells...),
		buffer:    NewCoordinateSet(2*len(cells)+2, shipBuffer(cells, dir)...),
	}
}

// shipBuffer derives the cells orthogonally adjacent to the sorted run:
// one before the first cell along the axis, one after the last, and both
// perpendicular neighbours of every cell. Cells off the board are dropped.
func shipBuffer(cells []Coordinate, dir Direction) []Coordinate {
	along, across := Down, Right
	if dir.Horizontal() {
		along, across = Right, Down
	}

	var buffer []Coordinate
	add := func(c Coordinate, d Direction, n int) {
		if b, err := c.Step(d, n); err == nil {
			buffer = append(buffer, b)
		}
	}
	add(cells[0], along, -1)
	for _, c := range cells {
		add(c, across, -1)
		add(c, across, 1)
	}
	add(cells[len(cells)-1], along, 1)
	return buffer
}

func (s *Ship) Class() ShipClass {
	return s.class
}

func (s *Ship) Direction() Direction {
	return s.direction
}

func (s *Ship) Occupied() []Coordinate {
	return slices.Clone(s.occupied)
}

func (s *Ship) Remaining() []Coordinate {
	return s.remaining.Slice()
}

func (s *Ship) Buffer() []Coordinate {
	return s.buffer.Slice()
}

func (s *Ship) Occupies(c Coordinate) bool {
	return s.extent.Contains(c)
}

func (s *Ship) InBuffer(c Coordinate) bool {
	return s.buffer.Contains(c)
}

func (s *Ship) IsSunk() bool {
	return s.remaining.IsEmpty()
}

// hit removes c from the remaining cells and reports whether it was there.
func (s *Ship) hit(c Coordinate) bool {
	return s.remaining.Remove(c)
}

func (s *Ship) String() string {
	return fmt.Sprintf("%s at %v", s.class, s.occupied)
}
