package game

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds      = errors.New("coordinate out of bounds")
	ErrOverlap          = errors.New("ship overlaps another ship or its buffer")
	ErrInvalidPlacement = errors.New("invalid ship class or direction")
	ErrAlreadyGuessed   = errors.New("coordinate already guessed")
	ErrNoCandidates     = errors.New("no coordinates left to guess")
)

func errOutOfBounds(x, y, width, height int) error {
	return fmt.Errorf("%w: x: %d y: %d on %dx%d board", ErrOutOfBounds, x, y, width, height)
}

func errOverlap(c Coordinate) error {
	return fmt.Errorf("%w at %s", ErrOverlap, c)
}

func errInvalidClass(class ShipClass) error {
	return fmt.Errorf("%w: class %d", ErrInvalidPlacement, int(class))
}

func errInvalidDirection(dir Direction) error {
	return fmt.Errorf("%w: direction %d", ErrInvalidPlacement, int(dir))
}

func errAlreadyGuessed(c Coordinate) error {
	return fmt.Errorf("%w: %s", ErrAlreadyGuessed, c)
}
