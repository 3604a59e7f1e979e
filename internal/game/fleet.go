package game

import (
	"errors"
	"fmt"
)

// FleetSize is the number of ships each side places.
const FleetSize = 10

// Rand is the source of randomness for placement and targeting.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type Placement struct {
	Index             int
	Class             ShipClass
	RequiresDirection bool
}

// PlacementFor maps a placement index to the class placed at that point:
// one battleship, two cruisers, three destroyers, then four submarines.
func PlacementFor(index int) (Placement, error) {
	var class ShipClass
	switch {
	case index < 0 || index >= FleetSize:
		return Placement{}, fmt.Errorf("%w: placement index %d", ErrInvalidPlacement, index)
	case index == 0:
		class = Battleship
	case index <= 2:
		class = Cruiser
	case index <= 5:
		class = Destroyer
	default:
		class = Submarine
	}
	return Placement{Index: index, Class: class, RequiresDirection: true}, nil
}

// Fleet lists the placements of a full fleet in order.
func Fleet() []Placement {
	fleet := make([]Placement, 0, FleetSize)
	for i := range FleetSize {
		p, _ := PlacementFor(i)
		fleet = append(fleet, p)
	}
	return fleet
}

func RandomCoordinate(b *Board, rng Rand) Coordinate {
	return Coordinate{x: rng.Intn(b.width), y: rng.Intn(b.height), width: b.width, height: b.height}
}

func RandomDirection(rng Rand) Direction {
	return Direction(rng.Intn(len(directionNames)))
}

// maxPlacementAttempts bounds the random tries for a single ship before
// the whole fleet is laid out again.
const maxPlacementAttempts = 500

var errFleetStuck = errors.New("no room left for the next ship")

// PlaceRandom places the ship at placement p at a random free spot.
func PlaceRandom(b *Board, p Placement, rng Rand) (*Ship, error) {
	for range maxPlacementAttempts {
		s, err := b.Place(RandomCoordinate(b, rng), RandomDirection(rng), p.Class)
		if errors.Is(err, ErrOverlap) || errors.Is(err, ErrOutOfBounds) {
			continue
		}
		return s, err
	}
	return nil, fmt.Errorf("%s #%d: %w", p.Class, p.Index, errFleetStuck)
}

// PlaceRandomFleet places placements[from:] on b at random. If a ship
// cannot be fitted, the ships placed by this call are discarded and the
// layout starts over.
func PlaceRandomFleet(b *Board, from int, rng Rand) error {
	if from < 0 || from > FleetSize {
		return fmt.Errorf("%w: placement index %d", ErrInvalidPlacement, from)
	}
	keep := len(b.ships)
	fleet := Fleet()[from:]

	for restart := 0; ; restart++ {
		if restart == maxPlacementAttempts {
			return fmt.Errorf("random fleet: %w", errFleetStuck)
		}
		b.ships = b.ships[:keep]

		var err error
		for _, p := range fleet {
			if _, err = PlaceRandom(b, p, rng); err != nil {
				break
			}
		}
		if err == nil {
			return nil
		}
		if !errors.Is(err, errFleetStuck) {
			return err
		}
	}
}
