package game

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/gammazero/deque"
)

// Phase is the guess-selection regime the engine is in.
type Phase int

const (
	PhaseSearch Phase = iota
	PhaseAdjacent
	PhaseFollow
)

func (p Phase) String() string {
	switch p {
	case PhaseAdjacent:
		return "adjacent"
	case PhaseFollow:
		return "follow"
	}
	return "search"
}

// maxStreak is the number of consecutive hits needed to fix a ship's axis.
const maxStreak = 2

// Engine is the computer opponent's guessing strategy. It searches at
// random until it hits, tries the neighbours of that hit, and once two
// hits line up it follows the line in both directions until the ship
// sinks. It never guesses the same coordinate twice, nor the buffer of a
// ship it has sunk.
type Engine struct {
	rng    Rand
	logger *log.Logger

	excluded *CoordinateSet
	streak   []Coordinate
	adjacent *deque.Deque[Coordinate]
	line     *deque.Deque[Coordinate]
}

type EngineOption func(*Engine)

func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(rng Rand, opts ...EngineOption) *Engine {
	e := &Engine{
		rng:      rng,
		logger:   log.New(io.Discard),
		excluded: NewCoordinateSet(DefaultWidth * DefaultHeight),
		adjacent: new(deque.Deque[Coordinate]),
		line:     new(deque.Deque[Coordinate]),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Phase() Phase {
	switch {
	case e.line.Len() > 0:
		return PhaseFollow
	case len(e.streak) == 1:
		return PhaseAdjacent
	}
	return PhaseSearch
}

// SelectGuess picks the next coordinate to fire at on the opponent's
// board and marks it as excluded.
func (e *Engine) SelectGuess(b *Board) (Coordinate, error) {
	if len(e.streak) > maxStreak {
		e.logger.Warn("hit streak overflow, back to search", "streak", e.streak)
		e.reset()
	}

	if c, ok := e.popFresh(e.line, b); ok {
		return e.commit(c, PhaseFollow), nil
	}

	switch len(e.streak) {
	case 1:
		if e.adjacent.Len() == 0 {
			e.loadAdjacent(e.streak[0])
		}
		if c, ok := e.popFresh(e.adjacent, b); ok {
			return e.commit(c, PhaseAdjacent), nil
		}
		e.logger.Debug("no neighbour left to try", "hit", e.streak[0])
		e.reset()
	case maxStreak:
		e.logger.Debug("line exhausted without a sink", "streak", e.streak)
		e.reset()
	}

	return e.search(b)
}

// popFresh pops from q until it yields a coordinate on b that has not
// been excluded.
func (e *Engine) popFresh(q *deque.Deque[Coordinate], b *Board) (Coordinate, bool) {
	for q.Len() > 0 {
		c := q.PopFront()
		if b.contains(c) && !e.excluded.Contains(c) {
			return c, true
		}
	}
	return Coordinate{}, false
}

func (e *Engine) search(b *Board) (Coordinate, error) {
	candidates := slices.DeleteFunc(b.Coordinates(), e.excluded.Contains)
	if len(candidates) == 0 {
		return Coordinate{}, ErrNoCandidates
	}
	return e.commit(candidates[e.rng.Intn(len(candidates))], PhaseSearch), nil
}

func (e *Engine) commit(c Coordinate, phase Phase) Coordinate {
	e.excluded.Add(c)
	e.logger.Debug("guess", "coordinate", c, "phase", phase)
	return c
}

// loadAdjacent queues the unexcluded neighbours of hit, shifted back to
// front by a random offset so no direction is always tried first.
func (e *Engine) loadAdjacent(hit Coordinate) {
	for _, n := range hit.Neighbors() {
		if !e.excluded.Contains(n) {
			e.adjacent.PushBack(n)
		}
	}
	if n := e.adjacent.Len(); n > 0 {
		e.adjacent.Rotate(-e.rng.Intn(n))
	}
}

// RecordOutcome feeds the result of firing at c back into the engine.
func (e *Engine) RecordOutcome(c Coordinate, o Outcome) {
	e.excluded.Add(c)

	switch {
	case !o.Hit:
		// Front to back: try the other end of the line next.
		e.line.Rotate(1)

	case o.Sunk:
		if o.Ship != nil {
			e.excluded.AddAll(o.Ship.Buffer()...)
		}
		e.logger.Debug("sunk", "class", o.Class, "at", c)
		e.reset()

	case len(e.streak) < maxStreak:
		e.streak = append(e.streak, c)
		if len(e.streak) == maxStreak {
			line := slices.DeleteFunc(LineBetween(e.streak[0], e.streak[1]), e.excluded.Contains)
			e.line.Clear()
			for _, lc := range line {
				e.line.PushBack(lc)
			}
			e.logger.Debug("following line", "streak", e.streak, "line", line)
		}
	}
}

// Guess selects a coordinate, fires it at b and records the outcome.
func (e *Engine) Guess(b *Board) (Coordinate, Outcome, error) {
	c, err := e.SelectGuess(b)
	if err != nil {
		return Coordinate{}, Outcome{}, err
	}
	o, err := b.ReceiveGuess(c)
	if err != nil {
		return c, Outcome{}, err
	}
	e.RecordOutcome(c, o)
	return c, o, nil
}

func (e *Engine) reset() {
	e.streak = nil
	e.adjacent.Clear()
	e.line.Clear()
}

func (e *Engine) IsExcluded(c Coordinate) bool {
	return e.excluded.Contains(c)
}

func (e *Engine) Excluded() []Coordinate {
	return e.excluded.Slice()
}

func (e *Engine) Streak() []Coordinate {
	return slices.Clone(e.streak)
}

func (e *Engine) LineQueue() []Coordinate {
	return queueSlice(e.line)
}

func (e *Engine) AdjacencyQueue() []Coordinate {
	return queueSlice(e.adjacent)
}

// queueSlice copies q from front to back.
func queueSlice(q *deque.Deque[Coordinate]) []Coordinate {
	out := make([]Coordinate, q.Len())
	for i := range out {
		out[i] = q.At(i)
	}
	return out
}
