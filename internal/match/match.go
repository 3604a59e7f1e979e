package match

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/krishanu7/sinkorsail/internal/game"
)

var (
	ErrNotPlacing = errors.New("fleet already placed")
	ErrNotPlaying = errors.New("match is not in play")
)

type Phase int

const (
	PhasePlacing Phase = iota
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	}
	return "placing"
}

// Side names a participant of a match.
type Side int

const (
	SideNone Side = iota
	SidePlayer
	SideComputer
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideComputer:
		return "computer"
	}
	return "none"
}

type Shot struct {
	Coordinate game.Coordinate
	Outcome    game.Outcome
}

// TurnResult is one round: the player's shot and, unless that shot ended
// the match, the computer's reply.
type TurnResult struct {
	Round    int
	Player   Shot
	Computer *Shot
	Finished bool
	Winner   Side
}

// Match is a single game of a player against the computer.
type Match struct {
	ID        string
	PlayerID  string
	CreatedAt time.Time

	mu       sync.Mutex
	player   *game.Board
	computer *game.Board
	engine   *game.Engine
	rng      game.Rand
	logger   *log.Logger

	placed int
	round  int
	phase  Phase
	winner Side
}

// NewMatch sets up both boards and lays out the computer's fleet.
func NewMatch(playerID string, rng game.Rand, logger *log.Logger) (*Match, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := uuid.NewString()
	logger = logger.With("match", id)

	computer := game.NewDefaultBoard()
	if err := game.PlaceRandomFleet(computer, 0, rng); err != nil {
		return nil, fmt.Errorf("failed to place computer fleet: %w", err)
	}

	return &Match{
		ID:        id,
		PlayerID:  playerID,
		CreatedAt: time.Now(),
		player:    game.NewDefaultBoard(),
		computer:  computer,
		engine:    game.NewEngine(rng, game.WithLogger(logger)),
		rng:       rng,
		logger:    logger,
	}, nil
}

func (m *Match) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

func (m *Match) Round() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.round
}

func (m *Match) Winner() Side {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.winner
}

// PlayerBoard is the board the player's fleet is placed on. Reads through
// it are unsynchronised and assume the match has a single owner; use
// Snapshot from any other goroutine.
func (m *Match) PlayerBoard() *game.Board {
	return m.player
}

// ComputerBoard is the board the player fires at. It carries the same
// single-owner assumption as PlayerBoard.
func (m *Match) ComputerBoard() *game.Board {
	return m.computer
}

// Snapshot is both boards rendered at one point in the match.
type Snapshot struct {
	Phase          Phase
	Own            [][]game.Symbol
	Opponent       [][]game.Symbol
	ShipsAfloat    int
	OpponentAfloat int
}

// Snapshot renders both boards under the match lock. The player's board
// shows buffers while the fleet is being placed.
func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	view := game.ViewOwn
	if m.phase == PhasePlacing {
		view = game.ViewPlacement
	}
	return Snapshot{
		Phase:          m.phase,
		Own:            m.player.Render(view),
		Opponent:       m.computer.Render(game.ViewOpponent),
		ShipsAfloat:    m.player.ShipsAfloat(),
		OpponentAfloat: m.computer.ShipsAfloat(),
	}
}

// Next returns the placement the player is expected to make, and false
// once the fleet is complete.
func (m *Match) Next() (game.Placement, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhasePlacing {
		return game.Placement{}, false
	}
	p, err := game.PlacementFor(m.placed)
	return p, err == nil
}

// Place puts the player's next ship at origin. A rejected placement
// leaves the match unchanged so the caller can ask again.
func (m *Match) Place(origin game.Coordinate, dir game.Direction) (*game.Ship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhasePlacing {
		return nil, ErrNotPlacing
	}
	p, err := game.PlacementFor(m.placed)
	if err != nil {
		return nil, err
	}
	ship, err := m.player.Place(origin, dir, p.Class)
	if err != nil {
		return nil, err
	}
	m.placed++
	m.logger.Debug("ship placed", "ship", ship)
	m.startIfPlaced()
	return ship, nil
}

// AutoPlace lays out the rest of the player's fleet at random.
func (m *Match) AutoPlace() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhasePlacing {
		return ErrNotPlacing
	}
	if err := game.PlaceRandomFleet(m.player, m.placed, m.rng); err != nil {
		return err
	}
	m.placed = game.FleetSize
	m.startIfPlaced()
	return nil
}

func (m *Match) startIfPlaced() {
	if m.placed == game.FleetSize {
		m.phase = PhasePlaying
		m.logger.Info("fleet placed, match started")
	}
}

// Fire plays one round: the player's shot at c, then the computer's
// reply if the computer still has ships afloat. Computer is nil in the
// result when no reply was made.
func (m *Match) Fire(c game.Coordinate) (TurnResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PhasePlaying {
		return TurnResult{}, ErrNotPlaying
	}

	out, err := m.computer.ReceiveGuess(c)
	if err != nil {
		return TurnResult{}, err
	}
	m.round++
	result := TurnResult{Round: m.round, Player: Shot{Coordinate: c, Outcome: out}}

	if m.computer.AllSunk() {
		m.finish(SidePlayer, &result)
		return result, nil
	}

	// The player's shot stands even if the computer cannot answer it.
	reply, replyOut, err := m.engine.Guess(m.player)
	if err != nil {
		m.logger.Error("computer turn failed", "round", m.round, "err", err)
		return result, nil
	}
	result.Computer = &Shot{Coordinate: reply, Outcome: replyOut}

	if m.player.AllSunk() {
		m.finish(SideComputer, &result)
	}
	return result, nil
}

func (m *Match) finish(winner Side, result *TurnResult) {
	m.phase = PhaseFinished
	m.winner = winner
	result.Finished = true
	result.Winner = winner
	m.logger.Info("match finished", "winner", winner, "rounds", m.round)
}
