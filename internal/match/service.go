package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/krishanu7/sinkorsail/internal/game"
)

var ErrMatchNotFound = errors.New("match not found")

// Publisher broadcasts match events; *redis.Publisher satisfies it.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// ResultRecorder stores the outcome of a finished match.
type ResultRecorder interface {
	RecordResult(ctx context.Context, playerID string, won bool, rounds int) error
}

// GameOver is published when a match finishes.
type GameOver struct {
	Type    string `json:"type"`
	MatchID string `json:"matchId"`
	Player  string `json:"player"`
	Winner  string `json:"winner"`
	Rounds  int    `json:"rounds"`
}

type Service struct {
	mu      sync.Mutex
	matches map[string]*Match

	newRand   func() game.Rand
	publisher Publisher
	recorder  ResultRecorder
	logger    *log.Logger
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithRecorder(r ResultRecorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService keeps matches in memory. newRand is called once per match.
func NewService(newRand func() game.Rand, opts ...Option) *Service {
	s := &Service{
		matches: make(map[string]*Match),
		newRand: newRand,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(playerID string) (*Match, error) {
	m, err := NewMatch(playerID, s.newRand(), s.logger)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.matches[m.ID] = m
	s.mu.Unlock()

	s.logger.Info("Match created", "match", m.ID, "player", playerID)
	return m, nil
}

func (s *Service) Get(id string) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	return m, nil
}

func (s *Service) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
}

func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}

// Fire plays a round of match id. When the round ends the match, the
// result is recorded, a game_over event is published and the match is
// dropped.
func (s *Service) Fire(ctx context.Context, id string, c game.Coordinate) (TurnResult, error) {
	m, err := s.Get(id)
	if err != nil {
		return TurnResult{}, err
	}
	result, err := m.Fire(c)
	if err != nil {
		return result, err
	}
	if result.Finished {
		s.finish(ctx, m, result)
	}
	return result, nil
}

func (s *Service) finish(ctx context.Context, m *Match, result TurnResult) {
	defer s.Remove(m.ID)

	if s.recorder != nil {
		if err := s.recorder.RecordResult(ctx, m.PlayerID, result.Winner == SidePlayer, result.Round); err != nil {
			s.logger.Error("Failed to record result", "match", m.ID, "err", err)
		}
	}

	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(GameOver{
		Type:    "game_over",
		MatchID: m.ID,
		Player:  m.PlayerID,
		Winner:  result.Winner.String(),
		Rounds:  result.Round,
	})
	if err != nil {
		s.logger.Error("Failed to marshal game_over", "match", m.ID, "err", err)
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Error("Failed to publish game_over", "match", m.ID, "err", err)
		return
	}
	s.logger.Info("Published game_over", "match", m.ID, "player", m.PlayerID)
}
