package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/krishanu7/sinkorsail/db"
)

const (
	// ComputerElo is the fixed rating of the computer opponent.
	ComputerElo = 1500
	startingElo = 1500
	kFactor     = 32
)

type Service struct {
	db     *sql.DB
	logger *log.Logger
}

func NewService(db *sql.DB, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{db: db, logger: logger}
}

type LeaderboardEntry struct {
	PlayerID  string    `json:"player_id"`
	Username  string    `json:"username"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	Elo       int       `json:"elo"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NextElo rates a game against the computer.
func NextElo(elo int, won bool) int {
	expected := 1 / (1 + math.Pow(10, float64(ComputerElo-elo)/400))
	score := 0.0
	if won {
		score = 1
	}
	return elo + int(kFactor*(score-expected))
}

// RecordResult adds a finished match to the player's stats.
func (s *Service) RecordResult(ctx context.Context, playerID string, won bool, rounds int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stats := db.PlayerStats{PlayerID: playerID, Elo: startingElo}
	err = tx.QueryRowContext(ctx,
		"SELECT wins, losses, elo FROM stats WHERE player_id = $1 FOR UPDATE", playerID,
	).Scan(&stats.Wins, &stats.Losses, &stats.Elo)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if won {
		stats.Wins++
	} else {
		stats.Losses++
	}
	stats.Elo = NextElo(stats.Elo, won)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO stats (player_id, wins, losses, elo, updated_at) VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (player_id) DO UPDATE SET wins = $2, losses = $3, elo = $4, updated_at = NOW()`,
		playerID, stats.Wins, stats.Losses, stats.Elo,
	)
	if err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stats: %w", err)
	}

	s.logger.Info("Updated stats", "player", playerID, "won", won, "rounds", rounds,
		"wins", stats.Wins, "losses", stats.Losses, "elo", stats.Elo)
	return nil
}

func (s *Service) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.player_id, u.username, s.wins, s.losses, s.elo, s.updated_at
		FROM stats s
		JOIN users u ON s.player_id = u.id
		ORDER BY s.elo DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaderboard := []LeaderboardEntry{}
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(&entry.PlayerID, &entry.Username, &entry.Wins, &entry.Losses, &entry.Elo, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		leaderboard = append(leaderboard, entry)
	}
	return leaderboard, rows.Err()
}
