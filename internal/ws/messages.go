package ws

import (
	"encoding/json"

	"github.com/krishanu7/sinkorsail/internal/game"
	"github.com/krishanu7/sinkorsail/internal/match"
)

// Inbound is any message a game client sends.
type Inbound struct {
	Type       string `json:"type"`
	Coordinate string `json:"coordinate,omitempty"`
	Direction  string `json:"direction,omitempty"`
}

type NextShip struct {
	Index  int    `json:"index"`
	Class  string `json:"class"`
	Length int    `json:"length"`
}

type GameCreated struct {
	Type    string    `json:"type"`
	MatchID string    `json:"matchId"`
	Next    *NextShip `json:"next"`
}

type Placed struct {
	Type  string    `json:"type"`
	Class string    `json:"class,omitempty"`
	Cells []string  `json:"cells,omitempty"`
	Next  *NextShip `json:"next,omitempty"`
	Ready bool      `json:"ready"`
}

type ShotResult struct {
	Coordinate string `json:"coordinate"`
	Result     string `json:"result"`
	Class      string `json:"class,omitempty"`
}

type Turn struct {
	Type     string      `json:"type"`
	Round    int         `json:"round"`
	Player   ShotResult  `json:"player"`
	Computer *ShotResult `json:"computer,omitempty"`
}

type BoardView struct {
	Type           string   `json:"type"`
	Own            []string `json:"own"`
	Opponent       []string `json:"opponent"`
	ShipsAfloat    int      `json:"shipsAfloat"`
	OpponentAfloat int      `json:"opponentAfloat"`
}

type GameOver struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
	Rounds int    `json:"rounds"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func nextShip(p game.Placement, ok bool) *NextShip {
	if !ok {
		return nil
	}
	return &NextShip{Index: p.Index, Class: p.Class.String(), Length: p.Class.Length()}
}

func shotResult(s match.Shot) ShotResult {
	r := ShotResult{Coordinate: s.Coordinate.String(), Result: "miss"}
	switch {
	case s.Outcome.Sunk:
		r.Result = "sunk"
	case s.Outcome.Hit:
		r.Result = "hit"
	}
	if s.Outcome.Hit {
		r.Class = s.Outcome.Class.String()
	}
	return r
}

func renderRows(grid [][]game.Symbol) []string {
	rows := make([]string, len(grid))
	for y, row := range grid {
		runes := make([]rune, len(row))
		for x, s := range row {
			runes[x] = rune(s)
		}
		rows[y] = string(runes)
	}
	return rows
}

func boardView(m *match.Match) BoardView {
	snap := m.Snapshot()
	return BoardView{
		Type:           "board",
		Own:            renderRows(snap.Own),
		Opponent:       renderRows(snap.Opponent),
		ShipsAfloat:    snap.ShipsAfloat,
		OpponentAfloat: snap.OpponentAfloat,
	}
}

func marshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(ErrorMessage{Type: "error", Message: "internal error"})
	}
	return b
}
