package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/krishanu7/sinkorsail/internal/game"
	"github.com/krishanu7/sinkorsail/internal/match"
	wsPkg "github.com/krishanu7/sinkorsail/pkg/websocket"
)

// TokenParser resolves the token a client connects with to a player ID.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

type Handler struct {
	Hub     *wsPkg.Hub
	matches *match.Service
	tokens  TokenParser
	logger  *log.Logger
}

func NewHandler(hub *wsPkg.Hub, matches *match.Service, tokens TokenParser, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{
		Hub:     hub,
		matches: matches,
		tokens:  tokens,
		logger:  logger,
	}
}

// session is the state of one game connection.
type session struct {
	client  *wsPkg.Client
	matchID string
	logger  *log.Logger
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID, err := h.tokens.ParseToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := wsPkg.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Upgrade failed", "err", err)
		return
	}

	client := wsPkg.NewClient(uuid.NewString(), playerID, conn)
	h.Hub.AddClient(client)

	s := &session{client: client, logger: h.logger.With("player", playerID)}
	s.logger.Info("Player connected")
	go h.write(s)
	go h.read(r.Context(), s)
}

func (h *Handler) read(ctx context.Context, s *session) {
	defer func() {
		h.dropMatch(s)
		h.Hub.RemoveClient(s.client)
		s.client.Close()
		s.client.Conn.Close()
	}()
	// The request context ends when ServeWS returns.
	ctx = context.WithoutCancel(ctx)

	for {
		_, msg, err := s.client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Read error", "err", err)
			}
			return
		}
		var in Inbound
		if err := json.Unmarshal(msg, &in); err != nil {
			s.logger.Debug("Failed to unmarshal message", "err", err)
			h.sendError(s, "malformed message")
			continue
		}
		h.dispatch(ctx, s, in)
	}
}

func (h *Handler) write(s *session) {
	defer s.client.Conn.Close()

	for msg := range s.client.Send {
		if err := s.client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.logger.Warn("Write error", "err", err)
			return
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, s *session, in Inbound) {
	if in.Type == "new_game" {
		h.newGame(s)
		return
	}

	m, err := h.current(s)
	if err != nil {
		h.sendError(s, err.Error())
		return
	}

	switch in.Type {
	case "place":
		h.place(s, m, in)
	case "auto_place":
		h.autoPlace(s, m)
	case "guess":
		h.guess(ctx, s, m, in)
	case "board":
		h.send(s, boardView(m))
	default:
		h.sendError(s, "unknown message type: "+in.Type)
	}
}

var errNoMatch = errors.New("no game in progress, send new_game")

func (h *Handler) current(s *session) (*match.Match, error) {
	if s.matchID == "" {
		return nil, errNoMatch
	}
	m, err := h.matches.Get(s.matchID)
	if errors.Is(err, match.ErrMatchNotFound) {
		s.matchID = ""
		return nil, errNoMatch
	}
	return m, err
}

func (h *Handler) newGame(s *session) {
	h.dropMatch(s)

	m, err := h.matches.Create(s.client.PlayerID)
	if err != nil {
		s.logger.Error("Failed to create match", "err", err)
		h.sendError(s, "failed to create game")
		return
	}
	s.matchID = m.ID
	h.send(s, GameCreated{Type: "game_created", MatchID: m.ID, Next: nextShip(m.Next())})
}

func (h *Handler) place(s *session, m *match.Match, in Inbound) {
	origin, err := m.PlayerBoard().Parse(in.Coordinate)
	if err != nil {
		h.sendError(s, err.Error())
		return
	}
	dir, err := game.ParseDirection(in.Direction)
	if err != nil {
		h.sendError(s, err.Error())
		return
	}
	ship, err := m.Place(origin, dir)
	if err != nil {
		h.sendError(s, err.Error())
		return
	}

	cells := make([]string, 0, len(ship.Occupied()))
	for _, c := range ship.Occupied() {
		cells = append(cells, c.String())
	}
	next := nextShip(m.Next())
	h.send(s, Placed{Type: "placed", Class: ship.Class().String(), Cells: cells, Next: next, Ready: next == nil})
}

func (h *Handler) autoPlace(s *session, m *match.Match) {
	if err := m.AutoPlace(); err != nil {
		h.sendError(s, err.Error())
		return
	}
	h.send(s, Placed{Type: "placed", Ready: true})
	h.send(s, boardView(m))
}

func (h *Handler) guess(ctx context.Context, s *session, m *match.Match, in Inbound) {
	c, err := m.ComputerBoard().Parse(in.Coordinate)
	if err != nil {
		h.sendError(s, err.Error())
		return
	}
	result, err := h.matches.Fire(ctx, m.ID, c)
	if err != nil {
		h.sendError(s, err.Error())
		return
	}

	turn := Turn{Type: "turn", Round: result.Round, Player: shotResult(result.Player)}
	if result.Computer != nil {
		reply := shotResult(*result.Computer)
		turn.Computer = &reply
	}
	h.send(s, turn)

	if result.Finished {
		s.matchID = ""
		h.send(s, GameOver{Type: "game_over", Winner: result.Winner.String(), Rounds: result.Round})
	}
}

// dropMatch discards an unfinished match of the session.
func (h *Handler) dropMatch(s *session) {
	if s.matchID != "" {
		h.matches.Remove(s.matchID)
		s.matchID = ""
	}
}

func (h *Handler) send(s *session, v any) {
	if !s.client.Enqueue(marshal(v)) {
		s.logger.Warn("Send buffer full, dropping message")
	}
}

func (h *Handler) sendError(s *session, msg string) {
	h.send(s, ErrorMessage{Type: "error", Message: msg})
}
