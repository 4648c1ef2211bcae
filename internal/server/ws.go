package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/duelforge/duel-server-go/internal/game"
)

// Command is one JSON command from a client. Every command is answered
// with exactly one Response; the match manager serializes all commands per
// match, so the engine sees a strict command-response sequence.
type Command struct {
	Type     string            `json:"type"`
	MatchID  string            `json:"match_id,omitempty"`
	PlayerID string            `json:"player_id,omitempty"`
	Card     string            `json:"card,omitempty"`
	Players  []string          `json:"players,omitempty"`
	Classes  map[string]string `json:"classes,omitempty"`
	Limit    int               `json:"limit,omitempty"`
}

// Response answers one command. Rule violations come back with OK false
// and the joined reasons in Message; they never close the connection.
type Response struct {
	Type     string         `json:"type"`
	OK       bool           `json:"ok"`
	Message  string         `json:"message,omitempty"`
	MatchID  string         `json:"match_id,omitempty"`
	Opponent string         `json:"opponent,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Events   []game.Event   `json:"events,omitempty"`
}

// Gateway exposes the match manager over a websocket endpoint.
type Gateway struct {
	logger   *zap.Logger
	manager  *game.Manager
	upgrader websocket.Upgrader

	engineOpts []game.Option
}

// NewGateway creates a websocket gateway. engineOpts are applied to every
// match the gateway creates.
func NewGateway(manager *game.Manager, logger *zap.Logger, engineOpts ...game.Option) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		logger:  logger,
		manager: manager,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		engineOpts: engineOpts,
	}
}

// Handler returns the HTTP handler serving the websocket endpoint.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (g *Gateway) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			g.write(conn, Response{Type: "error", Message: "malformed command"})
			continue
		}

		g.write(conn, g.dispatch(cmd))
	}
}

func (g *Gateway) write(conn *websocket.Conn, resp Response) {
	if err := conn.WriteJSON(resp); err != nil {
		g.logger.Warn("websocket write failed", zap.Error(err))
	}
}

// dispatch executes one command and builds its response.
func (g *Gateway) dispatch(cmd Command) Response {
	switch cmd.Type {
	case "create":
		match, err := g.manager.CreateMatch(cmd.Players, g.engineOpts...)
		if err != nil {
			return Response{Type: cmd.Type, Message: err.Error()}
		}
		return Response{Type: cmd.Type, OK: true, MatchID: match.ID}

	case "setup":
		return g.run(cmd, func(e *game.Engine) error {
			return e.Setup(cmd.Classes)
		})

	case "play":
		return g.run(cmd, func(e *game.Engine) error {
			return e.PlayCard(cmd.PlayerID, cmd.Card)
		})

	case "buy":
		return g.run(cmd, func(e *game.Engine) error {
			return e.BuyCard(cmd.PlayerID, cmd.Card)
		})

	case "advance":
		return g.run(cmd, func(e *game.Engine) error {
			return e.AdvancePhase()
		})

	case "opponent":
		resp := Response{Type: cmd.Type}
		err := g.manager.Do(cmd.MatchID, func(e *game.Engine) error {
			opponent, err := e.OpponentID(cmd.PlayerID)
			resp.Opponent = opponent
			return err
		})
		if err != nil {
			resp.Message = err.Error()
			return resp
		}
		resp.OK = true
		return resp

	case "state":
		resp := Response{Type: cmd.Type}
		err := g.manager.Do(cmd.MatchID, func(e *game.Engine) error {
			resp.Snapshot = e.Snapshot()
			return nil
		})
		if err != nil {
			resp.Message = err.Error()
			return resp
		}
		resp.OK = true
		return resp

	case "events":
		match, ok := g.manager.Get(cmd.MatchID)
		if !ok {
			return Response{Type: cmd.Type, Message: "no such match"}
		}
		return Response{Type: cmd.Type, OK: true, Events: match.Events.Tail(cmd.Limit)}

	default:
		return Response{Type: cmd.Type, Message: "unknown command type"}
	}
}

// run executes a mutating engine command. Rule violations are ordinary
// failed responses; anything else is a contract breach worth logging.
func (g *Gateway) run(cmd Command, fn func(*game.Engine) error) Response {
	resp := Response{Type: cmd.Type, MatchID: cmd.MatchID}

	err := g.manager.Do(cmd.MatchID, fn)
	if err != nil {
		resp.Message = err.Error()
		if !game.IsRuleViolation(err) {
			g.logger.Error("command failed",
				zap.String("type", cmd.Type),
				zap.String("match_id", cmd.MatchID),
				zap.Error(err),
			)
		}
		return resp
	}

	resp.OK = true
	resp.Message = "ok"
	return resp
}
