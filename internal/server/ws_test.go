package server

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/duelforge/duel-server-go/internal/game"
)

type wsClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dialGateway(t *testing.T) *wsClient {
	t.Helper()

	manager := game.NewManager(zaptest.NewLogger(t), 64)
	gw := NewGateway(manager, zaptest.NewLogger(t), game.WithSeed(21))

	srv := httptest.NewServer(gw.Handler())
	t.Cleanup(srv.Close)

	url := strings.Replace(srv.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &wsClient{t: t, conn: conn}
}

func (c *wsClient) roundTrip(cmd Command) Response {
	c.t.Helper()
	require.NoError(c.t, c.conn.WriteJSON(cmd))

	var resp Response
	require.NoError(c.t, c.conn.ReadJSON(&resp))
	return resp
}

func TestGatewayMatchLifecycle(t *testing.T) {
	c := dialGateway(t)

	created := c.roundTrip(Command{Type: "create", Players: []string{"alice", "bob"}})
	require.True(t, created.OK)
	require.NotEmpty(t, created.MatchID)
	matchID := created.MatchID

	setup := c.roundTrip(Command{
		Type:    "setup",
		MatchID: matchID,
		Classes: map[string]string{"alice": "Warrior", "bob": "Mage"},
	})
	require.True(t, setup.OK)

	state := c.roundTrip(Command{Type: "state", MatchID: matchID})
	require.True(t, state.OK)
	require.NotNil(t, state.Snapshot)
	assert.Equal(t, "ACTION", state.Snapshot.Phase)
	assert.Equal(t, "alice", state.Snapshot.TurnOwner)
	assert.Equal(t, 40, state.Snapshot.Players["alice"].HP)
	assert.Len(t, state.Snapshot.Players["alice"].Hand, 5)

	opponent := c.roundTrip(Command{Type: "opponent", MatchID: matchID, PlayerID: "alice"})
	require.True(t, opponent.OK)
	assert.Equal(t, "bob", opponent.Opponent)

	advance := c.roundTrip(Command{Type: "advance", MatchID: matchID})
	require.True(t, advance.OK)

	state = c.roundTrip(Command{Type: "state", MatchID: matchID})
	assert.Equal(t, "BUY", state.Snapshot.Phase)
}

func TestGatewayReportsRuleViolations(t *testing.T) {
	c := dialGateway(t)

	created := c.roundTrip(Command{Type: "create", Players: []string{"alice", "bob"}})
	require.True(t, created.OK)
	matchID := created.MatchID

	require.True(t, c.roundTrip(Command{Type: "setup", MatchID: matchID}).OK)

	// Out-of-turn play fails as a normal response, not a dropped
	// connection.
	resp := c.roundTrip(Command{Type: "play", MatchID: matchID, PlayerID: "bob", Card: "Copper"})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Message, "not your turn")

	// The connection stays usable.
	state := c.roundTrip(Command{Type: "state", MatchID: matchID})
	assert.True(t, state.OK)
}

func TestGatewayEventsTail(t *testing.T) {
	c := dialGateway(t)

	created := c.roundTrip(Command{Type: "create", Players: []string{"alice", "bob"}})
	matchID := created.MatchID
	require.True(t, c.roundTrip(Command{Type: "setup", MatchID: matchID}).OK)

	resp := c.roundTrip(Command{Type: "events", MatchID: matchID, Limit: 5})
	require.True(t, resp.OK)
	assert.NotEmpty(t, resp.Events)
}

func TestGatewayUnknownCommandAndMatch(t *testing.T) {
	c := dialGateway(t)

	resp := c.roundTrip(Command{Type: "dance"})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Message, "unknown command")

	resp = c.roundTrip(Command{Type: "play", MatchID: "nope", PlayerID: "alice", Card: "Copper"})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Message, "no such match")
}

func TestGatewayMalformedJSON(t *testing.T) {
	c := dialGateway(t)

	require.NoError(t, c.conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var resp Response
	require.NoError(t, c.conn.ReadJSON(&resp))
	assert.Contains(t, resp.Message, "malformed")
}
