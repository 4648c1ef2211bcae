package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEventBufferBoundsRetention(t *testing.T) {
	buf := NewEventBuffer(3)
	for i := 0; i < 5; i++ {
		buf.Emit(Event{Message: string(rune('a' + i))})
	}

	require.Equal(t, 3, buf.Len())
	tail := buf.Tail(0)
	assert.Equal(t, "c", tail[0].Message)
	assert.Equal(t, "e", tail[2].Message)

	assert.Len(t, buf.Tail(2), 2)
	assert.Equal(t, "e", buf.Tail(1)[0].Message)
}

func TestSinkFuncAdapts(t *testing.T) {
	var got Event
	sink := SinkFunc(func(ev Event) { got = ev })
	sink.Emit(Event{Message: "hello"})
	assert.Equal(t, "hello", got.Message)
}

// playScriptedTurn drives one identical turn against a fresh engine and
// returns the final snapshot together with everything the sink saw.
func playScriptedTurn(t *testing.T, verbose bool) (*Snapshot, []Event) {
	t.Helper()

	buf := NewEventBuffer(0)
	e, err := NewEngine("match-verbosity", []string{"alice", "bob"}, zaptest.NewLogger(t),
		WithSeed(1234), WithSink(buf), WithVerbose(verbose))
	require.NoError(t, err)
	require.NoError(t, e.Setup(map[string]string{"alice": "Warrior", "bob": "Mage"}))

	// Play every treasure in hand, then buy the cheapest thing possible.
	for _, card := range append([]string(nil), e.state.Players["alice"].Hand...) {
		if def, ok := e.catalog.Lookup(card); ok && def.Kind == KindTreasure {
			require.NoError(t, e.PlayCard("alice", card))
		}
	}
	_ = e.BuyCard("alice", "Copper")
	require.NoError(t, e.AdvancePhase())

	return e.Snapshot(), buf.Tail(0)
}

func TestVerbosityNeverChangesOutcomes(t *testing.T) {
	quiet, quietEvents := playScriptedTurn(t, false)
	loud, loudEvents := playScriptedTurn(t, true)

	// Identical seeds and commands must yield identical game state no
	// matter the verbosity.
	assert.Equal(t, quiet.Players, loud.Players)
	assert.Equal(t, quiet.CommonSupply, loud.CommonSupply)
	assert.Equal(t, quiet.Phase, loud.Phase)
	assert.Equal(t, quiet.TurnOwner, loud.TurnOwner)

	countDeltas := func(events []Event) int {
		n := 0
		for _, ev := range events {
			if ev.Type == EventStatDelta {
				n++
			}
		}
		return n
	}
	assert.Zero(t, countDeltas(quietEvents))
	assert.Positive(t, countDeltas(loudEvents))
}

func TestHeadlineEventLogExcludesVerboseDeltas(t *testing.T) {
	buf := NewEventBuffer(0)
	e, err := NewEngine("match-log", []string{"alice", "bob"}, zaptest.NewLogger(t),
		WithSeed(5), WithSink(buf), WithVerbose(true))
	require.NoError(t, err)
	require.NoError(t, e.Setup(nil))

	alice := e.state.Players["alice"]
	alice.Hand = []string{"Market", "Copper"}
	require.NoError(t, e.PlayCard("alice", "Market"))

	for _, ev := range e.Events() {
		assert.NotEqual(t, EventStatDelta, ev.Type,
			"stat deltas are sink-only, never part of the append-only log")
	}
}

func TestEventLogIsOrderedAndAppendOnly(t *testing.T) {
	e := setupTestEngine(t)

	before := len(e.Events())
	alice := e.state.Players["alice"]
	alice.Hand = []string{"Copper"}
	require.NoError(t, e.PlayCard("alice", "Copper"))

	events := e.Events()
	require.Greater(t, len(events), before)

	var sawPhaseChange, sawPlay bool
	for _, ev := range events[before:] {
		switch ev.Type {
		case EventPhaseChanged:
			sawPhaseChange = true
			assert.False(t, sawPlay, "phase change must precede the play event")
		case EventCardPlayed:
			sawPlay = true
		}
	}
	assert.True(t, sawPhaseChange)
	assert.True(t, sawPlay)
}
