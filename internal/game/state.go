package game

import (
	"github.com/duelforge/duel-server-go/internal/game/rules"
)

// PlayerState holds everything owned by one participant. The struct is
// created with the GameState and mutated in place for the whole match;
// it is never replaced wholesale.
//
// Order inside DrawPile and DiscardPile is shuffle-significant (the end of
// DrawPile is the top). Hand and PlayArea order is display-only.
type PlayerState struct {
	ID          string
	Hand        []string
	DrawPile    []string
	DiscardPile []string
	PlayArea    []string

	ActionsRemaining int
	BuysRemaining    int
	GoldAvailable    int

	HP            int
	Mana          int
	VictoryPoints int

	// PrivateMarket is the player-exclusive purchasable pool, disjoint
	// from the common supply.
	PrivateMarket map[string]int
}

// CardCount returns the size of the player's full card multiset. Outside
// of setup it only grows, by exactly one per successful purchase.
func (p *PlayerState) CardCount() int {
	return len(p.Hand) + len(p.DrawPile) + len(p.DiscardPile) + len(p.PlayArea)
}

// HandContains reports whether the named card is currently in hand.
func (p *PlayerState) HandContains(name string) bool {
	for _, c := range p.Hand {
		if c == name {
			return true
		}
	}
	return false
}

// GameState is the single root of all mutable match state. The engine is
// its only owner; nothing outside the engine mutates it.
type GameState struct {
	MatchID string
	Turns   *rules.TurnManager

	Players     map[string]*PlayerState
	PlayerOrder []string

	CommonSupply map[string]int

	IsGameOver bool
	Winner     string

	// EventLog is the append-only record of headline events for the
	// match. Verbose sub-events go only to the external sink.
	EventLog []Event
}

// defaultSupply is the shared stock every match starts with.
var defaultSupply = map[string]int{
	"Copper":   60,
	"Silver":   40,
	"Gold":     30,
	"Estate":   24,
	"Duchy":    12,
	"Province": 12,
	"Village":  10,
	"Smithy":   10,
	"Market":   10,
}

func newGameState(matchID string, playerIDs []string) *GameState {
	supply := make(map[string]int, len(defaultSupply))
	for name, count := range defaultSupply {
		supply[name] = count
	}

	players := make(map[string]*PlayerState, len(playerIDs))
	for _, pid := range playerIDs {
		players[pid] = &PlayerState{ID: pid}
	}

	return &GameState{
		MatchID:      matchID,
		Turns:        rules.NewTurnManager(playerIDs),
		Players:      players,
		PlayerOrder:  append([]string(nil), playerIDs...),
		CommonSupply: supply,
	}
}
