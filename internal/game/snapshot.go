package game

import "time"

// PlayerSnapshot is a deep copy of one player's state.
type PlayerSnapshot struct {
	ID          string   `json:"id"`
	Hand        []string `json:"hand"`
	DrawPile    []string `json:"draw_pile"`
	DiscardPile []string `json:"discard_pile"`
	PlayArea    []string `json:"play_area"`

	ActionsRemaining int `json:"actions_remaining"`
	BuysRemaining    int `json:"buys_remaining"`
	GoldAvailable    int `json:"gold_available"`

	HP            int `json:"hp"`
	Mana          int `json:"mana"`
	VictoryPoints int `json:"victory_points"`

	PrivateMarket map[string]int `json:"private_market,omitempty"`
}

// Snapshot is a full, immutable copy of match state at one point in time.
// Snapshots back the replay recording and the STATE_SNAPSHOT events.
type Snapshot struct {
	MatchID    string `json:"match_id"`
	Phase      string `json:"phase"`
	TurnOwner  string `json:"turn_owner"`
	TurnCount  int    `json:"turn_count"`
	IsGameOver bool   `json:"is_game_over"`
	Winner     string `json:"winner,omitempty"`

	CommonSupply map[string]int            `json:"common_supply"`
	Players      map[string]PlayerSnapshot `json:"players"`

	TakenAt time.Time `json:"taken_at"`
}

// Snapshot returns a deep copy of the current match state.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() *Snapshot {
	supply := make(map[string]int, len(e.state.CommonSupply))
	for name, count := range e.state.CommonSupply {
		supply[name] = count
	}

	players := make(map[string]PlayerSnapshot, len(e.state.Players))
	for pid, p := range e.state.Players {
		var market map[string]int
		if p.PrivateMarket != nil {
			market = make(map[string]int, len(p.PrivateMarket))
			for name, count := range p.PrivateMarket {
				market[name] = count
			}
		}
		players[pid] = PlayerSnapshot{
			ID:               pid,
			Hand:             append([]string(nil), p.Hand...),
			DrawPile:         append([]string(nil), p.DrawPile...),
			DiscardPile:      append([]string(nil), p.DiscardPile...),
			PlayArea:         append([]string(nil), p.PlayArea...),
			ActionsRemaining: p.ActionsRemaining,
			BuysRemaining:    p.BuysRemaining,
			GoldAvailable:    p.GoldAvailable,
			HP:               p.HP,
			Mana:             p.Mana,
			VictoryPoints:    p.VictoryPoints,
			PrivateMarket:    market,
		}
	}

	return &Snapshot{
		MatchID:      e.state.MatchID,
		Phase:        e.state.Turns.CurrentPhase().String(),
		TurnOwner:    e.state.Turns.TurnOwner(),
		TurnCount:    e.state.Turns.TurnNumber(),
		IsGameOver:   e.state.IsGameOver,
		Winner:       e.state.Winner,
		CommonSupply: supply,
		Players:      players,
		TakenAt:      time.Now(),
	}
}

// Events returns a copy of the append-only headline event log.
func (e *Engine) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Event(nil), e.state.EventLog...)
}
