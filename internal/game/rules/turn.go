package rules

import "fmt"

// Phase represents the broad phases of a duel turn.
type Phase int

const (
	PhaseAction Phase = iota
	PhaseBuy
	PhaseCleanup
)

var phaseNames = map[Phase]string{
	PhaseAction:  "ACTION",
	PhaseBuy:     "BUY",
	PhaseCleanup: "CLEAN_UP",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// TurnManager tracks the current phase, the turn owner and turn progression.
// PhaseCleanup is transient: the engine runs cleanup synchronously inside
// EndTurn, so the manager never rests in that phase between operations.
type TurnManager struct {
	order      []string
	ownerIndex int
	turnNumber int
	phase      Phase
}

// NewTurnManager creates a turn manager starting at turn 1, action phase,
// with the first player in order owning the turn. The rotation order is
// fixed for the lifetime of the match.
func NewTurnManager(order []string) *TurnManager {
	owners := append([]string(nil), order...)
	return &TurnManager{
		order:      owners,
		ownerIndex: 0,
		turnNumber: 1,
		phase:      PhaseAction,
	}
}

// CurrentPhase returns the phase currently in progress.
func (tm *TurnManager) CurrentPhase() Phase {
	return tm.phase
}

// TurnOwner returns the player who currently has the turn.
func (tm *TurnManager) TurnOwner() string {
	return tm.order[tm.ownerIndex]
}

// TurnNumber returns the current turn number (1-based). It increments only
// when the rotation wraps back to the first player.
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// IsTurnOwner reports whether the given player currently has the turn.
func (tm *TurnManager) IsTurnOwner(playerID string) bool {
	return tm.TurnOwner() == playerID
}

// Order returns the fixed round-robin rotation order.
func (tm *TurnManager) Order() []string {
	return append([]string(nil), tm.order...)
}

// BeginBuy moves the turn from the action phase into the buy phase. It is a
// no-op when the buy phase is already in progress, so the treasure
// auto-advance rule can fire at most once per turn.
func (tm *TurnManager) BeginBuy() bool {
	if tm.phase != PhaseAction {
		return false
	}
	tm.phase = PhaseBuy
	return true
}

// EndTurn completes the buy phase, rotates the turn owner to the next
// player in the fixed order and resets the phase to action. The new owner
// is returned. Cleanup itself (discarding, redrawing, resource resets) is
// the engine's job and happens before this is called.
func (tm *TurnManager) EndTurn() string {
	tm.ownerIndex = (tm.ownerIndex + 1) % len(tm.order)
	if tm.ownerIndex == 0 {
		tm.turnNumber++
	}
	tm.phase = PhaseAction
	return tm.TurnOwner()
}
