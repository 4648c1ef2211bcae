package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duelforge/duel-server-go/internal/game/rules"
)

// Engine is the single entry point for a match. Every public operation
// validates against the current state, mutates it, resolves card effects
// and emits events, all under one lock so operations appear atomic to
// callers.
//
// Rule violations come back as *RuleError and leave state untouched.
// Contract breaches (setup twice, operations before setup, unknown player
// ids) come back as plain errors.
type Engine struct {
	mu sync.Mutex

	logger  *zap.Logger
	state   *GameState
	catalog *Catalog
	classes *ClassBook
	decks   map[string]*DeckManager
	rng     *rand.Rand
	sink    Sink
	replay  *Replay

	verbose   bool
	setupDone bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink directs engine events to the given sink.
func WithSink(sink Sink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithVerbose enables low-level sub-events (individual stat deltas) on the
// sink. The flag changes log verbosity only, never mutation outcomes.
func WithVerbose(verbose bool) Option {
	return func(e *Engine) { e.verbose = verbose }
}

// WithSeed fixes the shuffle source so a match's draw sequence is
// reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects a shuffle source directly.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithCatalog replaces the default card catalog.
func WithCatalog(c *Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithClassBook replaces the default class roster.
func WithClassBook(b *ClassBook) Option {
	return func(e *Engine) { e.classes = b }
}

// WithSupply overrides individual common-supply stock counts.
func WithSupply(overrides map[string]int) Option {
	return func(e *Engine) {
		for name, count := range overrides {
			e.state.CommonSupply[name] = count
		}
	}
}

// NewEngine creates an engine for a two-player match. The player order
// given here is the fixed turn rotation order.
func NewEngine(matchID string, playerIDs []string, logger *zap.Logger, opts ...Option) (*Engine, error) {
	if len(playerIDs) != 2 {
		return nil, fmt.Errorf("game: expected exactly 2 players, got %d", len(playerIDs))
	}
	if playerIDs[0] == playerIDs[1] {
		return nil, fmt.Errorf("game: duplicate player id %q", playerIDs[0])
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		logger:  logger,
		state:   newGameState(matchID, playerIDs),
		catalog: DefaultCatalog(),
		classes: DefaultClassBook(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		sink:    NopSink{},
		replay:  NewReplay(matchID),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.decks = make(map[string]*DeckManager, len(playerIDs))
	for _, pid := range playerIDs {
		e.decks[pid] = NewDeckManager(e.state.Players[pid], e.rng)
	}

	return e, nil
}

// MatchID returns the match identifier.
func (e *Engine) MatchID() string {
	return e.state.MatchID
}

// Setup resolves each player's class selection, initializes stats, private
// market and starting deck, and draws the opening hand of 5. Selections
// naming an unknown class fall back to the default class; missing entries
// do the same. Calling Setup twice is a contract breach.
func (e *Engine) Setup(classSelections map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.setupDone {
		return ErrAlreadySetUp
	}

	for _, pid := range e.state.PlayerOrder {
		def := e.classes.Lookup(classSelections[pid])
		p := e.state.Players[pid]

		p.HP = def.HP
		p.Mana = def.Mana
		p.GoldAvailable = def.Gold
		p.ActionsRemaining = def.Actions
		p.BuysRemaining = 1
		p.PrivateMarket = make(map[string]int, len(def.PrivateMarket))
		for name, count := range def.PrivateMarket {
			p.PrivateMarket[name] = count
		}
		p.VictoryPoints = e.startingPoints(def.StartingDeck)

		e.decks[pid].InitializeFromComposition(def.StartingDeck)
		e.decks[pid].Draw(5)

		e.logger.Info("player initialized",
			zap.String("match_id", e.state.MatchID),
			zap.String("player_id", pid),
			zap.String("class", def.Name),
			zap.Int("hp", p.HP),
		)
	}

	e.setupDone = true
	e.emitInfo(EventGameStarted, "", "game started, each player draws 5 cards")
	e.recordSnapshot()
	return nil
}

// startingPoints sums the victory points printed on the starting deck.
func (e *Engine) startingPoints(composition []string) int {
	points := 0
	for _, name := range composition {
		if card, ok := e.catalog.Lookup(name); ok && card.Kind == KindVictory {
			points += card.Points
		}
	}
	return points
}

// OpponentID returns the other player's id.
func (e *Engine) OpponentID(playerID string) (string, error) {
	for _, pid := range e.state.PlayerOrder {
		if pid != playerID {
			return pid, nil
		}
	}
	return "", fmt.Errorf("game: unknown player %q", playerID)
}

// opponentOf is OpponentID for ids already known to be valid.
func (e *Engine) opponentOf(playerID string) string {
	for _, pid := range e.state.PlayerOrder {
		if pid != playerID {
			return pid
		}
	}
	return ""
}

// PlayCard plays the named card from the player's hand. Validation
// collects every applicable violation before rejecting; a rejected play
// changes nothing. On success the card moves to the play area and its
// effect is resolved.
func (e *Engine) PlayCard(playerID, cardName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.setupDone {
		return ErrNotSetUp
	}
	p, ok := e.state.Players[playerID]
	if !ok {
		return fmt.Errorf("game: unknown player %q", playerID)
	}

	if e.state.IsGameOver {
		return e.reject(playerID, reasonGameOver)
	}

	var reasons []string
	if !e.state.Turns.IsTurnOwner(playerID) {
		reasons = append(reasons, "not your turn")
	}
	if !p.HandContains(cardName) {
		reasons = append(reasons, fmt.Sprintf("card %q is not in hand", cardName))
	}

	card, found := e.catalog.Lookup(cardName)
	if !found {
		reasons = append(reasons, fmt.Sprintf("unknown card %q", cardName))
	} else {
		switch card.Kind {
		case KindAction:
			if e.state.Turns.CurrentPhase() != rules.PhaseAction {
				reasons = append(reasons, "action cards can only be played in the action phase")
			}
			if p.ActionsRemaining <= 0 {
				reasons = append(reasons, "no actions remaining")
			}
		case KindTreasure:
			if phase := e.state.Turns.CurrentPhase(); phase != rules.PhaseAction && phase != rules.PhaseBuy {
				reasons = append(reasons, "treasure cards can only be played in the action or buy phase")
			}
		default:
			reasons = append(reasons, fmt.Sprintf("card %q cannot be played", cardName))
		}
	}

	if len(reasons) > 0 {
		return e.reject(playerID, reasons...)
	}

	if card.Kind == KindAction {
		p.ActionsRemaining--
	}
	if card.Kind == KindTreasure && e.state.Turns.CurrentPhase() == rules.PhaseAction {
		e.state.Turns.BeginBuy()
		e.emitInfo(EventPhaseChanged, playerID,
			fmt.Sprintf("%s played a treasure, advancing to the buy phase", playerID))
	}

	e.decks[playerID].MoveToPlayArea(cardName)
	e.emitInfo(EventCardPlayed, playerID, fmt.Sprintf("%s played %s", playerID, cardName))
	e.logger.Debug("card played",
		zap.String("match_id", e.state.MatchID),
		zap.String("player_id", playerID),
		zap.String("card", cardName),
	)

	e.resolveEffect(card, playerID)
	e.recordSnapshot()
	return nil
}

// BuyCard purchases the named card during the buy phase. Validation
// collects every applicable violation. The acting player's private market
// takes precedence over the common supply when the card exists in both;
// whichever pool is relevant is the one whose stock is checked and
// decremented. Victory cards score immediately on purchase.
func (e *Engine) BuyCard(playerID, cardName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.setupDone {
		return ErrNotSetUp
	}
	p, ok := e.state.Players[playerID]
	if !ok {
		return fmt.Errorf("game: unknown player %q", playerID)
	}

	if e.state.IsGameOver {
		return e.reject(playerID, reasonGameOver)
	}

	var reasons []string
	if e.state.Turns.CurrentPhase() != rules.PhaseBuy {
		reasons = append(reasons, "not in the buy phase")
	}
	if p.BuysRemaining <= 0 {
		reasons = append(reasons, "no buys remaining")
	}

	card, found := e.catalog.Lookup(cardName)
	if !found {
		reasons = append(reasons, fmt.Sprintf("unknown card %q", cardName))
	} else if p.GoldAvailable < card.Cost {
		reasons = append(reasons,
			fmt.Sprintf("not enough gold (need %d, have %d)", card.Cost, p.GoldAvailable))
	}

	_, fromPrivate := p.PrivateMarket[cardName]
	if fromPrivate {
		if p.PrivateMarket[cardName] <= 0 {
			reasons = append(reasons, fmt.Sprintf("card %q is out of stock", cardName))
		}
	} else if e.state.CommonSupply[cardName] <= 0 {
		reasons = append(reasons, fmt.Sprintf("card %q is out of stock", cardName))
	}

	if len(reasons) > 0 {
		return e.reject(playerID, reasons...)
	}

	p.BuysRemaining--
	p.GoldAvailable -= card.Cost
	if fromPrivate {
		p.PrivateMarket[cardName]--
	} else {
		e.state.CommonSupply[cardName]--
	}
	e.decks[playerID].AddToDiscard(cardName)

	if card.Kind == KindVictory {
		p.VictoryPoints += card.Points
		e.emitDelta(playerID, "victory_points", card.Points)
	}

	source := "supply"
	if fromPrivate {
		source = "private market"
	}
	e.emitInfo(EventCardBought, playerID,
		fmt.Sprintf("%s bought %s from the %s", playerID, cardName, source))
	e.logger.Debug("card bought",
		zap.String("match_id", e.state.MatchID),
		zap.String("player_id", playerID),
		zap.String("card", cardName),
		zap.Bool("private_market", fromPrivate),
	)
	e.recordSnapshot()
	return nil
}

// AdvancePhase moves ACTION -> BUY, or ends the turn when in BUY: cleanup
// runs synchronously (play area and hand to discard, per-turn resources
// reset, redraw to 5) and the turn passes to the next player.
func (e *Engine) AdvancePhase() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.setupDone {
		return ErrNotSetUp
	}
	if e.state.IsGameOver {
		return e.reject(e.state.Turns.TurnOwner(), reasonGameOver)
	}

	switch e.state.Turns.CurrentPhase() {
	case rules.PhaseAction:
		e.state.Turns.BeginBuy()
		e.emitInfo(EventPhaseChanged, e.state.Turns.TurnOwner(), "advancing to the buy phase")
	case rules.PhaseBuy:
		e.endTurn()
	}

	e.recordSnapshot()
	return nil
}

// endTurn runs the transient cleanup phase and rotates the turn owner.
func (e *Engine) endTurn() {
	owner := e.state.Turns.TurnOwner()
	p := e.state.Players[owner]
	dm := e.decks[owner]

	dm.MoveManyToDiscard(p.PlayArea)
	p.PlayArea = nil
	dm.DiscardHand()

	p.ActionsRemaining = 1
	p.BuysRemaining = 1
	p.GoldAvailable = 0

	drawn := dm.Draw(5)
	if drawn > 0 {
		e.emitDelta(owner, "cards_drawn", drawn)
	}

	next := e.state.Turns.EndTurn()
	e.emitInfo(EventTurnEnded, owner,
		fmt.Sprintf("turn over, it is now %s's turn", next))
	e.logger.Debug("turn ended",
		zap.String("match_id", e.state.MatchID),
		zap.String("previous_owner", owner),
		zap.String("turn_owner", next),
		zap.Int("turn", e.state.Turns.TurnNumber()),
	)
}

// applyHPChange adds amount (signed) to the target's HP. This is the only
// path by which the match can end: when HP drops to zero or below the
// game-over flag latches and the other player is recorded as winner.
func (e *Engine) applyHPChange(targetID string, amount int) {
	if e.state.IsGameOver || amount == 0 {
		return
	}

	target := e.state.Players[targetID]
	target.HP += amount

	verb := "healed"
	if amount < 0 {
		verb = "damaged"
	}
	e.emitInfo(EventHPChanged, targetID,
		fmt.Sprintf("%s %s for %d (hp now %d)", targetID, verb, abs(amount), target.HP))

	if target.HP <= 0 {
		e.state.IsGameOver = true
		e.state.Winner = e.opponentOf(targetID)
		e.emitInfo(EventGameOver, targetID,
			fmt.Sprintf("%s has fallen, %s wins", targetID, e.state.Winner))
		e.logger.Info("game over",
			zap.String("match_id", e.state.MatchID),
			zap.String("loser", targetID),
			zap.String("winner", e.state.Winner),
		)
	}
}

// drawCards draws for a player mid-effect. A draw after game over is a
// no-op, not an error.
func (e *Engine) drawCards(playerID string, n int) {
	if e.state.IsGameOver {
		return
	}
	drawn := e.decks[playerID].Draw(n)
	if drawn > 0 {
		e.emitInfo(EventCardsDrawn, playerID,
			fmt.Sprintf("%s drew %d card(s)", playerID, drawn))
	}
}

// reject emits an ERROR event and returns the collected violations.
func (e *Engine) reject(playerID string, reasons ...string) error {
	err := newRuleError(reasons...)
	e.emitError(playerID, err.Error())
	return err
}

// Phase returns the current phase.
func (e *Engine) Phase() rules.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Turns.CurrentPhase()
}

// TurnOwner returns the player who currently has the turn.
func (e *Engine) TurnOwner() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Turns.TurnOwner()
}

// TurnCount returns the current turn number.
func (e *Engine) TurnCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Turns.TurnNumber()
}

// GameOver returns the terminal flag and the winner, if any.
func (e *Engine) GameOver() (bool, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.IsGameOver, e.state.Winner
}

// Replay returns the match's snapshot recording.
func (e *Engine) Replay() *Replay {
	return e.replay
}

// emitInfo records a headline event in the state log and forwards it to
// the sink.
func (e *Engine) emitInfo(typ EventType, actor, message string) {
	ev := Event{
		ID:      uuid.NewString(),
		Kind:    EventKindInfo,
		Type:    typ,
		Actor:   actor,
		Message: message,
		At:      time.Now(),
	}
	e.state.EventLog = append(e.state.EventLog, ev)
	e.sink.Emit(ev)
}

// emitError records a rule-violation event.
func (e *Engine) emitError(actor, message string) {
	ev := Event{
		ID:      uuid.NewString(),
		Kind:    EventKindError,
		Type:    EventRuleViolation,
		Actor:   actor,
		Message: message,
		At:      time.Now(),
	}
	e.state.EventLog = append(e.state.EventLog, ev)
	e.sink.Emit(ev)
}

// emitDelta sends a verbose-only stat delta sub-event to the sink. It
// never touches game state, so verbosity cannot change outcomes.
func (e *Engine) emitDelta(actor, stat string, delta int) {
	if !e.verbose {
		return
	}
	e.sink.Emit(Event{
		ID:      uuid.NewString(),
		Kind:    EventKindInfo,
		Type:    EventStatDelta,
		Actor:   actor,
		Message: fmt.Sprintf("%s %+d", stat, delta),
		At:      time.Now(),
	})
}

// recordSnapshot stores a full-state snapshot in the replay and sends a
// STATE_SNAPSHOT event to the sink.
func (e *Engine) recordSnapshot() {
	snap := e.snapshotLocked()
	e.replay.RecordState(snap)
	e.sink.Emit(Event{
		ID:       uuid.NewString(),
		Kind:     EventKindSnapshot,
		Type:     EventSnapshot,
		Message:  "state snapshot",
		Snapshot: snap,
		At:       time.Now(),
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
