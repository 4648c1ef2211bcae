package game

// resolveEffect applies a card's play effect for the acting player. The
// kind set is closed, so dispatch is a plain switch.
//
// Action cards apply their deltas in a fixed order: actions, buys, gold,
// mana, then self HP, then opponent HP, then the draw. HP changes route
// through applyHPChange so a lethal cost ends the game before any later
// step runs; the draw checks the game-over flag and becomes a no-op.
func (e *Engine) resolveEffect(card Card, actorID string) {
	p := e.state.Players[actorID]

	switch card.Kind {
	case KindTreasure:
		p.GoldAvailable += card.Value
		e.emitDelta(actorID, "gold", card.Value)

	case KindVictory:
		// Victory cards score at purchase time, never at play time.

	case KindAction:
		if card.AddActions != 0 {
			p.ActionsRemaining += card.AddActions
			e.emitDelta(actorID, "actions", card.AddActions)
		}
		if card.AddBuys != 0 {
			p.BuysRemaining += card.AddBuys
			e.emitDelta(actorID, "buys", card.AddBuys)
		}
		if card.AddGold != 0 {
			p.GoldAvailable += card.AddGold
			e.emitDelta(actorID, "gold", card.AddGold)
		}
		if card.AddMana != 0 {
			p.Mana += card.AddMana
			e.emitDelta(actorID, "mana", card.AddMana)
		}

		if card.AddHP != 0 {
			e.applyHPChange(actorID, card.AddHP)
		}
		if card.OpAddHP != 0 {
			e.applyHPChange(e.opponentOf(actorID), card.OpAddHP)
		}

		if card.AddCards > 0 {
			e.drawCards(actorID, card.AddCards)
		}
	}
}
