package game

import "math/rand"

// DeckManager moves cards between one player's piles. It holds a reference
// into the GameState-owned PlayerState and mutates it directly.
//
// Pile transfers never fail here; callers validate card presence before
// asking for a move. The multiset of (hand, draw, discard, play area) is
// conserved by every operation except InitializeFromComposition.
type DeckManager struct {
	player *PlayerState
	rng    *rand.Rand
}

// NewDeckManager creates a deck manager for the given player. The random
// source is per-match and injectable so a seeded source reproduces the
// exact shuffle sequence.
func NewDeckManager(player *PlayerState, rng *rand.Rand) *DeckManager {
	return &DeckManager{player: player, rng: rng}
}

// Draw moves up to n cards from the top of the draw pile to the hand.
// When the draw pile runs out mid-draw, the discard pile is reshuffled
// into it and drawing continues. When both piles are empty the draw stops
// early. Returns the number of cards actually drawn, which may be zero.
func (d *DeckManager) Draw(n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		if len(d.player.DrawPile) == 0 {
			d.ShuffleDiscardIntoDraw()
		}
		if len(d.player.DrawPile) == 0 {
			break
		}
		top := len(d.player.DrawPile) - 1
		card := d.player.DrawPile[top]
		d.player.DrawPile = d.player.DrawPile[:top]
		d.player.Hand = append(d.player.Hand, card)
		drawn++
	}
	return drawn
}

// ShuffleDiscardIntoDraw moves the whole discard pile into the draw pile
// in a uniformly random order. No-op when the discard pile is empty.
func (d *DeckManager) ShuffleDiscardIntoDraw() {
	if len(d.player.DiscardPile) == 0 {
		return
	}
	pile := append(d.player.DrawPile, d.player.DiscardPile...)
	moved := pile[len(d.player.DrawPile):]
	d.rng.Shuffle(len(moved), func(i, j int) {
		moved[i], moved[j] = moved[j], moved[i]
	})
	d.player.DrawPile = pile
	d.player.DiscardPile = nil
}

// DiscardHand moves every card in hand to the discard pile.
func (d *DeckManager) DiscardHand() {
	d.player.DiscardPile = append(d.player.DiscardPile, d.player.Hand...)
	d.player.Hand = nil
}

// MoveToPlayArea moves the first matching card from hand to the play area.
func (d *DeckManager) MoveToPlayArea(name string) {
	for i, c := range d.player.Hand {
		if c == name {
			d.player.Hand = append(d.player.Hand[:i], d.player.Hand[i+1:]...)
			d.player.PlayArea = append(d.player.PlayArea, name)
			return
		}
	}
}

// MoveManyToDiscard appends the given cards to the discard pile.
func (d *DeckManager) MoveManyToDiscard(names []string) {
	d.player.DiscardPile = append(d.player.DiscardPile, names...)
}

// AddToDiscard appends one newly gained card to the discard pile. This is
// the purchase path and the one transfer that grows the multiset.
func (d *DeckManager) AddToDiscard(name string) {
	d.player.DiscardPile = append(d.player.DiscardPile, name)
}

// InitializeFromComposition sets the draw pile to a shuffled copy of the
// given composition. Used once at setup.
func (d *DeckManager) InitializeFromComposition(names []string) {
	pile := append([]string(nil), names...)
	d.rng.Shuffle(len(pile), func(i, j int) {
		pile[i], pile[j] = pile[j], pile[i]
	})
	d.player.DrawPile = pile
}
