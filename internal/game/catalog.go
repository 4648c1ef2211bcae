package game

// CardKind is the card category. The set is closed, so effects dispatch on
// the kind with a switch rather than through an interface.
type CardKind int

const (
	KindTreasure CardKind = iota
	KindAction
	KindVictory
)

var kindNames = map[CardKind]string{
	KindTreasure: "TREASURE",
	KindAction:   "ACTION",
	KindVictory:  "VICTORY",
}

func (k CardKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Card is the immutable static definition of a card. Identity is the name.
// Only the parameters matching the kind are meaningful: Value for
// treasures, Points for victory cards, the Add* deltas for actions.
type Card struct {
	Name string
	Cost int
	Kind CardKind

	Value  int // gold produced when a treasure is played
	Points int // victory points credited at purchase

	AddCards   int
	AddActions int
	AddBuys    int
	AddGold    int
	AddMana    int
	AddHP      int // self HP delta, may be negative
	OpAddHP    int // opponent HP delta, may be negative
}

// Playable reports whether playing the card from hand is ever legal.
// Victory cards only score; they have no play effect.
func (c Card) Playable() bool {
	return c.Kind == KindTreasure || c.Kind == KindAction
}

// Catalog is an immutable card registry keyed by name. It must be fully
// populated before the engine runs; a missing name is a normal rule
// condition, not a fatal error.
type Catalog struct {
	cards map[string]Card
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{cards: make(map[string]Card)}
}

// DefaultCatalog returns a catalog populated with the base set.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, card := range baseSet {
		c.Register(card)
	}
	return c
}

// Register adds or replaces a card definition. Intended for catalog
// population at startup and for fixtures in tests.
func (c *Catalog) Register(card Card) {
	c.cards[card.Name] = card
}

// Lookup resolves a card by name.
func (c *Catalog) Lookup(name string) (Card, bool) {
	card, ok := c.cards[name]
	return card, ok
}

// Size returns the number of registered cards.
func (c *Catalog) Size() int {
	return len(c.cards)
}

// baseSet is the standard card table. Market is the usual
// +1 card / +1 action / +1 buy / +1 gold package; the supply stocks it, so
// it needs a definition to be purchasable at all.
var baseSet = []Card{
	{Name: "Copper", Cost: 0, Kind: KindTreasure, Value: 1},
	{Name: "Silver", Cost: 3, Kind: KindTreasure, Value: 2},
	{Name: "Gold", Cost: 6, Kind: KindTreasure, Value: 3},

	{Name: "Estate", Cost: 2, Kind: KindVictory, Points: 1},
	{Name: "Duchy", Cost: 5, Kind: KindVictory, Points: 3},
	{Name: "Province", Cost: 8, Kind: KindVictory, Points: 6},

	{Name: "Village", Cost: 3, Kind: KindAction, AddCards: 1, AddActions: 2},
	{Name: "Smithy", Cost: 4, Kind: KindAction, AddCards: 3},
	{Name: "Market", Cost: 5, Kind: KindAction, AddCards: 1, AddActions: 1, AddBuys: 1, AddGold: 1},

	// Blood cards trade HP for tempo. Self damage resolves before any
	// draw, so a lethal cost ends the game first.
	{Name: "BloodDraw", Cost: 3, Kind: KindAction, AddCards: 3, AddHP: -10},
	{Name: "BloodArrow", Cost: 2, Kind: KindAction, AddHP: -5, OpAddHP: -15},
	{Name: "Madness", Cost: 4, Kind: KindAction, AddActions: 3, AddHP: -20},
	{Name: "HolyLight", Cost: 2, Kind: KindAction, AddHP: 15},
}
