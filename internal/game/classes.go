package game

// ClassDefinition is the immutable starting loadout for a player: initial
// stats, deck composition and the player-exclusive market stock. It is
// consumed exactly once, during setup.
type ClassDefinition struct {
	Name          string
	HP            int
	Mana          int
	Gold          int
	Actions       int
	StartingDeck  []string
	PrivateMarket map[string]int
}

// DefaultClassName is the fallback used when a selection names a class the
// book does not know. Setup never fails on an unknown class.
const DefaultClassName = "Adventurer"

// ClassBook resolves class names to definitions.
type ClassBook struct {
	classes map[string]ClassDefinition
}

// NewClassBook creates a class book containing only the default class.
func NewClassBook() *ClassBook {
	b := &ClassBook{classes: make(map[string]ClassDefinition)}
	b.Register(defaultClass)
	return b
}

// DefaultClassBook returns the standard class roster.
func DefaultClassBook() *ClassBook {
	b := NewClassBook()
	for _, def := range standardClasses {
		b.Register(def)
	}
	return b
}

// Register adds or replaces a class definition.
func (b *ClassBook) Register(def ClassDefinition) {
	b.classes[def.Name] = def
}

// Lookup resolves a class by name, falling back to the default class when
// the name is unknown or empty.
func (b *ClassBook) Lookup(name string) ClassDefinition {
	if def, ok := b.classes[name]; ok {
		return def
	}
	return b.classes[DefaultClassName]
}

var defaultClass = ClassDefinition{
	Name:    DefaultClassName,
	HP:      20,
	Mana:    10,
	Gold:    0,
	Actions: 1,
	StartingDeck: []string{
		"Copper", "Copper", "Copper", "Copper", "Copper", "Copper", "Copper",
		"Estate", "Estate", "Estate",
	},
}

var standardClasses = []ClassDefinition{
	{
		Name:    "Warrior",
		HP:      40,
		Mana:    10,
		Gold:    0,
		Actions: 1,
		StartingDeck: []string{
			"Copper", "Copper", "Copper", "Copper", "Copper", "Copper", "Copper",
			"Estate", "Estate", "Estate",
		},
		PrivateMarket: map[string]int{"BloodArrow": 5},
	},
	{
		Name:    "Mage",
		HP:      25,
		Mana:    10,
		Gold:    0,
		Actions: 1,
		StartingDeck: []string{
			"Copper", "Copper", "Copper", "Copper", "Copper",
			"Estate", "Estate", "Estate",
			"Madness", "Madness",
		},
		PrivateMarket: map[string]int{"BloodDraw": 3},
	},
}
