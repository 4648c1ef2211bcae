package game

import "testing"

func TestDefaultCatalogLookup(t *testing.T) {
	catalog := DefaultCatalog()

	card, ok := catalog.Lookup("Smithy")
	if !ok {
		t.Fatal("expected Smithy in the default catalog")
	}
	if card.Kind != KindAction {
		t.Fatalf("expected Smithy to be an action card, got %s", card.Kind)
	}
	if card.AddCards != 3 {
		t.Fatalf("expected Smithy to draw 3, got %d", card.AddCards)
	}

	if _, ok := catalog.Lookup("Nonexistent"); ok {
		t.Fatal("expected lookup of an unknown card to miss")
	}
}

func TestDefaultCatalogCoversSupply(t *testing.T) {
	// Every card stocked by the common supply must resolve, otherwise it
	// can never be bought.
	catalog := DefaultCatalog()
	for name := range defaultSupply {
		if _, ok := catalog.Lookup(name); !ok {
			t.Fatalf("supply stocks %q but the catalog cannot resolve it", name)
		}
	}
}

func TestCatalogRegisterOverrides(t *testing.T) {
	catalog := DefaultCatalog()
	catalog.Register(Card{Name: "Copper", Cost: 1, Kind: KindTreasure, Value: 2})

	card, ok := catalog.Lookup("Copper")
	if !ok || card.Value != 2 {
		t.Fatalf("expected registered override to win, got %+v", card)
	}
}

func TestCardPlayable(t *testing.T) {
	if (Card{Kind: KindVictory}).Playable() {
		t.Fatal("victory cards must not be playable")
	}
	if !(Card{Kind: KindTreasure}).Playable() {
		t.Fatal("treasure cards must be playable")
	}
	if !(Card{Kind: KindAction}).Playable() {
		t.Fatal("action cards must be playable")
	}
}

func TestClassBookFallsBackToDefault(t *testing.T) {
	book := DefaultClassBook()

	warrior := book.Lookup("Warrior")
	if warrior.HP != 40 {
		t.Fatalf("expected Warrior hp 40, got %d", warrior.HP)
	}
	if warrior.PrivateMarket["BloodArrow"] != 5 {
		t.Fatalf("expected Warrior private market to stock 5 BloodArrow, got %d",
			warrior.PrivateMarket["BloodArrow"])
	}

	fallback := book.Lookup("NoSuchClass")
	if fallback.Name != DefaultClassName {
		t.Fatalf("expected unknown class to fall back to %s, got %s",
			DefaultClassName, fallback.Name)
	}
	if fallback.HP != 20 || fallback.Mana != 10 {
		t.Fatalf("unexpected default class stats: hp=%d mana=%d", fallback.HP, fallback.Mana)
	}

	empty := book.Lookup("")
	if empty.Name != DefaultClassName {
		t.Fatalf("expected empty selection to fall back to %s, got %s",
			DefaultClassName, empty.Name)
	}
}
