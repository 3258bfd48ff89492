package card

import "testing"

func TestNewCatalogPartition(t *testing.T) {
	cards := []Card{
		{ID: "major-00", Name: "The Fool", Arcana: ArcanaMajor},
		{ID: "major-01", Name: "The Magician", Arcana: ArcanaMajor},
		{ID: "wands-01", Name: "Ace of Wands", Arcana: ArcanaMinor, Suit: "wands", Number: 1},
	}

	c, err := NewCatalog(cards)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if len(c.MajorArcana)+len(c.MinorArcana) != len(c.AllCards) {
		t.Errorf("partition sizes: %d + %d != %d", len(c.MajorArcana), len(c.MinorArcana), len(c.AllCards))
	}

	major := make(map[string]struct{})
	for _, cd := range c.MajorArcana {
		major[cd.ID] = struct{}{}
	}
	for _, cd := range c.MinorArcana {
		if _, ok := major[cd.ID]; ok {
			t.Errorf("card %s appears in both arcana partitions", cd.ID)
		}
	}
}

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	cards := []Card{
		{ID: "major-00", Arcana: ArcanaMajor},
		{ID: "major-00", Arcana: ArcanaMajor},
	}
	if _, err := NewCatalog(cards); err == nil {
		t.Fatal("expected error for duplicate ids")
	}
}

func TestNewCatalogRejectsUnknownArcana(t *testing.T) {
	if _, err := NewCatalog([]Card{{ID: "x", Arcana: "court"}}); err == nil {
		t.Fatal("expected error for unknown arcana")
	}
}

func TestByID(t *testing.T) {
	c, err := NewCatalog([]Card{{ID: "major-07", Name: "The Chariot", Arcana: ArcanaMajor}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	got, ok := c.ByID("major-07")
	if !ok || got.Name != "The Chariot" {
		t.Errorf("ByID(major-07) = %+v, %v", got, ok)
	}
	if _, ok := c.ByID("major-99"); ok {
		t.Error("ByID(major-99) should not be found")
	}
}
