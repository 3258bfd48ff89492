package card

import "fmt"

// Arcana classifies which sub-deck a card belongs to.
type Arcana string

const (
	ArcanaMajor Arcana = "major"
	ArcanaMinor Arcana = "minor"
)

// Card is a single tarot card. Cards are loaded once per session from
// storage and treated as immutable afterwards.
type Card struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Arcana   Arcana   `json:"arcana"`
	Suit     string   `json:"suit,omitempty"`   // minor arcana only
	Number   int      `json:"number,omitempty"` // minor arcana only
	Keywords []string `json:"keywords"`
	Meaning  Meaning  `json:"meaning"`
	// Symbolism, Element and Astrology are decorative metadata; selection
	// never looks at them.
	Symbolism []string `json:"symbolism,omitempty"`
	Element   string   `json:"element,omitempty"`
	Astrology string   `json:"astrology,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
}

// Meaning holds the upright and reversed interpretation texts.
type Meaning struct {
	Upright  string `json:"upright"`
	Reversed string `json:"reversed"`
}

// Catalog is an immutable snapshot of the full card table, partitioned
// by arcana. MajorArcana and MinorArcana together are exactly AllCards.
type Catalog struct {
	MajorArcana []Card
	MinorArcana []Card
	AllCards    []Card
}

// NewCatalog partitions cards by arcana and validates the snapshot:
// ids must be unique and every card must carry a known arcana.
func NewCatalog(cards []Card) (Catalog, error) {
	seen := make(map[string]struct{}, len(cards))
	c := Catalog{AllCards: cards}
	for _, cd := range cards {
		if cd.ID == "" {
			return Catalog{}, fmt.Errorf("card %q has empty id", cd.Name)
		}
		if _, dup := seen[cd.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate card id %q", cd.ID)
		}
		seen[cd.ID] = struct{}{}

		switch cd.Arcana {
		case ArcanaMajor:
			c.MajorArcana = append(c.MajorArcana, cd)
		case ArcanaMinor:
			c.MinorArcana = append(c.MinorArcana, cd)
		default:
			return Catalog{}, fmt.Errorf("card %q has unknown arcana %q", cd.ID, cd.Arcana)
		}
	}
	return c, nil
}

// ByID returns the card with the given id, if present.
func (c Catalog) ByID(id string) (Card, bool) {
	for _, cd := range c.AllCards {
		if cd.ID == id {
			return cd, true
		}
	}
	return Card{}, false
}
