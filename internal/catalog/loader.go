// Package catalog loads the card table from storage into an immutable
// in-memory snapshot. The snapshot is built once at startup and shared
// by reference; there is no mutable package-level deck state.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/profarcana/arcana/internal/card"
	"github.com/profarcana/arcana/internal/storage"
)

// CardLister is the storage surface the loader needs.
// Implemented by storage.Store.
type CardLister interface {
	ListCards() ([]storage.CardRow, error)
}

// Load reads every card row, decodes it into the domain type and
// returns a validated Catalog. An empty table is an error: the selector
// must never run against an empty pool, so a missing seed has to
// surface at startup rather than as a broken reading.
func Load(store CardLister) (card.Catalog, error) {
	rows, err := store.ListCards()
	if err != nil {
		return card.Catalog{}, fmt.Errorf("listing cards: %w", err)
	}
	if len(rows) == 0 {
		return card.Catalog{}, fmt.Errorf("card table is empty")
	}

	cards := make([]card.Card, 0, len(rows))
	for _, row := range rows {
		c, err := fromRow(row)
		if err != nil {
			return card.Catalog{}, fmt.Errorf("card %s: %w", row.ID, err)
		}
		cards = append(cards, c)
	}

	cat, err := card.NewCatalog(cards)
	if err != nil {
		return card.Catalog{}, fmt.Errorf("building catalog: %w", err)
	}
	return cat, nil
}

func fromRow(row storage.CardRow) (card.Card, error) {
	var keywords []string
	if err := json.Unmarshal([]byte(row.Keywords), &keywords); err != nil {
		return card.Card{}, fmt.Errorf("decoding keywords: %w", err)
	}

	var symbolism []string
	if row.Symbolism != "" {
		if err := json.Unmarshal([]byte(row.Symbolism), &symbolism); err != nil {
			return card.Card{}, fmt.Errorf("decoding symbolism: %w", err)
		}
	}

	return card.Card{
		ID:       row.ID,
		Name:     row.Name,
		Arcana:   card.Arcana(row.Arcana),
		Suit:     row.Suit,
		Number:   row.Number,
		Keywords: keywords,
		Meaning: card.Meaning{
			Upright:  row.MeaningUpright,
			Reversed: row.MeaningReversed,
		},
		Symbolism: symbolism,
		Element:   row.Element,
		Astrology: row.Astrology,
		ImageURL:  row.ImageURL,
	}, nil
}
