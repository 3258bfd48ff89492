package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// CardRow mirrors one row of the tarot_cards table. Keywords and
// Symbolism are JSON arrays stored as text; the catalog loader decodes
// them into the domain type.
type CardRow struct {
	ID              string
	Name            string
	Arcana          string
	Suit            string
	Number          int
	Keywords        string
	MeaningUpright  string
	MeaningReversed string
	Symbolism       string
	Element         string
	Astrology       string
	ImageURL        string
}

// ReadingRecord is one saved reading. CardsJSON holds the three
// slot/card/narrative entries as produced by the reading service.
type ReadingRecord struct {
	ID              string
	CreatedAt       time.Time
	ProfileJSON     string
	CardsJSON       string
	NarrativeSource string // "model", "template", or "mixed"
}
