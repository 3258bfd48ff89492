package catalog

import (
	"errors"
	"testing"

	"github.com/profarcana/arcana/internal/card"
	"github.com/profarcana/arcana/internal/storage"
)

type fakeLister struct {
	rows []storage.CardRow
	err  error
}

func (f fakeLister) ListCards() ([]storage.CardRow, error) {
	return f.rows, f.err
}

func TestLoadPartitionsAndDecodes(t *testing.T) {
	lister := fakeLister{rows: []storage.CardRow{
		{
			ID: "major-00", Name: "The Fool", Arcana: "major",
			Keywords:       `["beginnings","potential"]`,
			MeaningUpright: "up", MeaningReversed: "down",
			Symbolism: `["cliff edge"]`,
		},
		{
			ID: "wands-03", Name: "Three of Wands", Arcana: "minor",
			Suit: "wands", Number: 3,
			Keywords:       `["expansion"]`,
			MeaningUpright: "u", MeaningReversed: "r",
			Symbolism: `[]`,
		},
	}}

	cat, err := Load(lister)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cat.MajorArcana) != 1 || len(cat.MinorArcana) != 1 || len(cat.AllCards) != 2 {
		t.Fatalf("partition = %d/%d/%d", len(cat.MajorArcana), len(cat.MinorArcana), len(cat.AllCards))
	}

	fool, ok := cat.ByID("major-00")
	if !ok {
		t.Fatal("major-00 not found")
	}
	if fool.Arcana != card.ArcanaMajor {
		t.Errorf("arcana = %q", fool.Arcana)
	}
	if len(fool.Keywords) != 2 || fool.Keywords[0] != "beginnings" {
		t.Errorf("keywords = %v", fool.Keywords)
	}
	if fool.Meaning.Upright != "up" || fool.Meaning.Reversed != "down" {
		t.Errorf("meaning = %+v", fool.Meaning)
	}
}

func TestLoadEmptyTableIsError(t *testing.T) {
	if _, err := Load(fakeLister{}); err == nil {
		t.Fatal("expected error for empty card table")
	}
}

func TestLoadPropagatesStoreError(t *testing.T) {
	want := errors.New("disk on fire")
	_, err := Load(fakeLister{err: want})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want wrapped %v", err, want)
	}
}

func TestLoadRejectsBadKeywordJSON(t *testing.T) {
	lister := fakeLister{rows: []storage.CardRow{
		{ID: "major-00", Arcana: "major", Keywords: `not json`},
	}}
	if _, err := Load(lister); err == nil {
		t.Fatal("expected error for malformed keywords")
	}
}

func TestLoadAgainstRealStore(t *testing.T) {
	s, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer s.Close()

	cat, err := Load(s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cat.MajorArcana) != 22 {
		t.Errorf("major arcana = %d, want 22", len(cat.MajorArcana))
	}
	if len(cat.MajorArcana)+len(cat.MinorArcana) != len(cat.AllCards) {
		t.Error("partition does not cover all cards")
	}
}
