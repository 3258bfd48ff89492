package reading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/profarcana/arcana/internal/card"
	"github.com/profarcana/arcana/internal/narrative"
	"github.com/profarcana/arcana/internal/selection"
	"github.com/profarcana/arcana/internal/storage"
	"github.com/profarcana/arcana/internal/themes"
)

// ErrNoProfileData is returned when a reading is requested without any
// usable profile content. Callers route this back to the entry state;
// it is the only user-facing failure the reading flow produces.
var ErrNoProfileData = errors.New("no profile data supplied")

// ReadingStore is the persistence surface the service needs.
// Implemented by storage.Store.
type ReadingStore interface {
	SaveReading(storage.ReadingRecord) error
	GetReading(id string) (storage.ReadingRecord, error)
	ListReadings(limit int) ([]storage.ReadingRecord, error)
	DeleteReading(id string) error
}

// Service runs the full reading pipeline: analyze the profile, draw
// three cards from the major arcana, generate narratives, persist.
type Service struct {
	catalog   card.Catalog
	analyzer  *themes.Analyzer
	selector  *selection.Selector
	generator *narrative.Generator
	store     ReadingStore
}

// NewService wires a Service. The catalog must be a validated non-empty
// snapshot from the loader.
func NewService(cat card.Catalog, analyzer *themes.Analyzer, selector *selection.Selector, generator *narrative.Generator, store ReadingStore) *Service {
	return &Service{
		catalog:   cat,
		analyzer:  analyzer,
		selector:  selector,
		generator: generator,
		store:     store,
	}
}

// NewReading draws a fresh reading for the given profile and persists it.
func (s *Service) NewReading(ctx context.Context, p *themes.Profile) (Reading, error) {
	if p.IsEmpty() {
		return Reading{}, ErrNoProfileData
	}
	p.Normalize()

	ts := s.analyzer.Analyze(p)
	picks := s.selector.Select(ts, s.catalog.MajorArcana)
	if len(picks) == 0 {
		// Loader guarantees a non-empty catalog; reaching this means the
		// service was wired against one anyway.
		return Reading{}, fmt.Errorf("card pool is empty")
	}

	narratives := s.generator.GenerateAll(ctx, picks, p)

	r := Reading{
		ID:              uuid.New().String(),
		CreatedAt:       time.Now().UTC(),
		Cards:           make([]CardReading, len(picks)),
		NarrativeSource: combineSources(narratives),
	}
	for i, pk := range picks {
		r.Cards[i] = CardReading{
			Slot:      pk.Slot,
			Card:      pk.Card,
			Narrative: narratives[i].Text,
			Source:    narratives[i].Source,
		}
	}

	if err := s.save(r, p); err != nil {
		return Reading{}, err
	}

	slog.Info("reading created",
		"id", r.ID,
		"cards", cardIDs(picks),
		"narrative_source", r.NarrativeSource,
	)
	return r, nil
}

func (s *Service) save(r Reading, p *themes.Profile) error {
	cardsJSON, err := json.Marshal(r.Cards)
	if err != nil {
		return fmt.Errorf("marshaling cards: %w", err)
	}
	profileJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	rec := storage.ReadingRecord{
		ID:              r.ID,
		CreatedAt:       r.CreatedAt,
		ProfileJSON:     string(profileJSON),
		CardsJSON:       string(cardsJSON),
		NarrativeSource: r.NarrativeSource,
	}
	if err := s.store.SaveReading(rec); err != nil {
		return fmt.Errorf("saving reading: %w", err)
	}
	return nil
}

// Get returns a saved reading by id.
func (s *Service) Get(id string) (Reading, error) {
	rec, err := s.store.GetReading(id)
	if err != nil {
		return Reading{}, err
	}
	return fromRecord(rec)
}

// List returns recent readings, newest first.
func (s *Service) List(limit int) ([]Reading, error) {
	recs, err := s.store.ListReadings(limit)
	if err != nil {
		return nil, err
	}
	readings := make([]Reading, 0, len(recs))
	for _, rec := range recs {
		r, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, nil
}

// Delete removes a saved reading.
func (s *Service) Delete(id string) error {
	return s.store.DeleteReading(id)
}

func fromRecord(rec storage.ReadingRecord) (Reading, error) {
	var cards []CardReading
	if err := json.Unmarshal([]byte(rec.CardsJSON), &cards); err != nil {
		return Reading{}, fmt.Errorf("decoding reading %s: %w", rec.ID, err)
	}
	return Reading{
		ID:              rec.ID,
		CreatedAt:       rec.CreatedAt,
		Cards:           cards,
		NarrativeSource: rec.NarrativeSource,
	}, nil
}

func cardIDs(picks []selection.Pick) []string {
	ids := make([]string, len(picks))
	for i, pk := range picks {
		ids[i] = pk.Card.ID
	}
	return ids
}
