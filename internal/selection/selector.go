package selection

import (
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/profarcana/arcana/internal/card"
	"github.com/profarcana/arcana/internal/themes"
)

// Slot is one of the three fixed reading positions.
type Slot string

const (
	SlotPast    Slot = "past"
	SlotPresent Slot = "present"
	SlotFuture  Slot = "future"
)

// Slots lists the reading positions in draw order.
var Slots = [3]Slot{SlotPast, SlotPresent, SlotFuture}

// Pick is one selected card tagged with its slot.
type Pick struct {
	Slot Slot      `json:"slot"`
	Card card.Card `json:"card"`
}

// Weighting constants. The jitter keeps every card drawable regardless
// of relevance; the shortlist keeps readings varied between users with
// similar profiles instead of always surfacing the single top card.
const (
	shortlistSize      = 10
	keywordMatchWeight = 0.4
	meaningMatchWeight = 0.3
	jitterMax          = 0.3
)

// Selector draws three distinct cards from a pool, biased toward the
// themes of each slot. The random source is injected so tests can run
// the draw deterministically. One Selector is shared across requests,
// so the source is guarded; Select is safe for concurrent use.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Selector with its own seeded random source.
func New(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// NewFromRand creates a Selector on an existing random source.
func NewFromRand(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Select draws one card per slot from pool, in slot order. Picks are
// pairwise distinct whenever the pool has at least three cards; smaller
// pools degrade to allowing repeats rather than failing. The pool is
// never mutated. An empty pool returns no picks; callers guard against
// that via the catalog loader.
func (s *Selector) Select(ts themes.ThemeSet, pool []card.Card) []Pick {
	if len(pool) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slotThemes := [3][]string{ts.Past, ts.Present, ts.Future}

	picks := make([]Pick, 0, len(Slots))
	used := make(map[string]struct{}, len(Slots))
	for i, slot := range Slots {
		c := s.drawOne(slotThemes[i], pool, used)
		used[c.ID] = struct{}{}
		picks = append(picks, Pick{Slot: slot, Card: c})
	}
	return picks
}

// drawOne picks a single card for one slot: weight the unused cards by
// theme relevance, shortlist the strongest, then draw uniformly from
// the shortlist.
func (s *Selector) drawOne(slotThemes []string, pool []card.Card, used map[string]struct{}) card.Card {
	available := make([]weighted, 0, len(pool))
	for _, c := range pool {
		if _, taken := used[c.ID]; taken {
			continue
		}
		available = append(available, weighted{card: c, weight: s.relevance(c, slotThemes)})
	}

	// Pool exhausted (only possible with fewer cards than slots): repeat
	// a card rather than fail the reading.
	if len(available) == 0 {
		return pool[s.rng.Intn(len(pool))]
	}

	sort.Slice(available, func(i, j int) bool {
		return available[i].weight > available[j].weight
	})

	n := min(shortlistSize, len(available))
	return available[s.rng.Intn(n)].card
}

type weighted struct {
	card   card.Card
	weight float64
}

// relevance scores a card against a slot's themes. Matches accumulate:
// a card overlapping many themes outscores one overlapping none, while
// the jitter term keeps zero-relevance cards in play.
func (s *Selector) relevance(c card.Card, slotThemes []string) float64 {
	score := s.rng.Float64() * jitterMax

	upright := strings.ToLower(c.Meaning.Upright)
	reversed := strings.ToLower(c.Meaning.Reversed)

	for _, theme := range slotThemes {
		theme := strings.ToLower(theme)

		for _, keyword := range c.Keywords {
			if strings.Contains(theme, keyword) || strings.Contains(keyword, theme) {
				score += keywordMatchWeight
			}
		}

		if strings.Contains(upright, theme) || strings.Contains(reversed, theme) {
			score += meaningMatchWeight
		}
	}

	return score
}
