package narrative

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/profarcana/arcana/internal/selection"
	"github.com/profarcana/arcana/internal/themes"
)

const defaultNarrativeTimeout = 15 * time.Second

// Completer is the model surface the Generator needs. Implemented by Client.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Narrative is the generated text for one selected card.
type Narrative struct {
	Slot   selection.Slot `json:"slot"`
	Text   string         `json:"text"`
	Source string         `json:"source"` // "model" or "template"
}

// Generator produces one narrative per selected card. Model calls run
// concurrently with a bounded per-call timeout; any failure degrades to
// the local template so a reading always renders.
type Generator struct {
	client  Completer // nil disables model calls entirely
	timeout time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator. A nil client means template-only
// operation. timeout <= 0 uses the default.
func NewGenerator(client Completer, timeout time.Duration, seed int64) *Generator {
	if timeout <= 0 {
		timeout = defaultNarrativeTimeout
	}
	return &Generator{
		client:  client,
		timeout: timeout,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// GenerateAll produces a narrative for each pick, index-aligned with the
// input. The three requests are independent; none blocks or fails the
// others, and a cancelled context just means template text.
func (g *Generator) GenerateAll(ctx context.Context, picks []selection.Pick, p *themes.Profile) []Narrative {
	results := make([]Narrative, len(picks))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(3) // one in-flight call per slot

	for i, pk := range picks {
		eg.Go(func() error {
			results[i] = g.generateOne(egCtx, pk, p)
			return nil
		})
	}
	eg.Wait()

	return results
}

func (g *Generator) generateOne(ctx context.Context, pk selection.Pick, p *themes.Profile) Narrative {
	if g.client != nil {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		text, err := g.client.Complete(callCtx, systemPrompt, buildPrompt(pk.Card, pk.Slot, p))
		if err == nil {
			return Narrative{Slot: pk.Slot, Text: text, Source: "model"}
		}
		slog.Warn("narrative generation failed, using template",
			"card", pk.Card.ID, "slot", pk.Slot, "error", err)
	}

	return Narrative{Slot: pk.Slot, Text: g.template(pk), Source: "template"}
}

func (g *Generator) template(pk selection.Pick) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fallbackReading(g.rng, pk.Card, pk.Slot)
}
