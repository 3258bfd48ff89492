package narrative

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/profarcana/arcana/internal/card"
	"github.com/profarcana/arcana/internal/selection"
	"github.com/profarcana/arcana/internal/themes"
)

type stubCompleter struct {
	text  string
	err   error
	calls atomic.Int32
	delay time.Duration
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func testPicks() []selection.Pick {
	cards := []card.Card{
		{ID: "major-00", Name: "The Fool", Keywords: []string{"beginnings", "potential"},
			Meaning: card.Meaning{Upright: "new beginnings", Reversed: "hesitation"}},
		{ID: "major-04", Name: "The Emperor", Keywords: []string{"authority", "structure"},
			Meaning: card.Meaning{Upright: "authority", Reversed: "rigidity"}},
		{ID: "major-21", Name: "The World", Keywords: []string{"completion", "wholeness"},
			Meaning: card.Meaning{Upright: "completion", Reversed: "loose ends"}},
	}
	return []selection.Pick{
		{Slot: selection.SlotPast, Card: cards[0]},
		{Slot: selection.SlotPresent, Card: cards[1]},
		{Slot: selection.SlotFuture, Card: cards[2]},
	}
}

func TestGenerateAllFromModel(t *testing.T) {
	stub := &stubCompleter{text: "a mystical reading"}
	g := NewGenerator(stub, time.Second, 1)

	out := g.GenerateAll(context.Background(), testPicks(), &themes.Profile{Headline: "Engineer"})

	if len(out) != 3 {
		t.Fatalf("got %d narratives, want 3", len(out))
	}
	wantSlots := []selection.Slot{selection.SlotPast, selection.SlotPresent, selection.SlotFuture}
	for i, n := range out {
		if n.Slot != wantSlots[i] {
			t.Errorf("narrative %d slot = %s, want %s", i, n.Slot, wantSlots[i])
		}
		if n.Source != "model" || n.Text != "a mystical reading" {
			t.Errorf("narrative %d = %+v", i, n)
		}
	}
	if stub.calls.Load() != 3 {
		t.Errorf("model called %d times, want 3", stub.calls.Load())
	}
}

func TestGenerateAllFallsBackPerCard(t *testing.T) {
	stub := &stubCompleter{err: errors.New("model down")}
	g := NewGenerator(stub, time.Second, 1)

	out := g.GenerateAll(context.Background(), testPicks(), nil)

	for i, n := range out {
		if n.Source != "template" {
			t.Errorf("narrative %d source = %q, want template", i, n.Source)
		}
		if strings.TrimSpace(n.Text) == "" {
			t.Errorf("narrative %d is empty", i)
		}
	}
}

func TestGenerateAllNilClientUsesTemplates(t *testing.T) {
	g := NewGenerator(nil, 0, 7)

	out := g.GenerateAll(context.Background(), testPicks(), nil)
	for i, n := range out {
		if n.Source != "template" || n.Text == "" {
			t.Errorf("narrative %d = %+v", i, n)
		}
	}
}

func TestGenerateAllTimeoutFallsBack(t *testing.T) {
	stub := &stubCompleter{text: "too slow", delay: 200 * time.Millisecond}
	g := NewGenerator(stub, 10*time.Millisecond, 1)

	out := g.GenerateAll(context.Background(), testPicks(), nil)
	for i, n := range out {
		if n.Source != "template" {
			t.Errorf("narrative %d source = %q, want template after timeout", i, n.Source)
		}
	}
}

func TestFallbackReadingMentionsCard(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := card.Card{
		Name:     "The Chariot",
		Keywords: []string{"determination", "willpower", "victory"},
		Meaning:  card.Meaning{Upright: "Victory through determination", Reversed: "drift"},
	}

	for _, slot := range selection.Slots {
		text := fallbackReading(rng, c, slot)
		if text == "" {
			t.Fatalf("empty fallback for slot %s", slot)
		}
		if !strings.Contains(text, "the chariot") {
			t.Errorf("slot %s fallback does not mention the card: %q", slot, text)
		}
	}
}

func TestBuildPromptIncludesCardAndProfileFacts(t *testing.T) {
	c := card.Card{
		Name:     "The Star",
		Keywords: []string{"hope", "renewal"},
		Meaning:  card.Meaning{Upright: "Hope and renewal"},
	}
	p := &themes.Profile{
		Headline:  "Staff Engineer",
		Positions: []themes.Position{{Title: "a"}, {Title: "b"}},
		Skills:    []string{"go"},
	}

	prompt := buildPrompt(c, selection.SlotFuture, p)

	for _, want := range []string{"The Star", "future", "hope, renewal", "Staff Engineer", "2 position", "1 skill"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	// Raw summary text must not leak into the request.
	if strings.Contains(prompt, "summary") {
		t.Errorf("prompt should not carry summary text:\n%s", prompt)
	}
}
