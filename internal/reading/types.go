package reading

import (
	"time"

	"github.com/profarcana/arcana/internal/card"
	"github.com/profarcana/arcana/internal/narrative"
	"github.com/profarcana/arcana/internal/selection"
)

// CardReading is one slot of a finished reading: the drawn card plus its
// narrative text.
type CardReading struct {
	Slot      selection.Slot `json:"slot"`
	Card      card.Card      `json:"card"`
	Narrative string         `json:"narrative"`
	Source    string         `json:"source"`
}

// Reading is the full output of one invocation: three slot/card pairs in
// past, present, future order.
type Reading struct {
	ID              string        `json:"id"`
	CreatedAt       time.Time     `json:"created_at"`
	Cards           []CardReading `json:"cards"`
	NarrativeSource string        `json:"narrative_source"`
}

// combineSources reduces per-card narrative sources to one label for the
// stored record.
func combineSources(narratives []narrative.Narrative) string {
	if len(narratives) == 0 {
		return "template"
	}
	first := narratives[0].Source
	for _, n := range narratives[1:] {
		if n.Source != first {
			return "mixed"
		}
	}
	return first
}
