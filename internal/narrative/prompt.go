package narrative

import (
	"fmt"
	"strings"

	"github.com/profarcana/arcana/internal/card"
	"github.com/profarcana/arcana/internal/selection"
	"github.com/profarcana/arcana/internal/themes"
)

// systemPrompt sets the reader persona for every narrative request.
const systemPrompt = `You are a gifted tarot reader with the ability to see deep connections between ancient symbolism and modern working life. Your readings are mystical yet surprisingly insightful, weaving together the traditional meanings of tarot cards with subtle observations about the seeker's career and professional path.

Your style is:
- Mystical and evocative, using cosmic and ethereal language
- Subtly connected to the seeker's actual career history and themes
- Insightful without being overly specific or invasive
- Flowing and poetic, around 3-4 sentences
- Focused on transformation, growth, and wisdom

Always maintain the mystical atmosphere while making the reading feel personally relevant and meaningful.`

var slotFraming = map[selection.Slot]string{
	selection.SlotPast:    "the foundation of the seeker's career journey",
	selection.SlotPresent: "the seeker's current state and the crossroads they stand at",
	selection.SlotFuture:  "the trajectory and potential opening before the seeker",
}

// buildPrompt assembles the user prompt for one card. Only coarse profile
// facts are included; raw free text stays out of the request.
func buildPrompt(c card.Card, slot selection.Slot, p *themes.Profile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Write a short reading for the card %q in the %s position, representing %s.\n\n",
		c.Name, slot, slotFraming[slot])
	fmt.Fprintf(&sb, "Card keywords: %s.\n", strings.Join(c.Keywords, ", "))
	fmt.Fprintf(&sb, "Upright meaning: %s\n", c.Meaning.Upright)

	if p != nil {
		if h := strings.TrimSpace(p.Headline); h != "" {
			fmt.Fprintf(&sb, "\nThe seeker describes themselves as: %s.\n", h)
		}
		if n := len(p.Positions); n > 0 {
			fmt.Fprintf(&sb, "They have held %d position(s).\n", n)
		}
		if n := len(p.Skills); n > 0 {
			fmt.Fprintf(&sb, "They list %d skill(s).\n", n)
		}
	}

	sb.WriteString("\nRespond with the reading text only.")
	return sb.String()
}
