package narrative

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/profarcana/arcana/internal/card"
	"github.com/profarcana/arcana/internal/selection"
)

// Phrase banks for the local template fallback, indexed by slot. When the
// remote model is unreachable the reading still has to render something.
var (
	pastOpeners = []string{
		"The cosmic threads of your professional past reveal",
		"Ancient wisdom whispers of your foundational journey where",
		"Your working essence was forged in the fires of",
		"The ethereal realm shows the seeds planted when",
	}
	pastBridges = []string{
		"This sacred card illuminates how",
		"The mystical energies suggest that",
		"Divine insight reveals that",
		"The oracle speaks of how",
	}

	presentOpeners = []string{
		"At this crucial crossroads, the veil between worlds grows thin, revealing",
		"The present moment pulses with the energy of",
		"Your current path resonates with",
		"The cosmic forces converge to manifest",
	}
	presentBridges = []string{
		"You stand at the threshold where",
		"The ethereal realm challenges you to embrace",
		"Ancient wisdom calls you to integrate",
		"The mystical path demands that you claim",
	}

	futureOpeners = []string{
		"The mists of possibility part to reveal",
		"Your emerging potential shimmers with",
		"The cosmic web weaves a destiny touched by",
		"Future consciousness crystallizes around",
	}
	futureBridges = []string{
		"This sacred energy will guide you toward",
		"The universe conspires to manifest",
		"Your professional evolution points to",
		"The mystical path leads to",
	}
)

// fallbackReading builds a deterministic-in-shape template reading from
// the card's own name, keywords and meaning. Always non-empty.
func fallbackReading(rng *rand.Rand, c card.Card, slot selection.Slot) string {
	meaning := strings.ToLower(c.Meaning.Upright)
	name := strings.ToLower(c.Name)

	switch slot {
	case selection.SlotPast:
		opener := pick(rng, pastOpeners)
		bridge := pick(rng, pastBridges)
		keywords := strings.Join(c.Keywords, ", ")
		return fmt.Sprintf("%s the power of %s. %s your path was shaped by %s, creating the foundation upon which your current work rests. The universe recognizes patterns of %s that have been weaving through your career, forming the blueprint of your seeking soul.",
			opener, name, bridge, keywords, meaning)

	case selection.SlotPresent:
		opener := pick(rng, presentOpeners)
		bridge := pick(rng, presentBridges)
		primary := name
		if len(c.Keywords) > 0 {
			primary = c.Keywords[0]
		}
		return fmt.Sprintf("%s %s. %s the power of %s in your daily work. The oracle sees how %s manifests in your present endeavors, suggesting a pivotal moment where conscious choice can transform your path. Trust in the synchronicity that brought this card to light.",
			opener, name, bridge, primary, meaning)

	case selection.SlotFuture:
		opener := pick(rng, futureOpeners)
		bridge := pick(rng, futureBridges)
		guiding := name
		if n := len(c.Keywords); n >= 2 {
			guiding = c.Keywords[n-2] + " and " + c.Keywords[n-1]
		}
		return fmt.Sprintf("%s the essence of %s. %s a beautiful synthesis where %s become your guiding lights. The oracle foresees how %s will illuminate your path forward, transforming your work into a vessel for profound wisdom and authentic connection.",
			opener, name, bridge, guiding, meaning)
	}

	keywords := strings.Join(c.Keywords, ", ")
	return fmt.Sprintf("The mystical energies of %s bring the sacred gifts of %s. The universe speaks through this symbol, revealing how %s weaves through your working life.",
		name, keywords, meaning)
}

func pick(rng *rand.Rand, bank []string) string {
	return bank[rng.Intn(len(bank))]
}
