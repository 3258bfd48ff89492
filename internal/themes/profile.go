package themes

import (
	"strings"

	"golang.org/x/net/html"
)

// Profile is a loosely structured professional profile as delivered by a
// data connector. Every field is optional; analysis must work on any
// partial shape without failing.
type Profile struct {
	Headline  string      `json:"headline,omitempty"`
	Summary   string      `json:"summary,omitempty"`
	Positions []Position  `json:"positions,omitempty"`
	Skills    []string    `json:"skills,omitempty"`
	Education []Education `json:"education,omitempty"`
}

// Position is a single job entry. Dates are strings in the connector's
// own format, canonically "YYYY-MM" but frequently something else.
type Position struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is a single school entry.
type Education struct {
	School         string `json:"school,omitempty"`
	Degree         string `json:"degree,omitempty"`
	GraduationYear int    `json:"graduationYear,omitempty"`
}

// IsEmpty reports whether the profile carries no usable data at all.
func (p *Profile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return strings.TrimSpace(p.Headline) == "" &&
		strings.TrimSpace(p.Summary) == "" &&
		len(p.Positions) == 0 &&
		len(p.Skills) == 0 &&
		len(p.Education) == 0
}

// Normalize strips markup from the free-text fields in place. Connector
// widgets routinely deliver summaries with embedded HTML.
func (p *Profile) Normalize() {
	if p == nil {
		return
	}
	p.Headline = StripMarkup(p.Headline)
	p.Summary = StripMarkup(p.Summary)
	for i := range p.Positions {
		p.Positions[i].Description = StripMarkup(p.Positions[i].Description)
	}
}

// StripMarkup returns the text content of s with any HTML tags removed.
// Plain text passes through unchanged apart from whitespace collapsing
// around removed tags.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	var sb strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			sb.WriteString(tok.Token().Data)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
