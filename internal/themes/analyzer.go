package themes

import (
	"strings"
	"time"
)

// ThemeSet holds the derived theme tags for the three reading slots.
// Tags are relevance signals for card selection, never displayed.
type ThemeSet struct {
	Past    []string
	Present []string
	Future  []string
}

// Clock abstracts time for testability. Tenure math needs "now" for
// positions that are still current.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Analyzer derives a ThemeSet from a profile using coarse heuristics.
// It is pure apart from reading the clock, and never fails: missing or
// empty input yields an empty ThemeSet.
type Analyzer struct {
	clock Clock
}

// NewAnalyzer creates an Analyzer on the wall clock.
func NewAnalyzer() *Analyzer {
	return &Analyzer{clock: realClock{}}
}

// NewAnalyzerWithClock creates an Analyzer with a custom clock (for testing).
func NewAnalyzerWithClock(clock Clock) *Analyzer {
	return &Analyzer{clock: clock}
}

// Tenure buckets, in years.
const (
	shortTenureYears = 1
	midTenureYears   = 3
)

// Analyze maps a profile to theme tags per slot. The checks are plain
// case-folded substring tests; overlapping matches accumulate their tag
// groups additively.
func (a *Analyzer) Analyze(p *Profile) ThemeSet {
	var ts ThemeSet
	if p.IsEmpty() {
		return ts
	}

	ts.Past = a.pastThemes(p)
	ts.Present = presentThemes(p)
	ts.Future = futureThemes(p)
	return ts
}

// pastThemes reads career-change cadence: how many jobs, and how long
// the seeker tends to stay in one.
func (a *Analyzer) pastThemes(p *Profile) []string {
	var tags []string

	switch n := len(p.Positions); {
	case n <= 2:
		tags = append(tags, "loyal", "steady", "devoted", "stable")
	case n <= 5:
		tags = append(tags, "seeking", "exploring", "growing", "evolving")
	default:
		tags = append(tags, "wandering", "adventurous", "diverse", "experienced")
	}

	switch tenure := a.averageTenureYears(p.Positions); {
	case tenure < shortTenureYears:
		tags = append(tags, "restless", "dynamic", "quick", "adaptable")
	case tenure <= midTenureYears:
		tags = append(tags, "balanced", "measured", "thoughtful", "progressive")
	default:
		tags = append(tags, "rooted", "deep", "committed", "enduring")
	}

	return tags
}

// averageTenureYears averages elapsed time across positions with a
// parseable start date. Positions still current (or without an end date)
// run to now. Unparseable or negative spans are excluded from the
// average rather than counted as zero.
func (a *Analyzer) averageTenureYears(positions []Position) float64 {
	var totalMonths, valid int
	now := a.clock.Now()

	for _, pos := range positions {
		start, ok := parseYearMonth(pos.StartDate)
		if !ok {
			continue
		}

		end := yearMonth{Year: now.Year(), Month: now.Month()}
		if !pos.Current && pos.EndDate != "" {
			end, ok = parseYearMonth(pos.EndDate)
			if !ok {
				continue
			}
		}

		months := end.monthIndex() - start.monthIndex()
		if months < 0 {
			continue
		}
		totalMonths += months
		valid++
	}

	if valid == 0 {
		return 0
	}
	return float64(totalMonths) / float64(valid) / 12
}

func presentThemes(p *Profile) []string {
	var tags []string

	headline := strings.ToLower(p.Headline)
	combined := strings.ToLower(p.Headline + " " + p.Summary)

	// Role words are matched against the headline only.
	if strings.Contains(headline, "manager") {
		tags = append(tags, "leadership", "guidance", "responsibility", "authority")
	}
	if strings.Contains(headline, "director") {
		tags = append(tags, "vision", "strategy", "oracle", "foresight")
	}
	if strings.Contains(headline, "analyst") {
		tags = append(tags, "insight", "data", "patterns", "wisdom")
	}

	// Buzzwords look at headline and summary together.
	if strings.Contains(combined, "passionate") {
		tags = append(tags, "fire", "energy", "enthusiasm", "drive")
	}
	if strings.Contains(combined, "results-driven") {
		tags = append(tags, "manifestation", "achievement", "power", "success")
	}
	if strings.Contains(combined, "innovative") {
		tags = append(tags, "chaos", "creativity", "transformation", "change")
	}

	if len(p.Skills) > 5 {
		tags = append(tags, "mastery", "abundance", "capability", "strength")
	}

	return tags
}

func futureThemes(p *Profile) []string {
	var tags []string

	switch n := len(p.Skills); {
	case n > 8:
		tags = append(tags, "expansion", "influence", "networks", "connection")
	case n > 4:
		tags = append(tags, "growth", "building", "developing", "ascending")
	default:
		tags = append(tags, "potential", "emerging", "foundation", "beginning")
	}

	combined := strings.ToLower(p.Headline + " " + p.Summary)
	if strings.Contains(combined, "tech") || strings.Contains(combined, "software") {
		tags = append(tags, "digital", "innovation", "virtual", "quantum")
	}
	if strings.Contains(combined, "sales") || strings.Contains(combined, "business") {
		tags = append(tags, "persuasion", "commerce", "abundance", "prosperity")
	}

	return tags
}
