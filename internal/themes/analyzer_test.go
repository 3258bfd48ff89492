package themes

import (
	"slices"
	"testing"
	"time"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testAnalyzer() *Analyzer {
	return NewAnalyzerWithClock(fixedClock{t: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)})
}

func TestAnalyzeNilProfile(t *testing.T) {
	a := testAnalyzer()

	for i := 0; i < 5; i++ {
		ts := a.Analyze(nil)
		if len(ts.Past) != 0 || len(ts.Present) != 0 || len(ts.Future) != 0 {
			t.Fatalf("nil profile produced themes: %+v", ts)
		}
	}
}

func TestAnalyzeEmptyProfile(t *testing.T) {
	a := testAnalyzer()

	ts := a.Analyze(&Profile{})
	if len(ts.Past) != 0 || len(ts.Present) != 0 || len(ts.Future) != 0 {
		t.Fatalf("empty profile produced themes: %+v", ts)
	}
}

func TestPastThemesJobCountBuckets(t *testing.T) {
	a := testAnalyzer()

	tests := []struct {
		name      string
		positions int
		want      string
	}{
		{"few jobs", 1, "loyal"},
		{"some jobs", 4, "seeking"},
		{"many jobs", 7, "wandering"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Profile{Positions: make([]Position, tt.positions)}
			ts := a.Analyze(p)
			if !slices.Contains(ts.Past, tt.want) {
				t.Errorf("past themes %v missing %q", ts.Past, tt.want)
			}
		})
	}
}

func TestPastThemesTenureBuckets(t *testing.T) {
	a := testAnalyzer()

	tests := []struct {
		name string
		pos  []Position
		want string
	}{
		{
			"short tenure",
			[]Position{{StartDate: "2025-01", EndDate: "2025-06"}},
			"restless",
		},
		{
			"mid tenure",
			[]Position{{StartDate: "2022-01", EndDate: "2024-01"}},
			"balanced",
		},
		{
			"long tenure",
			[]Position{{StartDate: "2019-01", EndDate: "2024-06"}},
			"rooted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := a.Analyze(&Profile{Positions: tt.pos})
			if !slices.Contains(ts.Past, tt.want) {
				t.Errorf("past themes %v missing %q", ts.Past, tt.want)
			}
		})
	}
}

func TestTenureCurrentPositionRunsToNow(t *testing.T) {
	a := testAnalyzer()

	// 2020-06 to the fixed clock's 2025-06 is five years.
	got := a.averageTenureYears([]Position{{StartDate: "2020-06", Current: true}})
	if got < 4.9 || got > 5.1 {
		t.Errorf("averageTenureYears = %v, want ~5", got)
	}
}

func TestTenureSkipsUnparseableDates(t *testing.T) {
	a := testAnalyzer()

	positions := []Position{
		{StartDate: "not-a-date", EndDate: "2024-01"},
		{StartDate: "2020-01", EndDate: "2024-01"}, // 48 months
	}

	got := a.averageTenureYears(positions)
	if got != 4 {
		t.Errorf("averageTenureYears = %v, want 4 (invalid entry excluded, not zeroed)", got)
	}
}

func TestTenureSkipsNegativeSpans(t *testing.T) {
	a := testAnalyzer()

	positions := []Position{
		{StartDate: "2024-06", EndDate: "2023-01"},
		{StartDate: "2022-01", EndDate: "2023-01"}, // 12 months
	}

	got := a.averageTenureYears(positions)
	if got != 1 {
		t.Errorf("averageTenureYears = %v, want 1", got)
	}
}

func TestPresentThemesAdditive(t *testing.T) {
	a := testAnalyzer()

	p := &Profile{
		Headline: "Engineering Manager and Director of Platform",
		Summary:  "Passionate about innovative systems",
	}
	ts := a.Analyze(p)

	// Every matching group accumulates; no first-match-wins precedence.
	for _, want := range []string{"leadership", "vision", "fire", "chaos"} {
		if !slices.Contains(ts.Present, want) {
			t.Errorf("present themes %v missing %q", ts.Present, want)
		}
	}
	if slices.Contains(ts.Present, "insight") {
		t.Errorf("present themes %v should not match analyst group", ts.Present)
	}
}

func TestPresentThemesRoleWordsHeadlineOnly(t *testing.T) {
	a := testAnalyzer()

	ts := a.Analyze(&Profile{Summary: "worked with many managers"})
	if slices.Contains(ts.Present, "leadership") {
		t.Errorf("role words must only match the headline, got %v", ts.Present)
	}
}

func TestPresentThemesSkillDepth(t *testing.T) {
	a := testAnalyzer()

	ts := a.Analyze(&Profile{Skills: []string{"a", "b", "c", "d", "e", "f"}})
	if !slices.Contains(ts.Present, "mastery") {
		t.Errorf("present themes %v missing mastery group for >5 skills", ts.Present)
	}
}

func TestFutureThemesSkillBuckets(t *testing.T) {
	a := testAnalyzer()

	tests := []struct {
		skills int
		want   string
	}{
		{0, "potential"},
		{3, "potential"},
		{5, "growth"},
		{9, "expansion"},
	}

	for _, tt := range tests {
		p := &Profile{Headline: "x", Skills: make([]string, tt.skills)}
		for i := range p.Skills {
			p.Skills[i] = "skill"
		}
		ts := a.Analyze(p)
		if !slices.Contains(ts.Future, tt.want) {
			t.Errorf("%d skills: future themes %v missing %q", tt.skills, ts.Future, tt.want)
		}
	}
}

func TestFutureThemesIndustryHints(t *testing.T) {
	a := testAnalyzer()

	ts := a.Analyze(&Profile{Headline: "Software sales lead"})
	for _, want := range []string{"digital", "persuasion"} {
		if !slices.Contains(ts.Future, want) {
			t.Errorf("future themes %v missing %q", ts.Future, want)
		}
	}
}

// Scenario from the product flow: a single long-tenured management role
// with a handful of skills.
func TestAnalyzeSeniorManagerScenario(t *testing.T) {
	a := testAnalyzer()

	p := &Profile{
		Headline: "Senior Manager",
		Skills:   []string{"ops", "hiring", "budgets"},
		Positions: []Position{
			{StartDate: "2020-12", EndDate: "2025-06"}, // 4.5 years
		},
	}
	ts := a.Analyze(p)

	for _, want := range []string{"loyal", "rooted"} {
		if !slices.Contains(ts.Past, want) {
			t.Errorf("past themes %v missing %q", ts.Past, want)
		}
	}
	if !slices.Contains(ts.Present, "leadership") {
		t.Errorf("present themes %v missing leadership", ts.Present)
	}
	if !slices.Contains(ts.Future, "potential") {
		t.Errorf("future themes %v missing potential", ts.Future)
	}
}
