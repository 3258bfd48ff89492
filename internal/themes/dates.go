package themes

import (
	"strconv"
	"strings"
	"time"
)

// yearMonth is a parsed position date. Day-of-month precision never
// matters for tenure math.
type yearMonth struct {
	Year  int
	Month time.Month
}

func (ym yearMonth) monthIndex() int {
	return ym.Year*12 + int(ym.Month)
}

// parseYearMonth parses the date forms connectors are known to emit:
// "2021-03", "2021", "Mar 2021" and "March 2021". The month defaults to
// January when only a year is given. Returns false for anything else.
func parseYearMonth(s string) (yearMonth, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return yearMonth{}, false
	}

	// Canonical connector form: YYYY-MM (tolerating a day suffix).
	if i := strings.IndexByte(s, '-'); i > 0 {
		year, err := strconv.Atoi(s[:i])
		if err != nil {
			return yearMonth{}, false
		}
		rest := s[i+1:]
		if j := strings.IndexByte(rest, '-'); j > 0 {
			rest = rest[:j]
		}
		month, err := strconv.Atoi(rest)
		if err != nil || month < 1 || month > 12 {
			return yearMonth{}, false
		}
		return yearMonth{Year: year, Month: time.Month(month)}, plausibleYear(year)
	}

	// Bare year.
	if year, err := strconv.Atoi(s); err == nil {
		return yearMonth{Year: year, Month: time.January}, plausibleYear(year)
	}

	// Human forms: "Mar 2021" / "March 2021".
	fields := strings.Fields(s)
	if len(fields) == 2 {
		year, err := strconv.Atoi(fields[1])
		if err != nil || !plausibleYear(year) {
			return yearMonth{}, false
		}
		for _, layout := range []string{"Jan", "January"} {
			if t, err := time.Parse(layout, fields[0]); err == nil {
				return yearMonth{Year: year, Month: t.Month()}, true
			}
		}
	}

	return yearMonth{}, false
}

func plausibleYear(y int) bool {
	return y >= 1900 && y <= 2200
}
