package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Pattern family labels reported on extracted candidates.
const (
	LabelYMD   = "ymd"
	LabelMDY   = "mdy"
	LabelMonth = "month"
)

const monthNames = `Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t|tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?`

var (
	ymdPattern   = regexp.MustCompile(`\b(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\b`)
	mdyPattern   = regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})\b`)
	monthPattern = regexp.MustCompile(`(?i)\b(` + monthNames + `)\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
)

var months = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// Extract scans text for date-like substrings across the three pattern
// families (year-first numeric, month-first numeric, written month name)
// and returns candidates deduplicated by ISO value, preserving the order
// in which distinct dates were first encountered. Matches that do not form
// a real calendar date are dropped silently. Empty text yields nil.
func Extract(text string) []Candidate {
	if text == "" {
		return nil
	}

	var found []Candidate

	for _, m := range ymdPattern.FindAllStringSubmatchIndex(text, -1) {
		y, mo, d := atoi(text[m[2]:m[3]]), atoi(text[m[4]:m[5]]), atoi(text[m[6]:m[7]])
		if iso, ok := calendarISO(y, mo, d); ok {
			found = append(found, Candidate{ISO: iso, Start: m[0], End: m[1], Label: LabelYMD})
		}
	}

	for _, m := range mdyPattern.FindAllStringSubmatchIndex(text, -1) {
		mo, d, y := atoi(text[m[2]:m[3]]), atoi(text[m[4]:m[5]]), atoi(text[m[6]:m[7]])
		if iso, ok := calendarISO(y, mo, d); ok {
			found = append(found, Candidate{ISO: iso, Start: m[0], End: m[1], Label: LabelMDY})
		}
	}

	for _, m := range monthPattern.FindAllStringSubmatchIndex(text, -1) {
		mo, ok := monthNumber(text[m[2]:m[3]])
		if !ok {
			continue
		}
		d, y := atoi(text[m[4]:m[5]]), atoi(text[m[6]:m[7]])
		if iso, ok := calendarISO(y, mo, d); ok {
			found = append(found, Candidate{ISO: iso, Start: m[0], End: m[1], Label: LabelMonth})
		}
	}

	return dedupe(found)
}

// dedupe keeps the first occurrence of each ISO value, preserving order.
func dedupe(cands []Candidate) []Candidate {
	if len(cands) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(cands))
	uniq := cands[:0]
	for _, c := range cands {
		if _, ok := seen[c.ISO]; ok {
			continue
		}
		seen[c.ISO] = struct{}{}
		uniq = append(uniq, c)
	}
	return uniq
}

// calendarISO builds a normalized ISO date, rejecting combinations that do
// not exist on the calendar (month 13, Feb 30, and the like).
func calendarISO(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", false
	}

	return t.Format(time.DateOnly), true
}

func monthNumber(name string) (int, bool) {
	n, ok := months[strings.ToLower(name)]
	return n, ok
}

// atoi parses digit runs already constrained by the patterns above.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
