package dates

import (
	"strings"
	"time"
)

// ParseAny attempts best-effort parsing of a single date string across the
// same pattern families used by Extract, in family order. It searches the
// string rather than requiring an exact match, so labeled values such as
// "Report Date: 2024-03-05" parse as well as bare dates.
func ParseAny(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := ymdPattern.FindStringSubmatch(s); m != nil {
		if iso, ok := calendarISO(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return mustDate(iso), true
		}
	}

	if m := mdyPattern.FindStringSubmatch(s); m != nil {
		if iso, ok := calendarISO(atoi(m[3]), atoi(m[1]), atoi(m[2])); ok {
			return mustDate(iso), true
		}
	}

	if m := monthPattern.FindStringSubmatch(s); m != nil {
		if mo, ok := monthNumber(m[1]); ok {
			if iso, ok := calendarISO(atoi(m[3]), mo, atoi(m[2])); ok {
				return mustDate(iso), true
			}
		}
	}

	return time.Time{}, false
}

// boundaryLayouts covers ISO dates and datetimes accepted on window
// boundaries after the trailing UTC marker is stripped.
var boundaryLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// parseBoundary parses a window boundary: an ISO date or datetime with an
// optional trailing "Z", falling back to the multi-format parser.
func parseBoundary(s string) (time.Time, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")

	for _, layout := range boundaryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return ParseAny(s)
}

func mustDate(iso string) time.Time {
	t, _ := time.Parse(time.DateOnly, iso)
	return t.UTC()
}
