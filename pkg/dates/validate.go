package dates

import "time"

// Reason strings reported by Validate.
const (
	ReasonInRange      = "in range"
	ReasonOutOfRange   = "out of range"
	ReasonUnrecognized = "unrecognized date format"
	ReasonInvalidRange = "invalid range"
)

// Validate checks a date string against an inclusive window. The subject
// date accepts any format ParseAny understands; boundaries additionally
// accept ISO datetimes. An unparseable subject fails with
// ReasonUnrecognized and a nil parsed date; an unparseable boundary fails
// with ReasonInvalidRange but retains the parsed subject. A successful
// comparison reports PASS/FAIL with ReasonInRange/ReasonOutOfRange.
func Validate(dateStr string, window Window) CheckResult {
	parsed, ok := ParseAny(dateStr)
	if !ok {
		return CheckResult{
			Status: StatusFail,
			Reason: ReasonUnrecognized,
		}
	}

	iso := parsed.Format(time.DateOnly)

	start, ok := parseBoundary(window.Start)
	if !ok {
		return CheckResult{Status: StatusFail, ParsedDate: &iso, Reason: ReasonInvalidRange}
	}

	end, ok := parseBoundary(window.End)
	if !ok {
		return CheckResult{Status: StatusFail, ParsedDate: &iso, Reason: ReasonInvalidRange}
	}

	// inclusive on both ends
	if !parsed.Before(start) && !parsed.After(end) {
		return CheckResult{Status: StatusPass, ParsedDate: &iso, Reason: ReasonInRange}
	}

	return CheckResult{Status: StatusFail, ParsedDate: &iso, Reason: ReasonOutOfRange}
}
