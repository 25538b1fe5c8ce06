// Package dates provides evidence date extraction, selection, and window
// validation. Extraction scans text with three fixed pattern families,
// selection scores candidates by contextual keyword proximity, and
// validation checks a date against an inclusive audit window.
package dates

// Candidate is a date-like substring located in evidence text. ISO holds
// the normalized YYYY-MM-DD value; Start and End are the byte span of the
// original match; Label names the pattern family that produced it.
type Candidate struct {
	ISO   string `json:"iso"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// Choice is the selected evidence date. Date is empty when no candidate
// was available.
type Choice struct {
	Date       string  `json:"evidence_date"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Status is the outcome of a date range check.
type Status string

// Range check statuses. Unknown is reserved for absent or unusable inputs;
// Pass and Fail require both the date and the window to parse.
const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusUnknown Status = "UNKNOWN"
)

// Window is the inclusive audit period evidence must fall within.
// Boundaries accept ISO dates or ISO datetimes (trailing UTC marker
// tolerated). Start ≤ End is assumed, not enforced.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Empty reports whether either boundary is missing.
func (w Window) Empty() bool {
	return w.Start == "" || w.End == ""
}

// CheckResult is the outcome of validating a date against a window.
// ParsedDate is nil when the subject date could not be parsed.
type CheckResult struct {
	Status     Status  `json:"status"`
	ParsedDate *string `json:"parsed_date"`
	Reason     string  `json:"reason"`
}

// Passed reports whether the check concluded the date is in range.
func (r CheckResult) Passed() bool {
	return r.Status == StatusPass
}
