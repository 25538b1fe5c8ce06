package formatting

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces every run of whitespace with a single space
// and trims the result.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// SummarizeWords collapses whitespace and keeps at most limit words.
// When the text is cut, the summary ends at the last sentence boundary
// if one sits far enough in, otherwise at the raw word cut.
func SummarizeWords(text string, limit int) string {
	collapsed := CollapseWhitespace(text)
	if collapsed == "" {
		return ""
	}

	words := strings.Fields(collapsed)
	if len(words) <= limit {
		return collapsed
	}

	truncated := strings.Join(words[:limit], " ")
	if cut := strings.LastIndex(truncated, "."); cut >= sentenceFloor(len(truncated)) {
		return truncated[:cut+1]
	}
	return truncated
}

// sentenceFloor is the minimum index a sentence boundary must reach for
// the summary to end there instead of at the raw word cut.
func sentenceFloor(length int) int {
	floor := (length * 6) / 10
	if floor < 40 {
		floor = 40
	}
	return floor
}
