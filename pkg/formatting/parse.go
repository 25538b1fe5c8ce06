// Package formatting provides parsing and text-shaping utilities: lenient
// JSON extraction from model responses and whitespace-aware summarization.
package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when content cannot be parsed as JSON,
// either directly, from a markdown code fence, or from an embedded object.
var ErrParseFailed = errors.New("failed to parse response")

var jsonBlockRegex = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// Parse attempts to unmarshal content as JSON into T. If direct parsing
// fails, it extracts JSON from a markdown code fence and retries; as a
// last resort it parses the slice between the first '{' and the last '}'.
// Returns ErrParseFailed when every attempt fails.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	matches := jsonBlockRegex.FindStringSubmatch(content)
	if len(matches) >= 2 {
		cleaned := strings.TrimSpace(matches[1])
		if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
			return result, nil
		}
	}

	if start, end := strings.Index(content, "{"), strings.LastIndex(content, "}"); start != -1 && end > start {
		if err := json.Unmarshal([]byte(content[start:end+1]), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, content)
}
