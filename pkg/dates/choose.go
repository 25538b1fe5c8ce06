package dates

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// contextKeywords are the labels that, when found near a candidate's span,
// raise the likelihood that the candidate is the document's evidence date.
var contextKeywords = []string{
	"report date",
	"effective",
	"as of",
	"evidence date",
	"signed",
	"generated",
	"issued",
	"date:",
}

const (
	contextBefore = 80
	contextAfter  = 40
	maxExtraHits  = 3
)

// Choose selects the most probable evidence date from the candidates found
// in text. Each candidate is scored from a base of 0.5 plus a contextual
// keyword bonus (0.2 + 0.1 per hit, capped at three hits) over a window of
// 80 characters before and 40 after its span, plus a mild recency nudge of
// (year-2000)*0.001. The first candidate reaching the maximum score wins;
// later candidates never displace an equal score. An empty candidate set
// yields an empty date with zero confidence.
func Choose(text string, cands []Candidate) Choice {
	if len(cands) == 0 {
		return Choice{Confidence: 0, Rationale: "no dates detected"}
	}

	var best Choice
	bestScore := -1.0

	for _, c := range cands {
		start := max(0, c.Start-contextBefore)
		end := min(len(text), c.End+contextAfter)
		window := strings.ToLower(text[start:end])

		score := 0.5
		var hits []string
		for _, kw := range contextKeywords {
			if strings.Contains(window, kw) {
				hits = append(hits, kw)
			}
		}
		if len(hits) > 0 {
			score += 0.2 + 0.1*float64(min(maxExtraHits, len(hits)))
		}

		if year, err := strconv.Atoi(c.ISO[:4]); err == nil {
			score += float64(year-2000) * 0.001
		}

		if score > bestScore {
			bestScore = score
			best = Choice{
				Date:       c.ISO,
				Confidence: min(0.99, round2(score)),
				Rationale:  fmt.Sprintf("context hits: %s", hitList(hits)),
			}
		}
	}

	return best
}

func hitList(hits []string) string {
	if len(hits) == 0 {
		return "none"
	}
	return strings.Join(hits, ", ")
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
