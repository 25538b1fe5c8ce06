// Package controls scores evidence text against the control specification
// catalog and produces ranked control candidates.
package controls

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/dmcameron/attest/internal/catalog"
)

const (
	// maxCandidates bounds the ranked result.
	maxCandidates = 7
	// maxSpecTokens caps how much of each specification is scored.
	maxSpecTokens = 120
	// maxRationaleHits bounds the matched tokens listed in the rationale.
	maxRationaleHits = 6
)

// Candidate is a scored control match.
type Candidate struct {
	ControlCode string  `json:"id"`
	RecordID    string  `json:"uuid,omitempty"`
	Label       string  `json:"label"`
	Confidence  float64 `json:"confidence"`
	Rationale   string  `json:"rationale"`
}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {},
	"from": {}, "are": {}, "was": {}, "were": {}, "have": {}, "has": {},
	"had": {}, "shall": {}, "should": {}, "will": {}, "may": {}, "can": {},
	"must": {}, "of": {}, "to": {}, "in": {}, "on": {}, "by": {}, "or": {},
	"an": {}, "a": {}, "as": {}, "be": {}, "is": {}, "it": {}, "at": {},
	"we": {}, "you": {}, "they": {}, "their": {}, "our": {},
}

// Match scores evidence text against every catalog specification by token
// overlap and returns up to seven candidates ranked by confidence. When the
// catalog is empty or nothing overlaps, fixed keyword rules take over.
func Match(text string, specs []catalog.ControlSpec) []Candidate {
	lowered := strings.ToLower(text)

	if len(specs) > 0 {
		if cands := matchSpecs(lowered, specs); len(cands) > 0 {
			return cands
		}
	}

	return matchRules(lowered)
}

func matchSpecs(lowered string, specs []catalog.ControlSpec) []Candidate {
	counts := tokenCounts(lowered)

	type scored struct {
		candidate Candidate
		score     float64
	}

	results := make([]scored, 0, len(specs))
	for _, spec := range specs {
		specTokens := tokenize(strings.ToLower(spec.Specification))
		if len(specTokens) > maxSpecTokens {
			specTokens = specTokens[:maxSpecTokens]
		}

		var score float64
		var hits []string
		for _, token := range specTokens {
			count, ok := counts[token]
			if !ok {
				continue
			}
			score += 1.0 + 0.1*float64(min(5, count-1))
			if len(hits) < maxRationaleHits {
				hits = append(hits, token)
			}
		}

		if score > 0 {
			results = append(results, scored{
				candidate: Candidate{
					ControlCode: spec.ControlID,
					RecordID:    spec.ID,
					Label:       spec.ControlID,
					Rationale:   "Spec overlap: " + strings.Join(hits, ", "),
				},
				score: score,
			})
		}
	}

	if len(results) == 0 {
		return nil
	}

	maxScore := results[0].score
	for _, r := range results[1:] {
		if r.score > maxScore {
			maxScore = r.score
		}
	}

	candidates := make([]Candidate, len(results))
	for i, r := range results {
		c := r.candidate
		c.Confidence = round2(0.5 + 0.49*(r.score/maxScore))
		candidates[i] = c
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// tokenize extracts lower-cased alphanumeric runs longer than two
// characters, excluding stopwords.
func tokenize(lowered string) []string {
	raw := tokenPattern.FindAllString(lowered, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) <= 2 {
			continue
		}
		if _, stop := stopwords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func tokenCounts(lowered string) map[string]int {
	counts := make(map[string]int)
	for _, t := range tokenize(lowered) {
		counts[t]++
	}
	return counts
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
