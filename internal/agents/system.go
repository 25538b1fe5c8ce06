// Package agents provides the capability layer the pipeline stages call for
// date extraction, action summarization, and control assignment. Two
// strategies implement it: a deterministic one built on the scoring
// packages, and a model-backed one that delegates to a chat agent.
package agents

import (
	"context"

	"github.com/dmcameron/attest/internal/catalog"
)

// DateResult is the outcome of evidence date extraction. EvidenceDate is
// nil when no date was found.
type DateResult struct {
	EvidenceDate *string  `json:"evidence_date"`
	Candidates   []string `json:"candidates"`
	Confidence   float64  `json:"confidence"`
	Rationale    string   `json:"rationale"`
}

// Assignment is the outcome of control assignment. ControlCode and RecordID
// are nil when no catalog control fits the evidence.
type Assignment struct {
	ControlCode *string `json:"control_id"`
	RecordID    *string `json:"id"`
	Rationale   string  `json:"rationale"`
}

// System is the capability set pipeline stages depend on. Implementations
// absorb their own failures: a method that cannot produce a result returns
// a zero-valued outcome with an explanatory rationale rather than an error,
// so a degraded capability never aborts a pipeline run.
type System interface {
	// ExtractDate finds the single evidence date in text.
	ExtractDate(ctx context.Context, text string) DateResult
	// SummarizeActions describes the actions the text prescribes or records
	// in 120 words or fewer.
	SummarizeActions(ctx context.Context, text string) string
	// AssignControl picks the single best-matching control from the catalog.
	AssignControl(ctx context.Context, text string, specs []catalog.ControlSpec) Assignment
}
