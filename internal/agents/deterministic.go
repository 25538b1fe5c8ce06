package agents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmcameron/attest/internal/catalog"
	"github.com/dmcameron/attest/internal/controls"
	"github.com/dmcameron/attest/pkg/dates"
	"github.com/dmcameron/attest/pkg/formatting"
)

const summaryWordLimit = 120

// Deterministic implements System with the pattern-based scoring packages.
// It requires no external services and produces identical output for
// identical input.
type Deterministic struct {
	logger *slog.Logger
}

// NewDeterministic creates the deterministic capability system.
func NewDeterministic(logger *slog.Logger) *Deterministic {
	return &Deterministic{logger: logger.With("system", "agents", "strategy", "deterministic")}
}

func (d *Deterministic) ExtractDate(ctx context.Context, text string) DateResult {
	candidates := dates.Extract(text)
	choice := dates.Choose(text, candidates)

	isos := make([]string, len(candidates))
	for i, c := range candidates {
		isos[i] = c.ISO
	}

	result := DateResult{
		Candidates: isos,
		Confidence: choice.Confidence,
		Rationale:  choice.Rationale,
	}
	if choice.Date != "" {
		result.EvidenceDate = &choice.Date
	}

	d.logger.Debug("date extracted", "candidates", len(isos), "confidence", choice.Confidence)
	return result
}

func (d *Deterministic) SummarizeActions(ctx context.Context, text string) string {
	return formatting.SummarizeWords(text, summaryWordLimit)
}

func (d *Deterministic) AssignControl(ctx context.Context, text string, specs []catalog.ControlSpec) Assignment {
	candidates := controls.Match(text, specs)
	if len(candidates) == 0 {
		return Assignment{Rationale: "no candidates"}
	}

	top := candidates[0]
	assignment := Assignment{
		ControlCode: &top.ControlCode,
		Rationale:   fmt.Sprintf("picked highest confidence: %.2f", top.Confidence),
	}
	if top.RecordID != "" {
		assignment.RecordID = &top.RecordID
	}
	return assignment
}
