package workflow

import (
	"context"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/dmcameron/attest/pkg/dates"
)

// DateInput is the payload for the date stage.
type DateInput struct {
	Text   string       `json:"text"`
	Window dates.Window `json:"window"`
}

// DateOutput combines extraction and range validation into one record.
type DateOutput struct {
	EvidenceDate *string      `json:"evidence_date"`
	Candidates   []string     `json:"candidates"`
	Confidence   float64      `json:"confidence"`
	Rationale    string       `json:"rationale"`
	Status       dates.Status `json:"status"`
	ParsedDate   *string      `json:"parsed_date"`
	Reason       string       `json:"reason"`
}

// Check extracts the range validation portion of the output.
func (o DateOutput) Check() dates.CheckResult {
	return dates.CheckResult{Status: o.Status, ParsedDate: o.ParsedDate, Reason: o.Reason}
}

// RunDate extracts the evidence date and validates it against the window.
// A missing date or an incomplete window reports UNKNOWN; PASS and FAIL
// are reserved for comparisons where both sides parsed.
func RunDate(ctx context.Context, rt *Runtime, in DateInput) DateOutput {
	extracted := rt.Agents.ExtractDate(ctx, in.Text)

	out := DateOutput{
		EvidenceDate: extracted.EvidenceDate,
		Candidates:   extracted.Candidates,
		Confidence:   extracted.Confidence,
		Rationale:    extracted.Rationale,
	}

	if extracted.EvidenceDate == nil {
		out.Status = dates.StatusUnknown
		out.Reason = "no evidence date detected"
		return out
	}

	if in.Window.Empty() {
		out.Status = dates.StatusUnknown
		out.ParsedDate = extracted.EvidenceDate
		out.Reason = "no window provided"
		return out
	}

	check := dates.Validate(*extracted.EvidenceDate, in.Window)
	out.Status = check.Status
	out.ParsedDate = check.ParsedDate
	out.Reason = check.Reason
	return out
}

// DateNode returns a state node that runs the date stage over the
// pipeline text and window.
func DateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ps, err := extractPipeline(s)
		if err != nil {
			return s, err
		}

		out := RunDate(ctx, rt, DateInput{Text: ps.Text, Window: ps.Window})
		ps.Date = &out

		rt.Logger.InfoContext(ctx, "date check complete",
			"status", out.Status,
			"candidates", len(out.Candidates),
		)
		rt.Debug.Record(ps.Session, string(StageDate), "output", out)

		return s.Set(KeyPipeline, *ps), nil
	})
}
