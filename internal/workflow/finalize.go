package workflow

import (
	"context"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/dmcameron/attest/internal/controls"
)

// summaryLabel is the fixed label attached to every finalized record.
const summaryLabel = "classification summary"

// FinalizeInput is the payload for the finalize_classification stage.
// Selection carries the top-ranked or human-selected control candidate.
type FinalizeInput struct {
	EvidenceDate   *string             `json:"evidence_date"`
	Selection      *controls.Candidate `json:"selection"`
	ActionsSummary string              `json:"actions_summary"`
}

// Classification is the assembled classification record.
type Classification struct {
	EvidenceDate   *string             `json:"evidence_date"`
	Control        *controls.Candidate `json:"control"`
	ActionsSummary string              `json:"actions_summary"`
}

// FinalizeOutput pairs the classification record with its fixed label.
type FinalizeOutput struct {
	Classification Classification `json:"classification"`
	Summary        string         `json:"summary"`
}

// RunFinalize assembles the classification record from the accumulated
// stage outputs.
func RunFinalize(in FinalizeInput) FinalizeOutput {
	return FinalizeOutput{
		Classification: Classification{
			EvidenceDate:   in.EvidenceDate,
			Control:        in.Selection,
			ActionsSummary: in.ActionsSummary,
		},
		Summary: summaryLabel,
	}
}

// FinalizeNode returns a state node that assembles the final record from
// the pipeline state, selecting the top-ranked candidate when present.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ps, err := extractPipeline(s)
		if err != nil {
			return s, err
		}

		in := FinalizeInput{ActionsSummary: ps.ActionsSummary}
		if ps.Date != nil {
			in.EvidenceDate = ps.Date.EvidenceDate
		}
		if len(ps.Candidates) > 0 {
			in.Selection = &ps.Candidates[0]
		}

		out := RunFinalize(in)
		ps.Result = &out

		rt.Logger.InfoContext(ctx, "classification finalized",
			"has_control", in.Selection != nil,
		)

		return s.Set(KeyPipeline, *ps), nil
	})
}
