package workflow

import (
	"context"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/dmcameron/attest/internal/controls"
)

// CandidatesInput is the payload for the control_candidates stage.
type CandidatesInput struct {
	Text           string `json:"text"`
	ActionsSummary string `json:"actions_summary"`
}

// CandidatesOutput carries the ranked control candidates.
type CandidatesOutput struct {
	Candidates []controls.Candidate `json:"candidates"`
}

// RunCandidates matches the combined action summary and full text against
// the current control catalog.
func RunCandidates(ctx context.Context, rt *Runtime, in CandidatesInput) CandidatesOutput {
	combined := strings.TrimSpace(in.ActionsSummary + "\n" + in.Text)
	specs := rt.Catalog.Specs(ctx)
	return CandidatesOutput{Candidates: controls.Match(combined, specs)}
}

// CandidatesNode returns a state node that ranks control candidates for
// the pipeline text.
func CandidatesNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ps, err := extractPipeline(s)
		if err != nil {
			return s, err
		}

		out := RunCandidates(ctx, rt, CandidatesInput{Text: ps.Text, ActionsSummary: ps.ActionsSummary})
		ps.Candidates = out.Candidates

		rt.Logger.InfoContext(ctx, "control candidates ranked",
			"count", len(out.Candidates),
		)
		rt.Debug.Record(ps.Session, string(StageControlCandidates), "output", out)

		return s.Set(KeyPipeline, *ps), nil
	})
}
