package workflow

import (
	"context"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// ActionsInput is the payload for the action_describer stage.
type ActionsInput struct {
	Text string `json:"text"`
}

// ActionsOutput carries the neutral action summary.
type ActionsOutput struct {
	ActionsSummary string `json:"actions_summary"`
}

// RunActions produces the bounded action summary for the evidence text.
func RunActions(ctx context.Context, rt *Runtime, in ActionsInput) ActionsOutput {
	return ActionsOutput{ActionsSummary: rt.Agents.SummarizeActions(ctx, in.Text)}
}

// ActionsNode returns a state node that summarizes the pipeline text.
func ActionsNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ps, err := extractPipeline(s)
		if err != nil {
			return s, err
		}

		out := RunActions(ctx, rt, ActionsInput{Text: ps.Text})
		ps.ActionsSummary = out.ActionsSummary

		rt.Logger.InfoContext(ctx, "action summary complete",
			"summary_len", len(out.ActionsSummary),
		)

		return s.Set(KeyPipeline, *ps), nil
	})
}
