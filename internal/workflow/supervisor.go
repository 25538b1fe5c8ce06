package workflow

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/dmcameron/attest/pkg/dates"
)

// ClassificationResult is the supervisor's final record. AssignedControlID
// is nil whenever the date check did not pass.
type ClassificationResult struct {
	DateCheck         dates.CheckResult `json:"date_check"`
	ActionsSummary    string            `json:"actions_summary,omitempty"`
	AssignedControlID *string           `json:"assigned_control_id"`
	Rationale         string            `json:"rationale"`
}

// Classify runs the full pipeline for one piece of evidence. The date
// check gates everything downstream: on a non-PASS status the graph jumps
// straight to finalize and the result reports a failed date check with no
// assigned control.
func Classify(ctx context.Context, rt *Runtime, session, text string, window dates.Window) (*ClassificationResult, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeyPipeline, PipelineState{
		Session: session,
		Text:    text,
		Window:  window,
	})

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	ps, err := extractPipeline(final)
	if err != nil {
		return nil, err
	}

	return assembleResult(ps), nil
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("attest-classify")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode(string(StageIngestText), IngestNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode(string(StageDate), DateNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode(string(StageActionDescriber), ActionsNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode(string(StageControlCandidates), CandidatesNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode(string(StageFinalize), FinalizeNode(rt)); err != nil {
		return nil, err
	}

	// ingest → date (unconditional)
	if err := graph.AddEdge(string(StageIngestText), string(StageDate), nil); err != nil {
		return nil, err
	}

	// date → action_describer (only when the date check passed)
	if err := graph.AddEdge(string(StageDate), string(StageActionDescriber), datePassed); err != nil {
		return nil, err
	}

	// date → finalize (short circuit on any non-PASS status)
	if err := graph.AddEdge(string(StageDate), string(StageFinalize), state.Not(datePassed)); err != nil {
		return nil, err
	}

	// action_describer → control_candidates (unconditional)
	if err := graph.AddEdge(string(StageActionDescriber), string(StageControlCandidates), nil); err != nil {
		return nil, err
	}

	// control_candidates → finalize (unconditional)
	if err := graph.AddEdge(string(StageControlCandidates), string(StageFinalize), nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint(string(StageIngestText)); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint(string(StageFinalize)); err != nil {
		return nil, err
	}

	return graph, nil
}

func datePassed(s state.State) bool {
	ps, err := extractPipeline(s)
	if err != nil || ps.Date == nil {
		return false
	}
	return ps.Date.Status == dates.StatusPass
}

func assembleResult(ps *PipelineState) *ClassificationResult {
	result := &ClassificationResult{}

	if ps.Date != nil {
		result.DateCheck = ps.Date.Check()
	} else {
		result.DateCheck = dates.CheckResult{
			Status: dates.StatusUnknown,
			Reason: "date stage did not run",
		}
	}

	if !result.DateCheck.Passed() {
		result.Rationale = "date check failed"
		return result
	}

	result.ActionsSummary = ps.ActionsSummary

	if len(ps.Candidates) > 0 {
		top := ps.Candidates[0]
		result.AssignedControlID = &top.ControlCode
		result.Rationale = top.Rationale
	} else {
		result.Rationale = "no candidates"
	}

	return result
}
