package workflow

import (
	"context"
	"encoding/json"
	"fmt"
)

// RunStage executes a single pipeline stage against a raw JSON payload and
// returns the stage's typed output. Used by the line protocol, where each
// stage runs independently and the caller carries state between calls.
func RunStage(ctx context.Context, rt *Runtime, stage Stage, payload json.RawMessage) (any, error) {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	switch stage {
	case StageIngestText:
		in, err := decode[IngestInput](payload)
		if err != nil {
			return nil, err
		}
		return RunIngest(in), nil

	case StageDate:
		in, err := decode[DateInput](payload)
		if err != nil {
			return nil, err
		}
		return RunDate(ctx, rt, in), nil

	case StageActionDescriber:
		in, err := decode[ActionsInput](payload)
		if err != nil {
			return nil, err
		}
		return RunActions(ctx, rt, in), nil

	case StageControlCandidates:
		in, err := decode[CandidatesInput](payload)
		if err != nil {
			return nil, err
		}
		return RunCandidates(ctx, rt, in), nil

	case StageFinalize:
		in, err := decode[FinalizeInput](payload)
		if err != nil {
			return nil, err
		}
		return RunFinalize(in), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrInvalidStage, stage)
}

func decode[T any](payload json.RawMessage) (T, error) {
	var in T
	if err := json.Unmarshal(payload, &in); err != nil {
		return in, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return in, nil
}
