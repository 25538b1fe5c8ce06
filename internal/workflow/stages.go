package workflow

import (
	"encoding/json"
	"fmt"
)

// Stage identifies one step of the classification pipeline.
type Stage string

const (
	StageIngestText        Stage = "ingest_text"
	StageDate              Stage = "date"
	StageActionDescriber   Stage = "action_describer"
	StageControlCandidates Stage = "control_candidates"
	StageFinalize          Stage = "finalize_classification"
)

// Stages returns every pipeline stage in execution order.
func Stages() []Stage {
	return []Stage{
		StageIngestText,
		StageDate,
		StageActionDescriber,
		StageControlCandidates,
		StageFinalize,
	}
}

// ParseStage validates a stage name. Returns ErrInvalidStage for anything
// outside the pipeline.
func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	switch stage {
	case StageIngestText, StageDate, StageActionDescriber, StageControlCandidates, StageFinalize:
		return stage, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidStage, s)
}

func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	stage, err := ParseStage(raw)
	if err != nil {
		return err
	}
	*s = stage
	return nil
}
