package workflow

import (
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/dmcameron/attest/internal/controls"
	"github.com/dmcameron/attest/pkg/dates"
)

// KeyPipeline is the state bag key holding the evolving PipelineState.
const KeyPipeline = "pipeline"

// PipelineState is the evolving payload record the graph nodes read and
// extend. Each node fills in its own fields and leaves the rest untouched.
type PipelineState struct {
	Session        string
	Text           string
	Source         string
	Truncated      bool
	Length         int
	Window         dates.Window
	Date           *DateOutput
	ActionsSummary string
	Candidates     []controls.Candidate
	Result         *FinalizeOutput
}

func extractPipeline(s state.State) (*PipelineState, error) {
	val, ok := s.Get(KeyPipeline)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrPipelineState, KeyPipeline)
	}

	ps, ok := val.(PipelineState)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not PipelineState", ErrPipelineState, KeyPipeline)
	}

	return &ps, nil
}
