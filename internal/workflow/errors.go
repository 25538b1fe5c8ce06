package workflow

import "errors"

// Domain errors for pipeline operations.
var (
	ErrInvalidStage   = errors.New("unknown stage")
	ErrInvalidPayload = errors.New("invalid stage payload")
	ErrPipelineState  = errors.New("pipeline state missing or malformed")
)
