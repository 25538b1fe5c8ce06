// Package engine implements the stage-engine command protocol: session
// start, single-stage execution, human-edit application, and the error
// envelope shared by every command.
package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmcameron/attest/internal/workflow"
)

// Engine executes protocol commands against a pipeline runtime.
type Engine struct {
	rt     *workflow.Runtime
	logger *slog.Logger
}

// New creates an engine over the given runtime.
func New(rt *workflow.Runtime, logger *slog.Logger) *Engine {
	return &Engine{
		rt:     rt,
		logger: logger.With("system", "engine"),
	}
}

// StartInput identifies the evidence and optionally resumes a session.
type StartInput struct {
	EvidenceID string `json:"evidence_id,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
}

// Session describes an active classification session.
type Session struct {
	SessionID    string         `json:"session_id"`
	EvidenceID   string         `json:"evidence_id,omitempty"`
	CurrentStage workflow.Stage `json:"current_stage"`
	Status       string         `json:"status"`
}

// StartOutput wraps the created session.
type StartOutput struct {
	Session Session `json:"session"`
}

// Start opens a session positioned at the first pipeline stage, generating
// a session id when the caller did not supply one.
func (e *Engine) Start(in StartInput) StartOutput {
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	e.logger.Info("session started", "session_id", sessionID, "evidence_id", in.EvidenceID)

	return StartOutput{
		Session: Session{
			SessionID:    sessionID,
			EvidenceID:   in.EvidenceID,
			CurrentStage: workflow.StageIngestText,
			Status:       "active",
		},
	}
}

// RunStageInput names the stage and carries its raw payload.
type RunStageInput struct {
	Stage   workflow.Stage  `json:"stage"`
	Payload json.RawMessage `json:"payload"`
}

// RunStageMeta carries execution metadata.
type RunStageMeta struct {
	ElapsedMS int64 `json:"elapsed_ms"`
}

// RunStageOutput pairs the stage's model output with execution metadata.
type RunStageOutput struct {
	Stage       workflow.Stage `json:"stage"`
	ModelOutput any            `json:"model_output"`
	Meta        RunStageMeta   `json:"meta"`
}

// RunStage executes one pipeline stage and reports elapsed time.
func (e *Engine) RunStage(ctx context.Context, in RunStageInput) (*RunStageOutput, error) {
	started := time.Now()

	output, err := workflow.RunStage(ctx, e.rt, in.Stage, in.Payload)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(started).Milliseconds()
	e.logger.Info("stage complete", "stage", in.Stage, "elapsed_ms", elapsed)

	return &RunStageOutput{
		Stage:       in.Stage,
		ModelOutput: output,
		Meta:        RunStageMeta{ElapsedMS: elapsed},
	}, nil
}

// HumanInput carries the reviewer's edits for a stage output.
type HumanInput struct {
	Edits map[string]any `json:"edits"`
}

// ApplyEditsInput pairs a stage's model output with reviewer edits.
type ApplyEditsInput struct {
	Stage       workflow.Stage `json:"stage"`
	ModelOutput map[string]any `json:"model_output"`
	HumanInput  HumanInput     `json:"human_input"`
}

// ApplyEditsOutput carries the decided output after overlaying edits.
type ApplyEditsOutput struct {
	Stage         workflow.Stage `json:"stage"`
	DecidedOutput map[string]any `json:"decided_output"`
}

// ApplyEdits overlays reviewer edits onto a stage's model output.
func (e *Engine) ApplyEdits(in ApplyEditsInput) ApplyEditsOutput {
	decided := workflow.ApplyEdits(in.ModelOutput, in.HumanInput.Edits)

	e.logger.Info("edits applied", "stage", in.Stage, "edited_keys", len(in.HumanInput.Edits))

	return ApplyEditsOutput{Stage: in.Stage, DecidedOutput: decided}
}

// Summarize echoes its input. Reserved for a future session summary.
func (e *Engine) Summarize(in json.RawMessage) json.RawMessage {
	if len(in) == 0 {
		return json.RawMessage("{}")
	}
	return in
}
