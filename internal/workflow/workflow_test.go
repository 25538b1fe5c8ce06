package workflow_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmcameron/attest/internal/agents"
	"github.com/dmcameron/attest/internal/catalog"
	"github.com/dmcameron/attest/internal/workflow"
	"github.com/dmcameron/attest/pkg/dates"
	"github.com/dmcameron/attest/pkg/debug"
)

type staticSource struct {
	specs []catalog.ControlSpec
}

func (s *staticSource) Name() string { return "static" }

func (s *staticSource) Load(ctx context.Context) ([]catalog.ControlSpec, error) {
	return s.specs, nil
}

func testRuntime(specs []catalog.ControlSpec) *workflow.Runtime {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &workflow.Runtime{
		Agents:  agents.NewDeterministic(logger),
		Catalog: catalog.NewCache([]catalog.Source{&staticSource{specs: specs}}, logger),
		Debug:   debug.Nop(),
		Logger:  logger,
	}
}

func TestParseStage(t *testing.T) {
	for _, stage := range workflow.Stages() {
		if _, err := workflow.ParseStage(string(stage)); err != nil {
			t.Errorf("ParseStage(%s) error = %v", stage, err)
		}
	}

	if _, err := workflow.ParseStage("select_control"); err == nil {
		t.Error("ParseStage(select_control) = nil error, want ErrInvalidStage")
	}
}

func TestRunStage(t *testing.T) {
	rt := testRuntime(nil)
	ctx := context.Background()

	t.Run("ingest truncates long text", func(t *testing.T) {
		long := strings.Repeat("a", 200_001)
		payload, _ := json.Marshal(map[string]string{"text": long})

		out, err := workflow.RunStage(ctx, rt, workflow.StageIngestText, payload)
		if err != nil {
			t.Fatalf("RunStage() error = %v", err)
		}

		ingest := out.(workflow.IngestOutput)
		if !ingest.Truncated || ingest.Length != 200_000 {
			t.Errorf("ingest = {truncated: %v, length: %d}, want truncated at 200000", ingest.Truncated, ingest.Length)
		}
		if ingest.Source != "unknown" {
			t.Errorf("source = %q, want unknown default", ingest.Source)
		}
	})

	t.Run("date stage combines extraction and validation", func(t *testing.T) {
		payload := []byte(`{"text": "Report Date: 2024-03-05", "window": {"start": "2024-01-01", "end": "2024-12-31"}}`)

		out, err := workflow.RunStage(ctx, rt, workflow.StageDate, payload)
		if err != nil {
			t.Fatalf("RunStage() error = %v", err)
		}

		date := out.(workflow.DateOutput)
		if date.Status != dates.StatusPass {
			t.Errorf("status = %s, want PASS", date.Status)
		}
		if date.EvidenceDate == nil || *date.EvidenceDate != "2024-03-05" {
			t.Errorf("evidence date = %v, want 2024-03-05", date.EvidenceDate)
		}
	})

	t.Run("date stage reports unknown without window", func(t *testing.T) {
		payload := []byte(`{"text": "Report Date: 2024-03-05"}`)

		out, err := workflow.RunStage(ctx, rt, workflow.StageDate, payload)
		if err != nil {
			t.Fatalf("RunStage() error = %v", err)
		}

		date := out.(workflow.DateOutput)
		if date.Status != dates.StatusUnknown {
			t.Errorf("status = %s, want UNKNOWN without window", date.Status)
		}
	})

	t.Run("empty payload defaults to empty object", func(t *testing.T) {
		out, err := workflow.RunStage(ctx, rt, workflow.StageIngestText, nil)
		if err != nil {
			t.Fatalf("RunStage() error = %v", err)
		}
		if ingest := out.(workflow.IngestOutput); ingest.Length != 0 {
			t.Errorf("length = %d, want 0", ingest.Length)
		}
	})

	t.Run("unknown stage", func(t *testing.T) {
		if _, err := workflow.RunStage(ctx, rt, workflow.Stage("bogus"), []byte("{}")); err == nil {
			t.Error("RunStage(bogus) = nil error, want ErrInvalidStage")
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		if _, err := workflow.RunStage(ctx, rt, workflow.StageIngestText, []byte("[1,2]")); err == nil {
			t.Error("RunStage() = nil error for malformed payload")
		}
	})
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	specs := []catalog.ControlSpec{
		{ID: "u1", ControlID: "AC-2", Specification: "account management review access"},
		{ID: "u2", ControlID: "SC-13", Specification: "cryptographic module validation"},
	}

	t.Run("passing date assigns control", func(t *testing.T) {
		rt := testRuntime(specs)
		text := "Report Date: 2024-03-05. Quarterly account access review completed for all users."
		window := dates.Window{Start: "2024-01-01", End: "2024-12-31"}

		result, err := workflow.Classify(ctx, rt, "s1", text, window)
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}

		if result.DateCheck.Status != dates.StatusPass {
			t.Fatalf("date check = %s, want PASS", result.DateCheck.Status)
		}
		if result.AssignedControlID == nil || *result.AssignedControlID != "AC-2" {
			t.Errorf("assigned control = %v, want AC-2", result.AssignedControlID)
		}
		if result.ActionsSummary == "" {
			t.Error("actions summary empty on PASS")
		}
	})

	t.Run("failing date short circuits", func(t *testing.T) {
		rt := testRuntime(specs)
		text := "Report Date: 2022-03-05. Quarterly account access review completed."
		window := dates.Window{Start: "2024-01-01", End: "2024-12-31"}

		result, err := workflow.Classify(ctx, rt, "s2", text, window)
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}

		if result.DateCheck.Status != dates.StatusFail {
			t.Fatalf("date check = %s, want FAIL", result.DateCheck.Status)
		}
		if result.AssignedControlID != nil {
			t.Errorf("assigned control = %v, want nil on FAIL", *result.AssignedControlID)
		}
		if result.Rationale != "date check failed" {
			t.Errorf("rationale = %q, want date check failed", result.Rationale)
		}
		if result.ActionsSummary != "" {
			t.Errorf("actions summary = %q, want empty on short circuit", result.ActionsSummary)
		}
	})

	t.Run("no date short circuits as unknown", func(t *testing.T) {
		rt := testRuntime(specs)
		result, err := workflow.Classify(ctx, rt, "s3", "no temporal content", dates.Window{Start: "2024-01-01", End: "2024-12-31"})
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}

		if result.DateCheck.Status != dates.StatusUnknown {
			t.Errorf("date check = %s, want UNKNOWN", result.DateCheck.Status)
		}
		if result.AssignedControlID != nil {
			t.Errorf("assigned control = %v, want nil", *result.AssignedControlID)
		}
	})

	t.Run("boundary dates pass inclusively", func(t *testing.T) {
		rt := testRuntime(specs)
		window := dates.Window{Start: "2024-03-05", End: "2024-03-05"}
		result, err := workflow.Classify(ctx, rt, "s4", "Report Date: 2024-03-05. Account review.", window)
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		if result.DateCheck.Status != dates.StatusPass {
			t.Errorf("date check = %s, want PASS on boundary", result.DateCheck.Status)
		}
	})
}

func TestApplyEdits(t *testing.T) {
	t.Run("edited keys replace, unedited pass through", func(t *testing.T) {
		model := map[string]any{"evidence_date": "2024-03-05", "confidence": 0.9}
		edits := map[string]any{"evidence_date": "2024-03-06"}

		decided := workflow.ApplyEdits(model, edits)

		if decided["evidence_date"] != "2024-03-06" {
			t.Errorf("evidence_date = %v, want edited value", decided["evidence_date"])
		}
		if decided["confidence"] != 0.9 {
			t.Errorf("confidence = %v, want passthrough", decided["confidence"])
		}
		if model["evidence_date"] != "2024-03-05" {
			t.Error("ApplyEdits mutated the model output")
		}
	})

	t.Run("nil edits copy model output", func(t *testing.T) {
		model := map[string]any{"status": "PASS"}
		decided := workflow.ApplyEdits(model, nil)

		if decided["status"] != "PASS" {
			t.Errorf("status = %v, want PASS", decided["status"])
		}
		decided["status"] = "FAIL"
		if model["status"] != "PASS" {
			t.Error("decided output shares storage with model output")
		}
	})

	t.Run("idempotent overlay", func(t *testing.T) {
		model := map[string]any{"a": 1, "b": 2}
		edits := map[string]any{"b": 3}

		once := workflow.ApplyEdits(model, edits)
		twice := workflow.ApplyEdits(once, edits)

		if once["b"] != 3 || twice["b"] != 3 || twice["a"] != 1 {
			t.Errorf("overlay not idempotent: %v then %v", once, twice)
		}
	})
}

func TestRunFinalize(t *testing.T) {
	date := "2024-03-05"
	out := workflow.RunFinalize(workflow.FinalizeInput{
		EvidenceDate:   &date,
		ActionsSummary: "review completed",
	})

	if out.Classification.EvidenceDate == nil || *out.Classification.EvidenceDate != date {
		t.Errorf("evidence date = %v, want %s", out.Classification.EvidenceDate, date)
	}
	if out.Classification.Control != nil {
		t.Errorf("control = %v, want nil without selection", out.Classification.Control)
	}
	if out.Summary == "" {
		t.Error("summary label empty")
	}
}
