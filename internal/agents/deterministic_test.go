package agents_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmcameron/attest/internal/agents"
	"github.com/dmcameron/attest/internal/catalog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeterministicExtractDate(t *testing.T) {
	sys := agents.NewDeterministic(discardLogger())
	ctx := context.Background()

	t.Run("labeled date is chosen", func(t *testing.T) {
		result := sys.ExtractDate(ctx, "Report Date: 2024-03-05. Review occurred on 2023-01-01.")

		if result.EvidenceDate == nil || *result.EvidenceDate != "2024-03-05" {
			t.Fatalf("EvidenceDate = %v, want 2024-03-05", result.EvidenceDate)
		}
		if len(result.Candidates) != 2 {
			t.Errorf("Candidates = %v, want both dates", result.Candidates)
		}
		if result.Confidence <= 0.5 {
			t.Errorf("Confidence = %v, want context bonus above base", result.Confidence)
		}
	})

	t.Run("no dates", func(t *testing.T) {
		result := sys.ExtractDate(ctx, "no temporal content here")

		if result.EvidenceDate != nil {
			t.Errorf("EvidenceDate = %v, want nil", *result.EvidenceDate)
		}
		if result.Confidence != 0 {
			t.Errorf("Confidence = %v, want 0", result.Confidence)
		}
	})
}

func TestDeterministicSummarizeActions(t *testing.T) {
	sys := agents.NewDeterministic(discardLogger())

	summary := sys.SummarizeActions(context.Background(), strings.Repeat("performed the review ", 100))
	if n := len(strings.Fields(summary)); n > 120 {
		t.Errorf("summary has %d words, want <= 120", n)
	}
}

func TestDeterministicAssignControl(t *testing.T) {
	sys := agents.NewDeterministic(discardLogger())
	ctx := context.Background()

	t.Run("assigns top catalog match", func(t *testing.T) {
		specs := []catalog.ControlSpec{
			{ID: "u1", ControlID: "AC-2", Specification: "account management review"},
			{ID: "u2", ControlID: "SC-13", Specification: "cryptographic validation"},
		}
		assignment := sys.AssignControl(ctx, "account management review completed", specs)

		if assignment.ControlCode == nil || *assignment.ControlCode != "AC-2" {
			t.Fatalf("ControlCode = %v, want AC-2", assignment.ControlCode)
		}
		if assignment.RecordID == nil || *assignment.RecordID != "u1" {
			t.Errorf("RecordID = %v, want u1", assignment.RecordID)
		}
		if !strings.HasPrefix(assignment.Rationale, "picked highest confidence:") {
			t.Errorf("Rationale = %q", assignment.Rationale)
		}
	})

	t.Run("fallback rules still assign", func(t *testing.T) {
		assignment := sys.AssignControl(ctx, "mfa rollout completed", nil)

		if assignment.ControlCode == nil || *assignment.ControlCode != "CTRL-AUTH-001" {
			t.Errorf("ControlCode = %v, want CTRL-AUTH-001", assignment.ControlCode)
		}
		if assignment.RecordID != nil {
			t.Errorf("RecordID = %v, want nil for rule-based assignment", *assignment.RecordID)
		}
	})
}
