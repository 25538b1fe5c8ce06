package controls_test

import (
	"strings"
	"testing"

	"github.com/dmcameron/attest/internal/catalog"
	"github.com/dmcameron/attest/internal/controls"
)

func TestMatchSpecs(t *testing.T) {
	t.Run("overlapping spec outranks disjoint spec", func(t *testing.T) {
		specs := []catalog.ControlSpec{
			{ID: "u1", ControlID: "AC-2", Specification: "account management review access provisioning"},
			{ID: "u2", ControlID: "SC-13", Specification: "cryptographic module validation"},
		}
		cands := controls.Match("quarterly account access review completed for provisioning requests", specs)

		if len(cands) == 0 {
			t.Fatal("Match() returned no candidates")
		}
		if cands[0].ControlCode != "AC-2" {
			t.Errorf("top candidate = %s, want AC-2", cands[0].ControlCode)
		}
		if cands[0].RecordID != "u1" {
			t.Errorf("top candidate record id = %s, want u1", cands[0].RecordID)
		}
	})

	t.Run("top score rescales to 0.99", func(t *testing.T) {
		specs := []catalog.ControlSpec{
			{ID: "u1", ControlID: "AC-2", Specification: "account review"},
		}
		cands := controls.Match("account review evidence", specs)

		if len(cands) != 1 {
			t.Fatalf("Match() returned %d candidates, want 1", len(cands))
		}
		if cands[0].Confidence != 0.99 {
			t.Errorf("confidence = %v, want 0.99 for the maximum score", cands[0].Confidence)
		}
	})

	t.Run("rationale lists matched tokens", func(t *testing.T) {
		specs := []catalog.ControlSpec{
			{ID: "u1", ControlID: "AU-6", Specification: "audit record review analysis reporting"},
		}
		cands := controls.Match("audit record analysis performed", specs)

		if len(cands) != 1 {
			t.Fatalf("Match() returned %d candidates, want 1", len(cands))
		}
		if !strings.HasPrefix(cands[0].Rationale, "Spec overlap: ") {
			t.Errorf("rationale = %q, want spec overlap prefix", cands[0].Rationale)
		}
		if !strings.Contains(cands[0].Rationale, "audit") {
			t.Errorf("rationale = %q, want matched token audit", cands[0].Rationale)
		}
	})

	t.Run("repeated evidence tokens increase score up to cap", func(t *testing.T) {
		specs := []catalog.ControlSpec{
			{ID: "u1", ControlID: "AC-2", Specification: "account"},
			{ID: "u2", ControlID: "AU-6", Specification: "audit"},
		}
		text := strings.Repeat("account ", 10) + "audit"
		cands := controls.Match(text, specs)

		if len(cands) != 2 {
			t.Fatalf("Match() returned %d candidates, want 2", len(cands))
		}
		if cands[0].ControlCode != "AC-2" {
			t.Errorf("top candidate = %s, want repeated-token AC-2", cands[0].ControlCode)
		}
		if cands[1].Confidence >= cands[0].Confidence {
			t.Errorf("confidences not descending: %v then %v", cands[0].Confidence, cands[1].Confidence)
		}
	})

	t.Run("stopwords and short tokens do not score", func(t *testing.T) {
		specs := []catalog.ControlSpec{
			{ID: "u1", ControlID: "AC-2", Specification: "the and for with it at we"},
		}
		cands := controls.Match("the and for with it at we", specs)

		for _, c := range cands {
			if c.ControlCode == "AC-2" {
				t.Errorf("stopword-only spec produced candidate %+v", c)
			}
		}
	})

	t.Run("result capped at seven", func(t *testing.T) {
		specs := make([]catalog.ControlSpec, 10)
		for i := range specs {
			specs[i] = catalog.ControlSpec{
				ID:            "u" + string(rune('0'+i)),
				ControlID:     "CTRL-" + string(rune('A'+i)),
				Specification: "shared evidence keyword",
			}
		}
		cands := controls.Match("shared evidence keyword observed", specs)

		if len(cands) != 7 {
			t.Errorf("Match() returned %d candidates, want capped 7", len(cands))
		}
	})
}

func TestMatchFallbackRules(t *testing.T) {
	t.Run("password and mfa rules both fire", func(t *testing.T) {
		cands := controls.Match("Password policy enforced with MFA login", nil)

		var pass, auth bool
		for _, c := range cands {
			switch c.ControlCode {
			case "CTRL-PASS-001":
				pass = true
				if c.Confidence != 0.5 {
					t.Errorf("CTRL-PASS-001 confidence = %v, want 0.5", c.Confidence)
				}
			case "CTRL-AUTH-001":
				auth = true
				if c.Confidence != 0.5 {
					t.Errorf("CTRL-AUTH-001 confidence = %v, want 0.5", c.Confidence)
				}
			}
		}
		if !pass || !auth {
			t.Errorf("candidates = %+v, want both CTRL-PASS-001 and CTRL-AUTH-001", cands)
		}
	})

	t.Run("hit count raises rule confidence", func(t *testing.T) {
		cands := controls.Match("encryption with aes-256 and tls at rest and in transit via kms", nil)

		if len(cands) != 1 {
			t.Fatalf("Match() returned %d candidates, want 1", len(cands))
		}
		if cands[0].ControlCode != "CTRL-ENC-001" {
			t.Errorf("candidate = %s, want CTRL-ENC-001", cands[0].ControlCode)
		}
		if cands[0].Confidence != 0.95 {
			t.Errorf("confidence = %v, want capped 0.95 for six hits", cands[0].Confidence)
		}
	})

	t.Run("no rule hits returns generic candidate", func(t *testing.T) {
		cands := controls.Match("quarterly newsletter distributed to staff", nil)

		if len(cands) != 1 {
			t.Fatalf("Match() returned %d candidates, want 1", len(cands))
		}
		if cands[0].ControlCode != "CTRL-GEN-000" || cands[0].Confidence != 0.25 {
			t.Errorf("candidate = %+v, want CTRL-GEN-000 at 0.25", cands[0])
		}
		if cands[0].Rationale != "No specific overlaps detected" {
			t.Errorf("rationale = %q", cands[0].Rationale)
		}
	})

	t.Run("empty catalog with no overlap uses rules", func(t *testing.T) {
		specs := []catalog.ControlSpec{
			{ID: "u1", ControlID: "SC-13", Specification: "cryptographic module validation"},
		}
		cands := controls.Match("incident response playbook exercised with pagerduty", specs)

		if len(cands) == 0 {
			t.Fatal("Match() returned no candidates")
		}
		if cands[0].ControlCode != "CTRL-IR-001" {
			t.Errorf("candidate = %s, want fallback CTRL-IR-001", cands[0].ControlCode)
		}
	})
}
