package controls

import "strings"

// keyword rules applied when the catalog yields no overlap.
type rule struct {
	code     string
	label    string
	keywords []string
}

var fallbackRules = []rule{
	{"CTRL-PASS-001", "Password Policy", []string{"password policy", "passwords", "complexity", "rotate", "expiration", "length"}},
	{"CTRL-AUTH-001", "Multi-Factor Authentication", []string{"mfa", "2fa", "multi-factor", "two-factor", "otp", "okta"}},
	{"CTRL-ENC-001", "Encryption Controls", []string{"encryption", "aes-256", "tls", "at rest", "in transit", "kms"}},
	{"CTRL-LOG-001", "Logging and Monitoring", []string{"logging", "audit log", "cloudtrail", "siem", "splunk", "datadog", "cloudwatch"}},
	{"CTRL-IR-001", "Incident Response", []string{"incident response", "irp", "playbook", "pagerduty", "sev", "major incident"}},
}

func matchRules(lowered string) []Candidate {
	var candidates []Candidate
	for _, r := range fallbackRules {
		var hits []string
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				hits = append(hits, kw)
			}
		}
		if len(hits) == 0 {
			continue
		}
		confidence := 0.4 + 0.1*float64(len(hits))
		if confidence > 0.95 {
			confidence = 0.95
		}
		candidates = append(candidates, Candidate{
			ControlCode: r.code,
			Label:       r.label,
			Confidence:  round2(confidence),
			Rationale:   "Matched: " + strings.Join(hits, ", "),
		})
	}

	if len(candidates) == 0 {
		candidates = []Candidate{{
			ControlCode: "CTRL-GEN-000",
			Label:       "General Control",
			Confidence:  0.25,
			Rationale:   "No specific overlaps detected",
		}}
	}
	return candidates
}
