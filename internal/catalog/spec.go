// Package catalog loads and caches the control specification catalog that
// classification stages match evidence against.
package catalog

import "github.com/dmcameron/attest/pkg/formatting"

// ControlSpec is a single control specification record.
type ControlSpec struct {
	ID            string `json:"id"`
	ControlID     string `json:"control_id"`
	Specification string `json:"specification"`
}

// Normalize discards records missing a control id or specification and
// collapses whitespace in the remaining specification text. Record order
// is preserved.
func Normalize(specs []ControlSpec) []ControlSpec {
	out := make([]ControlSpec, 0, len(specs))
	for _, spec := range specs {
		spec.Specification = formatting.CollapseWhitespace(spec.Specification)
		if spec.ControlID == "" || spec.Specification == "" {
			continue
		}
		out = append(out, spec)
	}
	return out
}
