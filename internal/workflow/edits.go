package workflow

// ApplyEdits overlays human-provided edits onto a stage's model output.
// The merge is a shallow key overwrite: edited keys replace the model's
// values, unedited keys pass through unchanged. Neither input map is
// mutated. A nil edit map returns a copy of the model output.
func ApplyEdits(modelOutput, edits map[string]any) map[string]any {
	decided := make(map[string]any, len(modelOutput)+len(edits))
	for k, v := range modelOutput {
		decided[k] = v
	}
	for k, v := range edits {
		decided[k] = v
	}
	return decided
}
