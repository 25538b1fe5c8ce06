package workflow

import (
	"context"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// maxTextChars caps evidence text entering the pipeline.
const maxTextChars = 200_000

// IngestInput is the payload for the ingest_text stage.
type IngestInput struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// IngestOutput records the bounded text and whether truncation occurred.
type IngestOutput struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	Truncated bool   `json:"truncated"`
	Length    int    `json:"length"`
}

// RunIngest bounds evidence text to the pipeline's character limit and
// records the source label, defaulting to "unknown".
func RunIngest(in IngestInput) IngestOutput {
	text := in.Text
	truncated := false
	if len(text) > maxTextChars {
		text = text[:maxTextChars]
		truncated = true
	}

	source := in.Source
	if source == "" {
		source = "unknown"
	}

	return IngestOutput{
		Text:      text,
		Source:    source,
		Truncated: truncated,
		Length:    len(text),
	}
}

// IngestNode returns a state node that bounds the pipeline text in place.
func IngestNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		ps, err := extractPipeline(s)
		if err != nil {
			return s, err
		}

		out := RunIngest(IngestInput{Text: ps.Text, Source: ps.Source})
		ps.Text = out.Text
		ps.Source = out.Source
		ps.Truncated = out.Truncated
		ps.Length = out.Length

		rt.Logger.InfoContext(ctx, "ingest complete",
			"source", out.Source,
			"length", out.Length,
			"truncated", out.Truncated,
		)

		return s.Set(KeyPipeline, *ps), nil
	})
}
