// Command engine runs the stage-engine line protocol: each subcommand reads
// one JSON object from stdin and writes one JSON object to stdout. Failures
// produce an error envelope; exit code 2 signals malformed input or a
// missing subcommand, 1 any other failure.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dmcameron/attest/internal/engine"
	"github.com/dmcameron/attest/internal/workflow"
)

const (
	exitFailure  = 1
	exitBadInput = 2
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		fail(exitBadInput, engine.CodeBadInput, "missing subcommand", nil)
	}

	root := &cobra.Command{
		Use:           "engine",
		Short:         "Evidence classification stage engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		startCmd(logger),
		runStageCmd(logger),
		applyEditsCmd(logger),
		summarizeCmd(logger),
	)

	if err := root.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			fail(exitErr.code, exitErr.envCode, exitErr.message, exitErr.details)
		}
		fail(exitBadInput, engine.CodeBadInput, err.Error(), nil)
	}
}

// exitError carries an envelope through cobra's error return.
type exitError struct {
	code    int
	envCode string
	message string
	details map[string]any
}

func (e *exitError) Error() string { return e.message }

func badInput(message string) error {
	return &exitError{code: exitBadInput, envCode: engine.CodeBadInput, message: message}
}

func failure(envCode, message string) error {
	return &exitError{code: exitFailure, envCode: envCode, message: message}
}

func fail(code int, envCode, message string, details map[string]any) {
	writeJSON(engine.NewError(envCode, message, details))
	os.Exit(code)
}

func startCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Open a classification session",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(logger)
			if err != nil {
				return failure(engine.CodeInternal, err.Error())
			}

			var in engine.StartInput
			if err := readInput(&in); err != nil {
				return err
			}

			writeJSON(eng.Start(in))
			return nil
		},
	}
}

func runStageCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "run-stage",
		Short: "Execute a single pipeline stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(logger)
			if err != nil {
				return failure(engine.CodeInternal, err.Error())
			}

			var in engine.RunStageInput
			if err := readInput(&in); err != nil {
				return err
			}

			out, err := eng.RunStage(context.Background(), in)
			if err != nil {
				if errors.Is(err, workflow.ErrInvalidStage) {
					return failure(engine.CodeInvalidStage, fmt.Sprintf("Unknown stage: %s", in.Stage))
				}
				return failure(engine.CodeInternal, err.Error())
			}

			writeJSON(out)
			return nil
		},
	}
}

func applyEditsCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "apply-edits",
		Short: "Overlay human edits onto a stage output",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(logger)
			if err != nil {
				return failure(engine.CodeInternal, err.Error())
			}

			var in engine.ApplyEditsInput
			if err := readInput(&in); err != nil {
				return err
			}

			writeJSON(eng.ApplyEdits(in))
			return nil
		},
	}
}

func summarizeCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Echo session summary input",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(logger)
			if err != nil {
				return failure(engine.CodeInternal, err.Error())
			}

			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return badInput("read stdin: " + err.Error())
			}
			if len(raw) > 0 && !json.Valid(raw) {
				return badInput("stdin is not valid JSON")
			}

			writeJSON(json.RawMessage(eng.Summarize(raw)))
			return nil
		},
	}
}

// readInput decodes one JSON object from stdin. Empty stdin decodes as an
// empty object.
func readInput(v any) error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return badInput("read stdin: " + err.Error())
	}
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		if errors.Is(err, workflow.ErrInvalidStage) {
			return failure(engine.CodeInvalidStage, err.Error())
		}
		return badInput("parse stdin: " + err.Error())
	}
	return nil
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
	}
}
