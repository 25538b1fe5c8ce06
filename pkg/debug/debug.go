// Package debug records stage payload snapshots to disk for offline inspection.
// Recording never fails a pipeline run; write errors are logged and dropped.
package debug

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	maxStringLen = 10000
	maxListLen   = 1000
	maxDepth     = 2
)

// Recorder captures named payload snapshots during a pipeline run.
type Recorder interface {
	// Record writes a snapshot of payload under the given stage and label.
	Record(session string, stage string, label string, payload any)
}

// Nop returns a recorder that discards every snapshot.
func Nop() Recorder {
	return nopRecorder{}
}

type nopRecorder struct{}

func (nopRecorder) Record(string, string, string, any) {}

// FromEnv returns a directory recorder when the named environment variable
// points at a writable directory, otherwise a no-op recorder.
func FromEnv(envVar string, logger *slog.Logger) Recorder {
	dir := os.Getenv(envVar)
	if dir == "" {
		return Nop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("debug directory unavailable", "dir", dir, "error", err)
		return Nop()
	}
	return &dirRecorder{
		dir:    dir,
		logger: logger.With("system", "debug"),
	}
}

type dirRecorder struct {
	dir    string
	logger *slog.Logger
}

func (d *dirRecorder) Record(session, stage, label string, payload any) {
	snapshot := map[string]any{
		"session":     session,
		"stage":       stage,
		"label":       label,
		"recorded_at": time.Now().UTC().Format(time.RFC3339),
		"payload":     truncate(normalize(payload), 0),
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		d.logger.Warn("snapshot marshal failed", "stage", stage, "error", err)
		return
	}

	name := fmt.Sprintf("%d_%s_%s.json", time.Now().UnixNano(), stage, label)
	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		d.logger.Warn("snapshot write failed", "path", path, "error", err)
	}
}

// normalize converts a typed payload into generic JSON values so that
// truncation applies uniformly.
func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return string(data)
	}
	return out
}

// truncate bounds a payload for persistence: long strings are cut, long
// lists are capped, and nesting past maxDepth is summarized by type.
func truncate(v any, depth int) any {
	switch val := v.(type) {
	case string:
		if len(val) > maxStringLen {
			return val[:maxStringLen] + "...[truncated]"
		}
		return val
	case []any:
		if depth >= maxDepth {
			return fmt.Sprintf("[list of %d items]", len(val))
		}
		n := min(len(val), maxListLen)
		out := make([]any, n)
		for i := range n {
			out[i] = truncate(val[i], depth+1)
		}
		return out
	case map[string]any:
		if depth >= maxDepth {
			return fmt.Sprintf("[object with %d keys]", len(val))
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = truncate(item, depth+1)
		}
		return out
	default:
		return v
	}
}
