package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource loads control specifications from a local JSON catalog file,
// used as the offline fallback when the remote catalog is unreachable.
type FileSource struct {
	path string
}

// NewFileSource creates a file catalog source for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Load(ctx context.Context) ([]ControlSpec, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var specs []ControlSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", s.path, err)
	}
	return specs, nil
}
