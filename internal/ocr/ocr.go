// Package ocr turns raw evidence files into text for the pipeline.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates no extractor handles the file type.
var ErrUnsupportedFormat = errors.New("unsupported evidence format")

// Extractor converts an evidence file into plain text.
type Extractor interface {
	// Extract reads the file content and returns its text.
	Extract(ctx context.Context, name string, r io.Reader) (string, error)
}

// Plaintext handles text-native evidence files. Formats that require real
// optical recognition are rejected with ErrUnsupportedFormat so callers can
// route them to an external provider.
type Plaintext struct{}

func (Plaintext) Extract(ctx context.Context, name string, r io.Reader) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".csv", ".log", ".json":
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
}
