package workflow

import (
	"log/slog"

	"github.com/dmcameron/attest/internal/agents"
	"github.com/dmcameron/attest/internal/catalog"
	"github.com/dmcameron/attest/pkg/debug"
)

// Runtime bundles the dependencies that pipeline stages require.
// It is constructed by higher-level composition code from configuration.
type Runtime struct {
	Agents  agents.System
	Catalog *catalog.Cache
	Debug   debug.Recorder
	Logger  *slog.Logger
}
