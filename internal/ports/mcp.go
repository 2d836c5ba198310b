package ports

import (
	"context"

	"github.com/xvierd/hourglass/internal/domain"
)

// SnapshotProvider provides read-only state to the MCP server.
// This is a driven port (implemented by services layer).
type SnapshotProvider interface {
	// Snapshot evaluates every configured span at the current instant.
	Snapshot(ctx context.Context) (domain.Snapshot, error)

	// Timers returns the persisted countdown and deadline.
	Timers(ctx context.Context) (domain.Countdown, domain.Deadline, error)
}

// MCPHandler is the driving port for the MCP server.
type MCPHandler interface {
	// Start serves requests until the transport closes.
	Start(ctx context.Context) error

	// Stop shuts the server down.
	Stop() error

	// IsRunning reports whether the server is serving.
	IsRunning() bool
}
