// Package ports defines the interfaces (driven and driving ports)
// for the Hourglass application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"

	"github.com/xvierd/hourglass/internal/config"
)

// Store defines the interface for the persisted key-value document.
// This is a driven port (implemented by adapters).
type Store interface {
	// Load returns the whole document. Absent or malformed entries are
	// simply missing; only I/O failures are errors.
	Load(ctx context.Context) (config.Document, error)

	// Save replaces the stored document with doc.
	Save(ctx context.Context, doc config.Document) error

	// Location describes where the document lives, for display.
	Location() string
}

// Notifier defines the interface for desktop notifications.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// NotifyCountdownDone announces a countdown of the given length finishing.
	NotifyCountdownDone(duration string) error

	// NotifyDeadlineReached announces that the deadline target was reached.
	NotifyDeadlineReached(target string) error
}
