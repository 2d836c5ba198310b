package ports_test

import (
	"github.com/xvierd/hourglass/internal/adapters/notification"
	"github.com/xvierd/hourglass/internal/adapters/storage"
	"github.com/xvierd/hourglass/internal/config"
	"github.com/xvierd/hourglass/internal/ports"
)

// The driven ports are satisfied by every adapter the CLI can wire in.
var (
	_ ports.Store    = (*config.FileStore)(nil)
	_ ports.Store    = (*storage.Store)(nil)
	_ ports.Notifier = (*notification.Notifier)(nil)
)
