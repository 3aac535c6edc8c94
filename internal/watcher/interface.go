package watcher

import "context"

// Watcher monitors a drop directory for new sermon recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly dropped recording.
type EventHandler func(ctx context.Context, filePath string) error
