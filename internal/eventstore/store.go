// Package eventstore persists build lifecycle events so serve mode and the
// CLI can report on past builds.
package eventstore

import (
	"context"
	"time"
)

// Event types recorded during a build.
const (
	EventBuildStarted   = "build_started"
	EventStageCompleted = "stage_completed"
	EventBuildFinished  = "build_finished"
	EventBuildFailed    = "build_failed"
)

// Event is one recorded build event.
type Event struct {
	ID        int64
	BuildID   string
	EventType string
	Timestamp time.Time
	Payload   []byte
	Metadata  map[string]string
}

// Store is an append-only build event log.
type Store interface {
	Append(ctx context.Context, buildID, eventType string, payload []byte, metadata map[string]string) error
	GetByBuildID(ctx context.Context, buildID string) ([]Event, error)
	RecentBuilds(ctx context.Context, limit int) ([]string, error)
	Close() error
}
