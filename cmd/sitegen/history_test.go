package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/sitegen/internal/eventstore"
)

func TestFormatEvents(t *testing.T) {
	ts := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	lines := formatEvents([]eventstore.Event{
		{EventType: eventstore.EventBuildStarted, Timestamp: ts},
		{
			EventType: eventstore.EventStageCompleted,
			Timestamp: ts.Add(time.Second),
			Metadata:  map[string]string{"stage": "render_pages", "duration_ms": "12"},
		},
		{
			EventType: eventstore.EventBuildFinished,
			Timestamp: ts.Add(2 * time.Second),
			Metadata:  map[string]string{"pages": "3"},
		},
	})

	assert.Equal(t, []string{
		"2026-08-31T12:00:00Z build_started",
		"2026-08-31T12:00:01Z stage_completed duration_ms=12 stage=render_pages",
		"2026-08-31T12:00:02Z build_finished pages=3",
	}, lines)
}

func TestFormatEventsEmpty(t *testing.T) {
	assert.Empty(t, formatEvents(nil))
}
