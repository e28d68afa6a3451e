package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/eventstore"
)

// runHistory lists builds recorded with --history, or the full event log of
// one build when --build is given.
func runHistory() error {
	store, err := eventstore.NewSQLiteStore(CLI.History.DB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if CLI.History.Build != "" {
		events, err := store.GetByBuildID(ctx, CLI.History.Build)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return fmt.Errorf("no events recorded for build %s", CLI.History.Build)
		}
		for _, line := range formatEvents(events) {
			fmt.Println(line)
		}
		return nil
	}

	ids, err := store.RecentBuilds(ctx, CLI.History.Limit)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("no builds recorded")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

// formatEvents renders one line per event: timestamp, type, then metadata
// key=value pairs in key order.
func formatEvents(events []eventstore.Event) []string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		parts := []string{e.Timestamp.Format(time.RFC3339), e.EventType}

		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, k+"="+e.Metadata[k])
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}
