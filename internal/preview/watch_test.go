package preview

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestRelevantEvent(t *testing.T) {
	configPath := "/project/sitegen.yaml"
	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			"markdown write",
			fsnotify.Event{Name: "/project/docs/index.md", Op: fsnotify.Write},
			true,
		},
		{
			"chmod only",
			fsnotify.Event{Name: "/project/docs/index.md", Op: fsnotify.Chmod},
			false,
		},
		{
			"vim swap file",
			fsnotify.Event{Name: "/project/docs/.index.md.swp", Op: fsnotify.Create},
			false,
		},
		{
			"backup file",
			fsnotify.Event{Name: "/project/docs/index.md~", Op: fsnotify.Write},
			false,
		},
		{
			"emacs lock file",
			fsnotify.Event{Name: "/project/docs/.#index.md", Op: fsnotify.Create},
			false,
		},
		{
			"config file itself",
			fsnotify.Event{Name: "/project/sitegen.yaml", Op: fsnotify.Write},
			true,
		},
		{
			"unrelated file next to config",
			fsnotify.Event{Name: "/project/go.sum", Op: fsnotify.Write},
			false,
		},
		{
			"markdown next to config",
			fsnotify.Event{Name: "/project/README.md", Op: fsnotify.Write},
			true,
		},
		{
			"asset under docs",
			fsnotify.Event{Name: "/project/docs/img/logo.png", Op: fsnotify.Create},
			true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, relevantEvent(tc.event, configPath))
		})
	}
}
