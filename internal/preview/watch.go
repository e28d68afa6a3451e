package preview

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces editor save bursts into a single rebuild.
const debounceWindow = 250 * time.Millisecond

// newWatcher watches the docs tree (recursively) and the configuration file.
func newWatcher(docsDir, configPath string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addDirsRecursive(watcher, docsDir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	// Watch the config file's directory: editors replace files on save, and
	// a watch on the old inode would go stale.
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != root {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}

// watchLoop turns raw filesystem events into debounced rebuild requests.
// Newly created directories are added to the watch set on the fly.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, configPath string, rebuild chan<- string) {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		trigger string
	)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevantEvent(event, configPath) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					if err := addDirsRecursive(watcher, event.Name); err != nil {
						slog.Warn("Failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			trigger = "watch"
			if event.Name == configPath {
				trigger = "config"
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerCh = timer.C
			} else {
				timer.Reset(debounceWindow)
			}
		case <-timerCh:
			timer, timerCh = nil, nil
			select {
			case rebuild <- trigger:
			default: // a rebuild is already queued
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Filesystem watcher error", "error", err)
		}
	}
}

// relevantEvent filters out noise: chmod-only events, editor temp files, and
// unrelated files in the config directory.
func relevantEvent(event fsnotify.Event, configPath string) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasPrefix(base, ".#") {
		return false
	}
	if filepath.Dir(event.Name) == filepath.Dir(configPath) && event.Name != configPath {
		// Only the config file itself matters in the config directory, unless
		// the docs tree lives there too (then the docs watch covers it).
		if !strings.HasSuffix(base, ".md") && !strings.HasSuffix(base, ".markdown") {
			return false
		}
	}
	return true
}
