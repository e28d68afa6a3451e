// Package preview implements serve mode: an HTTP server over the generated
// site with filesystem watching, debounced rebuilds, SSE live-reload and a
// Prometheus metrics endpoint. Every rebuild is an independent one-shot
// build on a freshly loaded configuration snapshot.
package preview

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/eventstore"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/notify"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

// Options configures serve mode.
type Options struct {
	Addr            string
	ConfigPath      string
	RebuildInterval time.Duration // 0 disables scheduled rebuilds
	Events          eventstore.Store
	Notifier        *notify.Publisher
}

// buildStatus tracks the current build state for error display.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
}

func (bs *buildStatus) set(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
	if err == nil {
		bs.hasGoodBuild = true
	}
}

func (bs *buildStatus) get() (error, bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.hasGoodBuild
}

// Run starts serve mode and blocks until ctx is canceled or the HTTP server
// fails.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	registry := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)
	reload := NewReloadHub()
	status := &buildStatus{}

	// The served directory is pinned for the server's lifetime. Rebuilds
	// always render into it, so a config edit that changes site_dir only
	// takes effect on the next serve start.
	siteDir := cfg.SiteDir

	rebuild := func(trigger string) {
		// Each rebuild reloads the configuration so config edits take
		// effect; the snapshot is immutable for the build's duration.
		fresh, err := config.Load(opts.ConfigPath)
		if err != nil {
			slog.Error("Rebuild aborted: configuration invalid", "trigger", trigger, "error", err)
			status.set(err)
			return
		}
		gen := site.NewGenerator(fresh, site.Options{
			SiteDir:    siteDir,
			LiveReload: true,
			Metrics:    recorder,
			Events:     opts.Events,
			Notifier:   opts.Notifier,
		})
		recorder.IncRebuild(trigger)
		if _, err := gen.Build(ctx); err != nil {
			slog.Error("Rebuild failed", "trigger", trigger, "error", err)
			status.set(err)
			return
		}
		status.set(nil)
		reload.Broadcast()
	}

	// Initial build before the server comes up.
	gen := site.NewGenerator(cfg, site.Options{SiteDir: siteDir, LiveReload: true, Metrics: recorder, Events: opts.Events, Notifier: opts.Notifier})
	if _, err := gen.Build(ctx); err != nil {
		slog.Error("Initial build failed", "error", err)
		status.set(err)
	} else {
		status.set(nil)
	}

	absDocs, err := filepath.Abs(cfg.DocsDir)
	if err != nil {
		return fmt.Errorf("resolve docs dir: %w", err)
	}
	if st, statErr := os.Stat(absDocs); statErr != nil || !st.IsDir() {
		return fmt.Errorf("docs dir not found or not a directory: %s", absDocs)
	}
	absConfig, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := newWatcher(absDocs, absConfig)
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq := make(chan string, 1)
	go watchLoop(ctx, watcher, absConfig, rebuildReq)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case trigger := <-rebuildReq:
				rebuild(trigger)
			}
		}
	}()

	if opts.RebuildInterval > 0 {
		sched, err := NewScheduler(opts.RebuildInterval, rebuildReq)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() { _ = sched.Stop() }()
	}

	server := &http.Server{
		Addr:              opts.Addr,
		Handler:           newHandler(siteDir, reload, registry, status),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", "addr", opts.Addr, "url", "http://"+opts.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newHandler assembles the serve-mode mux: the site file server plus the
// operational endpoints.
func newHandler(siteDir string, reload *ReloadHub, registry *prom.Registry, status *buildStatus) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/__livereload", reload)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		lastErr, good := status.get()
		if lastErr != nil && !good {
			http.Error(w, "last build failed: "+lastErr.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/", serveSite(siteDir, status))
	return mux
}

// serveSite serves the generated tree, surfacing the last build error as an
// HTTP 500 page when no good build exists yet.
func serveSite(siteDir string, status *buildStatus) http.Handler {
	files := http.FileServer(http.Dir(siteDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastErr, good := status.get(); lastErr != nil && !good {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "<!DOCTYPE html><html><body><h1>Build failed</h1><pre>%s</pre></body></html>", html.EscapeString(lastErr.Error()))
			return
		}
		files.ServeHTTP(w, r)
	})
}
