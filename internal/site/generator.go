// Package site compiles a validated configuration plus a content directory
// into a static HTML site via a sequential stage pipeline. Each build is
// one-shot and stateless: the configuration is parsed before the build,
// held immutably while it runs, and discarded with the BuildState after the
// artifact is produced. Concurrent builds of different configurations share
// nothing.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/eventstore"
	"git.home.luguber.info/inful/sitegen/internal/markdown"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/notify"
	"git.home.luguber.info/inful/sitegen/internal/theme"
)

// Options carries the optional collaborators a build can be wired with.
type Options struct {
	// SiteDir overrides the configured output directory when non-empty.
	SiteDir string
	// LiveReload embeds the reload listener in every page (serve mode).
	LiveReload bool

	Metrics  metrics.Recorder
	Events   eventstore.Store
	Notifier *notify.Publisher
}

// Generator runs builds for one configuration.
type Generator struct {
	cfg  *config.Config
	opts Options
}

// NewGenerator creates a generator. cfg must already be validated by
// config.Load.
func NewGenerator(cfg *config.Config, opts Options) *Generator {
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}
	return &Generator{cfg: cfg, opts: opts}
}

// Build runs the full stage pipeline once. The returned report is non-nil
// whenever the stages started executing, even on failure.
func (g *Generator) Build(ctx context.Context) (*Report, error) {
	siteDir := g.cfg.SiteDir
	if g.opts.SiteDir != "" {
		siteDir = g.opts.SiteDir
	}

	renderer, unknown := markdown.New(g.cfg.MarkdownExtensions)
	themeRenderer, err := theme.New(g.cfg)
	if err != nil {
		return nil, err
	}

	bs := &BuildState{
		Config:   g.cfg,
		BuildID:  uuid.NewString(),
		DocsDir:  g.cfg.DocsDir,
		SiteDir:  siteDir,
		Renderer: renderer,
		Theme:    themeRenderer,
		Site:     theme.SiteData(g.cfg, g.opts.LiveReload),
		Report: &Report{
			StartedAt: time.Now(),
		},
	}
	bs.Report.BuildID = bs.BuildID

	for _, name := range unknown {
		bs.addWarning(StageScanDocs, "unknown markdown extension: "+name)
	}

	slog.Info("Starting site build",
		"build_id", bs.BuildID,
		"site_name", g.cfg.SiteName,
		"docs_dir", bs.DocsDir,
		"site_dir", bs.SiteDir)

	g.recordEvent(ctx, bs, eventstore.EventBuildStarted, nil)
	g.notify(notify.BuildEvent{BuildID: bs.BuildID, SiteName: g.cfg.SiteName, Status: "started"})

	err = g.runStages(ctx, bs)
	bs.Report.Duration = time.Since(bs.Report.StartedAt)
	g.opts.Metrics.ObserveBuildDuration(bs.Report.Duration)

	if err == nil && g.cfg.Strict && len(bs.Report.Warnings) > 0 {
		err = fmt.Errorf("%w: %d warning(s)", ErrStrictWarnings, len(bs.Report.Warnings))
	}

	if err != nil {
		g.opts.Metrics.IncBuildOutcome("failure")
		g.recordEvent(ctx, bs, eventstore.EventBuildFailed, map[string]string{"error": err.Error()})
		g.notify(notify.BuildEvent{
			BuildID:    bs.BuildID,
			SiteName:   g.cfg.SiteName,
			Status:     "failed",
			Error:      err.Error(),
			DurationMS: bs.Report.Duration.Milliseconds(),
		})
		return bs.Report, err
	}

	g.opts.Metrics.IncBuildOutcome("success")
	g.opts.Metrics.AddPagesRendered(bs.Report.PagesRendered)
	g.recordEvent(ctx, bs, eventstore.EventBuildFinished, map[string]string{
		"pages": fmt.Sprintf("%d", bs.Report.PagesRendered),
	})
	g.notify(notify.BuildEvent{
		BuildID:    bs.BuildID,
		SiteName:   g.cfg.SiteName,
		Status:     "succeeded",
		Pages:      bs.Report.PagesRendered,
		DurationMS: bs.Report.Duration.Milliseconds(),
	})

	slog.Info("Site build completed",
		"build_id", bs.BuildID,
		"pages", bs.Report.PagesRendered,
		"assets", bs.Report.AssetsCopied,
		"warnings", len(bs.Report.Warnings),
		"duration", bs.Report.Duration)
	return bs.Report, nil
}

func (g *Generator) runStages(ctx context.Context, bs *BuildState) error {
	// The output directory is cleaned only after the content scan succeeds,
	// so a build that fails validation leaves the previous artifact intact.
	stages := []struct {
		name StageName
		run  Stage
	}{
		{StageFetchSource, stageFetchSource},
		{StageScanDocs, stageScanDocs},
		{StagePrepareOutput, stagePrepareOutput},
		{StageRenderPages, stageRenderPages},
		{StageCopyAssets, stageCopyAssets},
		{StageRunPlugins, stageRunPlugins},
		{StagePostProcess, stagePostProcess},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		err := s.run(ctx, bs)
		elapsed := time.Since(start)

		bs.Report.Stages = append(bs.Report.Stages, StageTiming{Stage: s.name, Duration: elapsed})
		g.opts.Metrics.ObserveStageDuration(string(s.name), elapsed)

		if err != nil {
			g.opts.Metrics.IncStageResult(string(s.name), "failure")
			return err
		}
		g.opts.Metrics.IncStageResult(string(s.name), "success")
		g.recordEvent(ctx, bs, eventstore.EventStageCompleted, map[string]string{
			"stage":       string(s.name),
			"duration_ms": fmt.Sprintf("%d", elapsed.Milliseconds()),
		})
		slog.Debug("Stage completed", "stage", s.name, "duration", elapsed)
	}
	return nil
}

func (g *Generator) recordEvent(ctx context.Context, bs *BuildState, eventType string, metadata map[string]string) {
	if g.opts.Events == nil {
		return
	}
	payload, _ := json.Marshal(map[string]any{"site_name": g.cfg.SiteName})
	if err := g.opts.Events.Append(ctx, bs.BuildID, eventType, payload, metadata); err != nil {
		slog.Warn("Failed to record build event", "event", eventType, "error", err)
	}
}

func (g *Generator) notify(event notify.BuildEvent) {
	g.opts.Notifier.Publish(event)
}
