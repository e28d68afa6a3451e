package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/eventstore"
	"git.home.luguber.info/inful/sitegen/internal/notify"
	"git.home.luguber.info/inful/sitegen/internal/preview"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"sitegen.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output  string `short:"o" help:"Override the configured output directory"`
		Strict  bool   `help:"Treat build warnings as errors"`
		History string `help:"Record build events to a SQLite database at this path"`
	} `cmd:"" help:"Build the documentation site"`

	Serve struct {
		Addr            string        `short:"a" help:"Listen address" default:"localhost:8000"`
		RebuildInterval time.Duration `help:"Periodic full rebuild interval (0 disables)"`
		History         string        `help:"Record build events to a SQLite database at this path"`
	} `cmd:"" help:"Serve the site locally, rebuilding on changes"`

	Check struct{} `cmd:"" help:"Validate the configuration and navigation without building"`

	History struct {
		DB    string `help:"SQLite database written with --history" default:"sitegen-history.db"`
		Limit int    `help:"Number of recent builds to list" default:"10"`
		Build string `help:"Show all events recorded for one build ID"`
	} `cmd:"" help:"List recorded builds and their events"`

	Init struct {
		Force bool `help:"Overwrite an existing configuration file"`
	} `cmd:"" help:"Write a starter configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "build":
		if err := runBuild(); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "serve":
		if err := runServe(); err != nil {
			slog.Error("Serve failed", "error", err)
			os.Exit(1)
		}
	case "check":
		if err := runCheck(); err != nil {
			slog.Error("Check failed", "error", err)
			os.Exit(1)
		}
	case "history":
		if err := runHistory(); err != nil {
			slog.Error("History failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Configuration written", "path", CLI.Config)
	}
}

func runBuild() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	if CLI.Build.Strict {
		cfg.Strict = true
	}

	opts := site.Options{SiteDir: CLI.Build.Output}

	if CLI.Build.History != "" {
		store, err := eventstore.NewSQLiteStore(CLI.Build.History)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts.Events = store
	}

	notifier, err := notify.NewPublisher(cfg.Notifications)
	if err != nil {
		return err
	}
	defer notifier.Close()
	opts.Notifier = notifier

	report, err := site.NewGenerator(cfg, opts).Build(context.Background())
	if report != nil {
		for _, w := range report.WarningMessages() {
			slog.Warn("Build warning", "detail", w)
		}
	}
	return err
}

func runServe() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := preview.Options{
		Addr:            CLI.Serve.Addr,
		ConfigPath:      CLI.Config,
		RebuildInterval: CLI.Serve.RebuildInterval,
	}

	if CLI.Serve.History != "" {
		store, err := eventstore.NewSQLiteStore(CLI.Serve.History)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts.Events = store
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	notifier, err := notify.NewPublisher(cfg.Notifications)
	if err != nil {
		return err
	}
	defer notifier.Close()
	opts.Notifier = notifier

	return preview.Run(ctx, opts)
}
