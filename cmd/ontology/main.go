package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/ontology/internal/config"
	"github.com/zeusync/ontology/internal/core/manifest"
	"github.com/zeusync/ontology/internal/core/observability/log"
	"github.com/zeusync/ontology/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration")
	manifestPaths := flag.String("manifest", "", "comma separated YAML universe manifests, override the configured ones")
	profileDir := flag.String("profile", "", "write a CPU profile into this directory")
	flag.Parse()

	var p interface{ Stop() }
	if *profileDir != "" {
		p = profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.NoShutdownHook)
	}

	err := run(*configPath, *manifestPaths)
	if p != nil {
		p.Stop()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ontology:", err)
		os.Exit(1)
	}
}

func run(configPath, manifestPaths string) error {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return err
		}
	}
	if manifestPaths != "" {
		cfg.Manifests = strings.Split(manifestPaths, ",")
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer func() { _ = app.Logger.Sync() }()
	defer app.Universe.Shutdown()

	logger := app.Logger.With(log.String("component", "main"))

	if len(cfg.Manifests) > 0 {
		m, err := manifest.LoadFiles(cfg.Manifests...)
		if err != nil {
			return err
		}
		built, err := m.Build(app.Universe)
		if err != nil {
			return fmt.Errorf("build manifest: %w", err)
		}
		logger.Info("Manifest loaded",
			log.Strings("paths", cfg.Manifests),
			log.Int("entities", len(built)),
			log.String("digest", fmt.Sprintf("%016x", app.Universe.Digest())))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Dispatcher.Run(ctx)
	})
	if cfg.Console.Enabled {
		g.Go(func() error {
			return app.Server.Run(ctx)
		})
	}

	logger.Info("Ontology running", log.Stringer("universe", app.Universe.ID()))
	err = g.Wait()
	logger.Info("Ontology stopped", log.Uint64("entities", uint64(1+app.Universe.NumberOfDescendants())))
	return err
}
