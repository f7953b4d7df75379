package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/first-storm/henkaiki/internal/api"
	"github.com/first-storm/henkaiki/internal/articles"
	"github.com/first-storm/henkaiki/internal/config"
	"github.com/first-storm/henkaiki/internal/logging"
	"github.com/first-storm/henkaiki/internal/markdown"
	"github.com/first-storm/henkaiki/pkg/version"
)

// newServeCmd creates the serve command.
func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the article server",
		Long:  `Index the article tree and serve it over HTTP until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

// runServe wires config, logging, the engine, and the HTTP server
// together and blocks until the process is signaled.
func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logging.Setup(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	slog.Info("starting henkaiki",
		slog.String("version", version.Version),
		slog.String("articles_dir", cfg.Main.ArticlesDir))

	engine, err := articles.New(cfg.Main.ArticlesDir, articles.Options{
		CacheCapacity:    cfg.Main.MaxCachedArticles,
		RecordCacheStats: cfg.Main.RecordCacheStats,
		EnableSample:     cfg.Main.SampleArticle,
		Render:           markdown.RendererFor(cfg.Markdown),
	})
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	server := api.NewServer(api.Config{
		Addr:            cfg.ListenAddr(),
		DefaultPageSize: cfg.Articles.PerPage,
		Version:         version.Version,
	}, engine)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	slog.Info("henkaiki stopped")
	return nil
}
