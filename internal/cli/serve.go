package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lessonlab/quizroom/internal/config"
	"github.com/lessonlab/quizroom/internal/database"
	"github.com/lessonlab/quizroom/internal/server"
	"github.com/lessonlab/quizroom/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the quizroom HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return run(ctx, os.Stdout)
		},
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	defer st.Close()
	logger.Info("document store ready", "backend", cfg.DocStore)

	if cfg.SeedDemo {
		if err := server.SeedDemo(ctx, logger, st); err != nil {
			return fmt.Errorf("seeding demo room: %w", err)
		}
	}

	srv := server.New(cfg.HTTPAddr, logger, st, cfg.BaseURL, cfg.SPADir)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.DocStore {
	case "sqlite":
		db, err := database.Open(ctx, filepath.Join(cfg.DataDir, "quizroom.db"))
		if err != nil {
			return nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		st, err := store.NewSQLiteStore(ctx, db, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		return st, nil

	case "redis":
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("pinging redis: %w", err)
		}
		return store.NewRedisStore(rdb, logger), nil

	default:
		return store.NewFileStore(cfg.DataDir, logger)
	}
}
