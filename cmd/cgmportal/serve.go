package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/cgmportal/internal/portal"
	"github.com/dmitrymomot/cgmportal/internal/store"
	"github.com/dmitrymomot/cgmportal/pkg/file"
	"github.com/dmitrymomot/cgmportal/pkg/httpserver"
	"github.com/dmitrymomot/cgmportal/pkg/logger"
	"github.com/dmitrymomot/cgmportal/pkg/pg"
	"github.com/dmitrymomot/cgmportal/pkg/ratelimit"
	"github.com/dmitrymomot/cgmportal/pkg/redis"
	"github.com/dmitrymomot/cgmportal/pkg/targets"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg, cmd.OutOrStdout())
			logger.SetAsDefault(log)

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(runCtx, cfg, log, !skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply database migrations on start")
	return cmd
}

func serve(ctx context.Context, cfg portal.Config, log *slog.Logger, migrate bool) error {
	storage, err := file.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("upload storage: %w", err)
	}

	table, err := targets.LoadFile(cfg.TargetsFile)
	if err != nil {
		return fmt.Errorf("target table: %w", err)
	}

	var (
		st     store.Store = store.NewMemoryStore()
		checks []httpserver.Check
	)
	if cfg.Postgres.Enabled() {
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer pool.Close()

		if migrate {
			if err := pg.Migrate(ctx, pool, store.Migrations, cfg.Postgres, log); err != nil {
				return err
			}
		}
		st = store.NewPostgresStore(pool)
		checks = append(checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
	} else {
		log.Warn("PG_CONN_URL is not set, uploads and lab values are kept in memory",
			logger.Component("serve"),
		)
	}

	var limits ratelimit.Store
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		limits = ratelimit.NewRedisStore(client, cfg.Redis.KeyPrefix+"ratelimit:")
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	}

	p, err := portal.New(portal.Deps{
		Config:       cfg,
		Logger:       log,
		Store:        st,
		Storage:      storage,
		Targets:      table,
		Checks:       checks,
		UploadLimits: limits,
	})
	if err != nil {
		return err
	}
	defer p.Close()

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		// Event streams only end when their sessions close.
		httpserver.WithOnShutdown(p.Close),
	)
	return srv.Run(ctx, p.Router())
}
