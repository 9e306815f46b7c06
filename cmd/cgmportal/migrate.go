package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/cgmportal/internal/store"
	"github.com/dmitrymomot/cgmportal/pkg/pg"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Postgres.Enabled() {
				return pg.ErrEmptyConnectionString
			}
			log := newLogger(cfg, cmd.ErrOrStderr())

			pool, err := pg.Connect(cmd.Context(), cfg.Postgres)
			if err != nil {
				return err
			}
			defer pool.Close()

			return pg.Migrate(cmd.Context(), pool, store.Migrations, cfg.Postgres, log)
		},
	}
}
