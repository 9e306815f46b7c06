// Package pg connects to PostgreSQL through a pgx/v5 pool and applies goose
// migrations shipped inside the binary.
//
// Connect retries with a linear back-off until the database answers a ping
// or the context ends. Migrate bridges the pool to database/sql, which goose
// requires, and runs every pending migration from an fs.FS:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, store.Migrations, cfg, log); err != nil {
//		return err
//	}
//
// Healthcheck adapts the pool to the readiness probe signature. The Is*Error
// helpers classify driver errors without leaking pgx types to callers.
package pg
