// Package db connects to the PostgreSQL database that stores translation
// content.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with startup retries, a
// readiness check, transactions and [github.com/pressly/goose/v3] migrations.
//
// # Configuration
//
// Config fields are tagged with the environment variables the lingo CLI
// reads:
//
//	LINGO_DATABASE_URL                - PostgreSQL connection URL (required)
//	LINGO_DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 4)
//	LINGO_DATABASE_MIN_CONNS          - Minimum idle connections (default: 1)
//	LINGO_DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	LINGO_DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	LINGO_DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	LINGO_DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	LINGO_DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//
// # Usage
//
//	pool, err := db.Connect(ctx, db.DefaultConfig(os.Getenv("LINGO_DATABASE_URL")))
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
// # Transactions
//
// [WithTx] commits when fn returns nil and rolls back otherwise:
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := tx.Exec(ctx, "DELETE FROM locale_trees WHERE lang = $1", "fr")
//		return err
//	})
//
// # Migrations
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	err := db.Migrate(ctx, pool, migrations, "migrations", "schema_migrations", logger)
package db
