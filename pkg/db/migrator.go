package db

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Migrate applies the goose migrations found in dir of migrations, recording
// them in migrationTable.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, dir, migrationTable string, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	// Shares the pool's connections; closing it would close the pool.
	db := stdlib.OpenDBFromPool(pool)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&gooseLoggerAdapter{log})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: dialect: %w", ErrMigrate, err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("%w: %w", ErrMigrate, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

// Fatalf logs only: goose returns the error to Migrate as well.
func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...))
}
