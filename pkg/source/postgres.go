package source

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/lingo/pkg/db"
	"github.com/dmitrymomot/lingo/pkg/locale"
)

// DefaultTable holds one row per language and namespace.
const DefaultTable = "locale_trees"

// MigrationsTable records applied source migrations.
const MigrationsTable = "lingo_schema_migrations"

//go:embed migrations/*.sql
var migrations embed.FS

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres loads trees stored as JSONB documents, one row per language and
// namespace.
type Postgres struct {
	db    Querier
	table string
}

// PostgresOption configures a Postgres source.
type PostgresOption func(*Postgres)

// WithTable reads from a table other than DefaultTable. The table must have
// the columns lang, namespace and content.
func WithTable(name string) PostgresOption {
	return func(p *Postgres) {
		if name != "" {
			p.table = name
		}
	}
}

// NewPostgres creates a source over q.
func NewPostgres(q Querier, opts ...PostgresOption) *Postgres {
	p := &Postgres{db: q, table: DefaultTable}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Migrate creates the default table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	return db.Migrate(ctx, pool, migrations, "migrations", MigrationsTable, log)
}

type treeRow struct {
	Lang      string
	Namespace string
	Content   []byte
}

// Load reads every row.
func (p *Postgres) Load(ctx context.Context) (map[string]locale.Tree, error) {
	rows, err := p.db.Query(ctx, fmt.Sprintf(
		"SELECT lang, namespace, content FROM %s ORDER BY lang, namespace",
		pgx.Identifier{p.table}.Sanitize(),
	))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[treeRow])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	out := make(map[string]locale.Tree)
	for _, r := range records {
		content, err := DecodeJSON(r.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %w", ErrInvalidFile, r.Lang, r.Namespace, err)
		}
		addNamespace(out, r.Lang, r.Namespace, content)
	}
	return out, nil
}

// Put stores one namespace of a language, replacing any previous content.
func (p *Postgres) Put(ctx context.Context, lang, namespace string, content map[string]any) error {
	data, err := EncodeJSON(content)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(ctx, fmt.Sprintf(
		`INSERT INTO %s (lang, namespace, content) VALUES ($1, $2, $3)
		ON CONFLICT (lang, namespace) DO UPDATE SET content = EXCLUDED.content, updated_at = now()`,
		pgx.Identifier{p.table}.Sanitize(),
	), lang, namespace, data)
	if err != nil {
		return fmt.Errorf("%w: storing %s/%s: %w", ErrLoadFailed, lang, namespace, err)
	}
	return nil
}

// Delete removes one namespace of a language.
func (p *Postgres) Delete(ctx context.Context, lang, namespace string) error {
	tag, err := p.db.Exec(ctx, fmt.Sprintf(
		"DELETE FROM %s WHERE lang = $1 AND namespace = $2",
		pgx.Identifier{p.table}.Sanitize(),
	), lang, namespace)
	if err != nil {
		return fmt.Errorf("%w: deleting %s/%s: %w", ErrLoadFailed, lang, namespace, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Sync writes every namespace of trees in one transaction. Rows for
// languages and namespaces not in trees are left alone.
func Sync(ctx context.Context, pool *pgxpool.Pool, trees map[string]locale.Tree, opts ...PostgresOption) error {
	return db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		p := NewPostgres(tx, opts...)
		for lang, tree := range trees {
			for ns, content := range tree {
				m, ok := content.(map[string]any)
				if !ok {
					return fmt.Errorf("%w: %s/%s is %T", ErrInvalidFile, lang, ns, content)
				}
				if err := p.Put(ctx, lang, ns, m); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
