// Package database opens the bun handle backing the document and media
// repositories.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-wikitext/internal/documents"
	"github.com/goliatone/go-wikitext/internal/media"
)

// ErrDriverUnsupported is returned for drivers other than sqlite and postgres.
var ErrDriverUnsupported = errors.New("database: unsupported driver")

// Open connects to dsn with the named driver ("sqlite" or "postgres") and
// returns a bun handle using the matching dialect.
func Open(driver, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("database: open sqlite: %w", err)
		}
		// shared in-memory databases vanish with their last connection
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres", "postgresql":
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("database: open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrDriverUnsupported, driver)
	}
}

// Models lists the tables the renderer stores.
func Models() []any {
	return []any{(*documents.Document)(nil), (*media.Asset)(nil)}
}

// Migrate creates the document and media tables when missing.
func Migrate(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("database: create table: %w", err)
		}
	}
	return nil
}
