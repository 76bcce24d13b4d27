// Package migrations embeds the goose SQL migrations, one directory per
// dialect, and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/libris/internal/dbx"
)

//go:embed postgres/*.sql mysql/*.sql sqlite3/*.sql
var Migrations embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Dir is the embedded directory holding the migrations for d.
func Dir(d dbx.Dialect) string {
	switch d {
	case dbx.Postgres:
		return "postgres"
	default:
		return string(d)
	}
}

// Up applies every pending migration for d.
func Up(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(d.Goose()); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, Dir(d))
}
