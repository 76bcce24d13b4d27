package dbx

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Builder is a prepared query: goqu datasets satisfy it.
type Builder interface {
	ToSQL() (string, []any, error)
}

// QueryRow renders b and runs it as a single-row query.
func QueryRow(ctx context.Context, db DBTX, b Builder) (*sql.Row, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return db.QueryRowContext(ctx, query, args...), nil
}

// Exec renders b and executes it.
func Exec(ctx context.Context, db DBTX, b Builder) (sql.Result, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return db.ExecContext(ctx, query, args...)
}

// Select renders b, runs it and scans every row into dest, a pointer to a
// slice of structs with db tags.
func Select(ctx context.Context, db DBTX, b Builder, dest any) error {
	query, args, err := b.ToSQL()
	if err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	return sqlx.StructScan(rows, dest)
}

// Affected reports whether res touched at least one row.
func Affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
