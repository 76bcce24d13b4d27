package repomanager

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/migrations"
	"github.com/dmitrijs2005/libris/internal/server/repositories/authors"
	"github.com/dmitrijs2005/libris/internal/server/repositories/books"
	"github.com/dmitrijs2005/libris/internal/server/repositories/borrowings"
	"github.com/dmitrijs2005/libris/internal/server/repositories/users"
)

// SQLRepositoryManager vends SQL repositories for one dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	q       goqu.DialectWrapper
}

func NewSQLRepositoryManager(d dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: d, q: d.Builder()}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect { return m.dialect }

func (m *SQLRepositoryManager) Books(db dbx.DBTX) books.Repository {
	return books.NewSQLRepository(db, m.q)
}

func (m *SQLRepositoryManager) Authors(db dbx.DBTX) authors.Repository {
	return authors.NewSQLRepository(db, m.q)
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.q)
}

func (m *SQLRepositoryManager) Borrowings(db dbx.DBTX) borrowings.Repository {
	return borrowings.NewSQLRepository(db, m.q)
}

// migrateUp is a seam for tests.
var migrateUp = migrations.Up

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, m.dialect)
}
