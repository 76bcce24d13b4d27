// Package repomanager vends repositories bound to a database handle or a
// transaction, so a service can run several repositories in one transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/repositories/authors"
	"github.com/dmitrijs2005/libris/internal/server/repositories/books"
	"github.com/dmitrijs2005/libris/internal/server/repositories/borrowings"
	"github.com/dmitrijs2005/libris/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Books(db dbx.DBTX) books.Repository
	Authors(db dbx.DBTX) authors.Repository
	Users(db dbx.DBTX) users.Repository
	Borrowings(db dbx.DBTX) borrowings.Repository
}
