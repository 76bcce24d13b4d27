package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libris/internal/server/storetest"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct {
	prefix string
	n      atomic.Int64
}

func (g *seqIDs) New() (string, error) {
	return fmt.Sprintf("%s-%03d", g.prefix, g.n.Add(1)), nil
}

type fixture struct {
	db        *sql.DB
	repos     *repomanager.SQLRepositoryManager
	lifecycle *LifecycleManager
	catalog   *CatalogService
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	return newFixtureOn(t, storetest.Open(t), opts...)
}

func newFixtureOn(t *testing.T, db *sql.DB, opts ...Option) *fixture {
	t.Helper()
	repos := repomanager.NewSQLRepositoryManager(dbx.SQLite)
	return &fixture{
		db:        db,
		repos:     repos,
		lifecycle: NewLifecycleManager(db, repos, opts...),
		catalog:   NewCatalogService(db, repos, opts...),
	}
}

func (f *fixture) book(t *testing.T, title, isbn string) *models.Book {
	t.Helper()
	b, err := f.catalog.CreateBook(context.Background(), BookInput{Title: title, Author: "Terry Pratchett", ISBN: isbn})
	require.NoError(t, err)
	return b
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := f.catalog.CreateUser(context.Background(), UserInput{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return u
}

func (f *fixture) bookStatus(t *testing.T, id string) models.BookStatus {
	t.Helper()
	b, err := f.catalog.GetBook(context.Background(), id)
	require.NoError(t, err)
	return b.Status
}

// activeCount counts ACTIVE borrowings for a book straight from the table.
func (f *fixture) activeCount(t *testing.T, bookID string) int {
	t.Helper()
	var n int
	err := f.db.QueryRow(`SELECT COUNT(*) FROM borrowings WHERE book_id = ? AND status = 'ACTIVE'`, bookID).Scan(&n)
	require.NoError(t, err)
	return n
}

// requireConsistent checks that a book is BORROWED iff it has exactly one
// ACTIVE borrowing.
func (f *fixture) requireConsistent(t *testing.T, bookID string) {
	t.Helper()
	n := f.activeCount(t, bookID)
	if f.bookStatus(t, bookID) == models.BookBorrowed {
		require.Equal(t, 1, n)
	} else {
		require.Equal(t, 0, n)
	}
}
