package books

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewSQLRepository(db, goqu.Dialect("postgres")), mock, db
}

var bookCols = []string{"id", "title", "author", "isbn", "status", "created_at", "updated_at"}

func TestFindByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)^SELECT .*"isbn".* FROM "books" WHERE \("id" = \$1\)$`).
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows(bookCols).AddRow("b1", "Dune", "Frank Herbert", "isbn-1", "AVAILABLE", now, now))

	got, err := repo.FindByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, models.BookAvailable, got.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM "books"`).WithArgs("book-404").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "book-404")

	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Book", nf.Entity)
	assert.Equal(t, "book-404", nf.ID)
}

func TestFindByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM "books"`).WillReturnError(errors.New("db down"))

	_, err := repo.FindByID(context.Background(), "b1")
	require.ErrorContains(t, err, "db error: db down")
}

func TestFindMany_FilterSortPage(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)FROM "books" WHERE \(LOWER\("title"\) LIKE \$1 ESCAPE '!' AND \("status" = \$2\)\) ORDER BY "title" DESC, "id" DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("%witch%", "AVAILABLE", int64(10), int64(10)).
		WillReturnRows(sqlmock.NewRows(bookCols).AddRow("b2", "The Witcher", "Sapkowski", "isbn-2", "AVAILABLE", now, now))

	got, err := repo.FindMany(context.Background(),
		models.BookFilter{Title: "Witch", Status: models.BookAvailable},
		models.Sort{Field: "title", Desc: true}, 10, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMany_EscapesWildcards(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM "books"`).
		WithArgs("%100!%!_sure%").
		WillReturnRows(sqlmock.NewRows(bookCols))

	got, err := repo.FindMany(context.Background(), models.BookFilter{Author: "100%_Sure"}, models.Sort{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT COUNT\(\*\) FROM "books" WHERE \("status" = \$1\)$`).
		WithArgs("BORROWED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.Count(context.Background(), models.BookFilter{Status: models.BookBorrowed})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestUpdateStatus_Conditional(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE "books" SET .* WHERE \(\("id" = \$\d\) AND \("status" = \$\d\)\)$`

	mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateStatus(context.Background(), "b1", models.BookAvailable, models.BookBorrowed, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(context.Background(), "b1", models.BookAvailable, models.BookBorrowed, time.Now())
	require.NoError(t, err)
	assert.False(t, ok, "second transition must lose")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM "books"`).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^INSERT INTO "books"`).WillReturnError(errors.New("disk full"))

	err := repo.Insert(context.Background(), &models.Book{ID: "b1", ISBN: "x"})
	require.ErrorContains(t, err, "db error: disk full")
}

func TestSortColumn(t *testing.T) {
	c, ok := SortColumn("createdAt")
	assert.True(t, ok)
	assert.Equal(t, "created_at", c)

	_, ok = SortColumn("password")
	assert.False(t, ok)
}
