package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/models"
)

const table = "books"

var columns = []any{"id", "title", "author", "isbn", "status", "created_at", "updated_at"}

type SQLRepository struct {
	db dbx.DBTX
	q  goqu.DialectWrapper
}

func NewSQLRepository(db dbx.DBTX, q goqu.DialectWrapper) *SQLRepository {
	return &SQLRepository{db: db, q: q}
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	ds := r.q.From(table).Prepared(true).Select(columns...).Where(goqu.C("id").Eq(id))

	row, err := dbx.QueryRow(ctx, r.db, ds)
	if err != nil {
		return nil, err
	}

	b := &models.Book{}
	err = row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewNotFound("Book", id)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *SQLRepository) FindMany(ctx context.Context, filter models.BookFilter, sort models.Sort, offset, limit int) ([]models.Book, error) {
	ds := r.q.From(table).Prepared(true).Select(columns...).Where(where(filter)...)

	col, ok := SortColumn(sort.Field)
	if !ok {
		col = "created_at"
	}
	if sort.Desc {
		ds = ds.Order(goqu.C(col).Desc(), goqu.C("id").Desc())
	} else {
		ds = ds.Order(goqu.C(col).Asc(), goqu.C("id").Asc())
	}

	if limit > 0 {
		ds = ds.Limit(uint(limit)).Offset(uint(offset))
	}

	out := []models.Book{}
	if err := dbx.Select(ctx, r.db, ds, &out); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *SQLRepository) Count(ctx context.Context, filter models.BookFilter) (int64, error) {
	ds := r.q.From(table).Prepared(true).Select(goqu.COUNT(goqu.Star())).Where(where(filter)...)

	row, err := dbx.QueryRow(ctx, r.db, ds)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) FindByAuthorName(ctx context.Context, name string) ([]models.Book, error) {
	ds := r.q.From(table).Prepared(true).Select(columns...).
		Where(goqu.L("LOWER(?) = ?", goqu.C("author"), strings.ToLower(name))).
		Order(goqu.C("title").Asc(), goqu.C("id").Asc())

	out := []models.Book{}
	if err := dbx.Select(ctx, r.db, ds, &out); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *SQLRepository) Insert(ctx context.Context, b *models.Book) error {
	ds := r.q.Insert(table).Prepared(true).Rows(goqu.Record{
		"id":         b.ID,
		"title":      b.Title,
		"author":     b.Author,
		"isbn":       b.ISBN,
		"status":     string(b.Status),
		"created_at": b.CreatedAt,
		"updated_at": b.UpdatedAt,
	})

	if _, err := dbx.Exec(ctx, r.db, ds); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.NewConflict(common.ErrorDuplicate, "book with isbn %s already exists", b.ISBN)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, b *models.Book) error {
	ds := r.q.Update(table).Prepared(true).Set(goqu.Record{
		"title":      b.Title,
		"author":     b.Author,
		"isbn":       b.ISBN,
		"status":     string(b.Status),
		"updated_at": b.UpdatedAt,
	}).Where(goqu.C("id").Eq(b.ID))

	res, err := dbx.Exec(ctx, r.db, ds)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.NewConflict(common.ErrorDuplicate, "book with isbn %s already exists", b.ISBN)
		}
		return fmt.Errorf("db error: %w", err)
	}

	ok, err := dbx.Affected(res)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if !ok {
		return common.NewNotFound("Book", b.ID)
	}
	return nil
}

func (r *SQLRepository) UpdateStatus(ctx context.Context, id string, expected, next models.BookStatus, at time.Time) (bool, error) {
	ds := r.q.Update(table).Prepared(true).
		Set(goqu.Record{"status": string(next), "updated_at": at}).
		Where(goqu.C("id").Eq(id), goqu.C("status").Eq(string(expected)))

	res, err := dbx.Exec(ctx, r.db, ds)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	ok, err := dbx.Affected(res)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	ds := r.q.Delete(table).Prepared(true).Where(goqu.C("id").Eq(id))

	res, err := dbx.Exec(ctx, r.db, ds)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	ok, err := dbx.Affected(res)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if !ok {
		return common.NewNotFound("Book", id)
	}
	return nil
}

func where(f models.BookFilter) []exp.Expression {
	var ex []exp.Expression
	if f.Title != "" {
		ex = append(ex, containsFold("title", f.Title))
	}
	if f.Author != "" {
		ex = append(ex, containsFold("author", f.Author))
	}
	if f.Status != "" {
		ex = append(ex, goqu.C("status").Eq(string(f.Status)))
	}
	return ex
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsFold matches col against s as a case-insensitive substring. "!" is
// the LIKE escape character because it needs no quoting in any dialect.
func containsFold(col, s string) exp.Expression {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
	return goqu.L("LOWER(?) LIKE ? ESCAPE '!'", goqu.C(col), pattern)
}
