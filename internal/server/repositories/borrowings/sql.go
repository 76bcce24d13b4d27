package borrowings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/models"
)

const table = "borrowings"

var columns = []any{"id", "book_id", "user_id", "borrow_date", "due_date", "return_date", "status"}

type SQLRepository struct {
	db dbx.DBTX
	q  goqu.DialectWrapper
}

func NewSQLRepository(db dbx.DBTX, q goqu.DialectWrapper) *SQLRepository {
	return &SQLRepository{db: db, q: q}
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*models.Borrowing, error) {
	ds := r.q.From(table).Prepared(true).Select(columns...).Where(goqu.C("id").Eq(id))

	row, err := dbx.QueryRow(ctx, r.db, ds)
	if err != nil {
		return nil, err
	}

	b := &models.Borrowing{}
	err = row.Scan(&b.ID, &b.BookID, &b.UserID, &b.BorrowDate, &b.DueDate, &b.ReturnDate, &b.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewNotFound("Borrowing", id)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *SQLRepository) FindMany(ctx context.Context, filter models.BorrowingFilter, offset, limit int) ([]models.Borrowing, error) {
	ds := r.q.From(table).Prepared(true).Select(columns...).Where(where(filter)...).
		Order(goqu.C("borrow_date").Desc(), goqu.C("id").Desc())
	if limit > 0 {
		ds = ds.Limit(uint(limit)).Offset(uint(offset))
	}

	out := []models.Borrowing{}
	if err := dbx.Select(ctx, r.db, ds, &out); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *SQLRepository) Count(ctx context.Context, filter models.BorrowingFilter) (int64, error) {
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

func (r *SQLRepository) Insert(ctx context.Context, b *models.Borrowing) error {
	ds := r.q.Insert(table).Prepared(true).Rows(goqu.Record{
		"id":          b.ID,
		"book_id":     b.BookID,
		"user_id":     b.UserID,
		"borrow_date": b.BorrowDate,
		"due_date":    b.DueDate,
		"return_date": b.ReturnDate,
		"status":      string(b.Status),
	})

	if _, err := dbx.Exec(ctx, r.db, ds); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.NewConflict(common.ErrorDuplicate, "book %s already has an active borrowing", b.BookID)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) UpdateStatus(ctx context.Context, id string, expected, next models.BorrowingStatus, at time.Time) (bool, error) {
	set := goqu.Record{"status": string(next), "return_date": nil}
	if next == models.BorrowingReturned {
		set["return_date"] = at
	}

	ds := r.q.Update(table).Prepared(true).Set(set).
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

func where(f models.BorrowingFilter) []exp.Expression {
	var ex []exp.Expression
	if f.BookID != "" {
		ex = append(ex, goqu.C("book_id").Eq(f.BookID))
	}
	if f.UserID != "" {
		ex = append(ex, goqu.C("user_id").Eq(f.UserID))
	}
	if f.Status != "" {
		ex = append(ex, goqu.C("status").Eq(string(f.Status)))
	}
	return ex
}
