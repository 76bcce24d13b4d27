package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/models"
)

const table = "users"

var columns = []any{"id", "name", "email", "status", "membership_date"}

type SQLRepository struct {
	db dbx.DBTX
	q  goqu.DialectWrapper
}

func NewSQLRepository(db dbx.DBTX, q goqu.DialectWrapper) *SQLRepository {
	return &SQLRepository{db: db, q: q}
}

func (r *SQLRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	ds := r.q.From(table).Prepared(true).Select(columns...).Where(goqu.C("id").Eq(id))

	row, err := dbx.QueryRow(ctx, r.db, ds)
	if err != nil {
		return nil, err
	}

	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Status, &u.MembershipDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewNotFound("User", id)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *SQLRepository) FindMany(ctx context.Context, offset, limit int) ([]models.User, error) {
	ds := r.q.From(table).Prepared(true).Select(columns...).
		Order(goqu.C("name").Asc(), goqu.C("id").Asc())
	if limit > 0 {
		ds = ds.Limit(uint(limit)).Offset(uint(offset))
	}

	out := []models.User{}
	if err := dbx.Select(ctx, r.db, ds, &out); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *SQLRepository) Count(ctx context.Context) (int64, error) {
	ds := r.q.From(table).Prepared(true).Select(goqu.COUNT(goqu.Star()))

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

func (r *SQLRepository) Insert(ctx context.Context, u *models.User) error {
	ds := r.q.Insert(table).Prepared(true).Rows(goqu.Record{
		"id":              u.ID,
		"name":            u.Name,
		"email":           u.Email,
		"status":          string(u.Status),
		"membership_date": u.MembershipDate,
	})

	if _, err := dbx.Exec(ctx, r.db, ds); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.NewConflict(common.ErrorDuplicate, "user with email %s already exists", u.Email)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
