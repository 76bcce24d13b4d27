// Package books stores catalog entries.
package books

import (
	"context"
	"time"

	"github.com/dmitrijs2005/libris/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*models.Book, error)
	// FindMany returns books matching filter; limit 0 means no limit.
	FindMany(ctx context.Context, filter models.BookFilter, sort models.Sort, offset, limit int) ([]models.Book, error)
	Count(ctx context.Context, filter models.BookFilter) (int64, error)
	// FindByAuthorName matches Book.Author exactly, ignoring case.
	FindByAuthorName(ctx context.Context, name string) ([]models.Book, error)
	Insert(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	// UpdateStatus moves a book from expected to next. It reports false when
	// the book is not in the expected state.
	UpdateStatus(ctx context.Context, id string, expected, next models.BookStatus, at time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}

var sortColumns = map[string]string{
	"title":      "title",
	"author":     "author",
	"isbn":       "isbn",
	"status":     "status",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
}

// SortColumn maps a public sort field to its column.
func SortColumn(field string) (string, bool) {
	c, ok := sortColumns[field]
	return c, ok
}
