// Package borrowings stores loans of books to users.
package borrowings

import (
	"context"
	"time"

	"github.com/dmitrijs2005/libris/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*models.Borrowing, error)
	// FindMany lists newest loans first; limit 0 means no limit.
	FindMany(ctx context.Context, filter models.BorrowingFilter, offset, limit int) ([]models.Borrowing, error)
	Count(ctx context.Context, filter models.BorrowingFilter) (int64, error)
	// Insert fails with a duplicate conflict when the book already has an
	// ACTIVE borrowing.
	Insert(ctx context.Context, b *models.Borrowing) error
	// UpdateStatus moves a borrowing from expected to next and stamps the
	// return date when next is RETURNED. It reports false when the borrowing
	// is not in the expected state.
	UpdateStatus(ctx context.Context, id string, expected, next models.BorrowingStatus, at time.Time) (bool, error)
}
