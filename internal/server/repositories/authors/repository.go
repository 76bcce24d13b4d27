// Package authors stores author records. Books refer to authors by name.
package authors

import (
	"context"

	"github.com/dmitrijs2005/libris/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*models.Author, error)
	FindMany(ctx context.Context, offset, limit int) ([]models.Author, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, author *models.Author) error
}
