// Package users stores library members.
package users

import (
	"context"

	"github.com/dmitrijs2005/libris/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindMany(ctx context.Context, offset, limit int) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, user *models.User) error
}
