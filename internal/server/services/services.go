// Package services holds the library's business logic: the borrowing
// lifecycle and catalog maintenance. Transports depend on the Lifecycle and
// Catalog interfaces and translate the common error taxonomy.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/libris/internal/server/models"
)

type Lifecycle interface {
	BeginBorrow(ctx context.Context, bookID, userID string, dueDate *time.Time) (*models.Borrowing, error)
	CompleteReturn(ctx context.Context, borrowingID string) (*models.Borrowing, error)
	ListBooks(ctx context.Context, filter models.BookFilter, sort models.Sort, page models.Page) (*models.BookPage, error)
	GetBorrowing(ctx context.Context, id string) (*models.Borrowing, error)
	ListBorrowings(ctx context.Context, filter models.BorrowingFilter, page models.Page) ([]models.Borrowing, int64, error)
	Reconcile(ctx context.Context) (*ReconcileReport, error)
	Now() time.Time
}

type Catalog interface {
	CreateBook(ctx context.Context, in BookInput) (*models.Book, error)
	GetBook(ctx context.Context, id string) (*models.Book, error)
	UpdateBook(ctx context.Context, id string, patch BookPatch) (*models.Book, error)
	DeleteBook(ctx context.Context, id string) error
	BookBorrowings(ctx context.Context, bookID string) ([]models.Borrowing, error)

	CreateAuthor(ctx context.Context, in AuthorInput) (*models.Author, error)
	GetAuthor(ctx context.Context, id string) (*models.Author, error)
	ListAuthors(ctx context.Context, page models.Page) ([]models.Author, int64, error)
	AuthorBooks(ctx context.Context, authorID string) ([]models.Book, error)

	CreateUser(ctx context.Context, in UserInput) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, page models.Page) ([]models.User, int64, error)
	UserBorrowings(ctx context.Context, userID string) ([]models.Borrowing, error)
}

var (
	_ Lifecycle = (*LifecycleManager)(nil)
	_ Catalog   = (*CatalogService)(nil)
)
