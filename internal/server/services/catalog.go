package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/repositories/repomanager"
)

// BookInput is a new catalog entry. Status defaults to AVAILABLE.
type BookInput struct {
	Title  string
	Author string
	ISBN   string
	Status models.BookStatus
}

// BookPatch updates the non-nil fields of a book.
type BookPatch struct {
	Title  *string
	Author *string
	ISBN   *string
	Status *models.BookStatus
}

type AuthorInput struct {
	Name        string
	Nationality string
	BirthYear   *int
}

// UserInput is a new member. Status defaults to ACTIVE.
type UserInput struct {
	Name   string
	Email  string
	Status models.UserStatus
}

// CatalogService handles plain CRUD on books, authors and users. The BORROWED
// status belongs to LifecycleManager and cannot be set or cleared here.
type CatalogService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	settings
}

func NewCatalogService(db *sql.DB, repos repomanager.RepositoryManager, opts ...Option) *CatalogService {
	return &CatalogService{db: db, repos: repos, settings: newSettings(opts)}
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func (s *CatalogService) CreateBook(ctx context.Context, in BookInput) (*models.Book, error) {
	in.Title, in.Author, in.ISBN = clean(in.Title), clean(in.Author), clean(in.ISBN)
	for _, f := range []struct{ name, value string }{{"title", in.Title}, {"author", in.Author}, {"isbn", in.ISBN}} {
		if err := required(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if in.Status == "" {
		in.Status = models.BookAvailable
	}
	if err := settableStatus(in.Status); err != nil {
		return nil, err
	}

	id, err := s.ids.New()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	now := s.clock.Now()
	book := &models.Book{
		ID: id, Title: in.Title, Author: in.Author, ISBN: in.ISBN, Status: in.Status,
		CreatedAt: now, UpdatedAt: now,
	}

	if err := s.repos.Books(s.db).Insert(ctx, book); err != nil {
		return nil, classify(ctx, "create book", err)
	}
	s.log.Info(ctx, "book created", "book_id", book.ID, "isbn", book.ISBN)
	return book, nil
}

func settableStatus(st models.BookStatus) error {
	if !st.Valid() {
		return common.NewValidation("status", fmt.Sprintf("unknown book status %q", st))
	}
	if st == models.BookBorrowed {
		return common.NewValidation("status", "BORROWED is set by borrowing the book")
	}
	return nil
}

func (s *CatalogService) GetBook(ctx context.Context, id string) (*models.Book, error) {
	b, err := s.repos.Books(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, classify(ctx, "get book", err)
	}
	return b, nil
}

// UpdateBook applies patch. A BORROWED book keeps its status until returned.
func (s *CatalogService) UpdateBook(ctx context.Context, id string, patch BookPatch) (*models.Book, error) {
	var out *models.Book
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Books(tx)

		book, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		for _, f := range []struct {
			name string
			src  *string
			dst  *string
		}{{"title", patch.Title, &book.Title}, {"author", patch.Author, &book.Author}, {"isbn", patch.ISBN, &book.ISBN}} {
			if f.src == nil {
				continue
			}
			v := clean(*f.src)
			if err := required(f.name, v); err != nil {
				return err
			}
			*f.dst = v
		}

		if patch.Status != nil && *patch.Status != book.Status {
			if err := settableStatus(*patch.Status); err != nil {
				return err
			}
			if book.Status == models.BookBorrowed {
				return common.NewConflict(common.ErrBookBorrowed, "book %s is borrowed; return it first", id)
			}
			book.Status = *patch.Status
		}

		book.UpdatedAt = s.clock.Now()
		if err := repo.Update(ctx, book); err != nil {
			return err
		}
		out = book
		return nil
	})
	if err != nil {
		return nil, classify(ctx, "update book", err)
	}
	s.log.Info(ctx, "book updated", "book_id", id)
	return out, nil
}

// DeleteBook removes a book. Borrowed books cannot be deleted; the book's
// finished borrowings stay on record and keep its id.
func (s *CatalogService) DeleteBook(ctx context.Context, id string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Books(tx)

		book, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if book.Status == models.BookBorrowed {
			return common.NewConflict(common.ErrBookBorrowed, "book %s is borrowed; return it first", id)
		}

		return repo.Delete(ctx, id)
	})
	if err != nil {
		return classify(ctx, "delete book", err)
	}
	s.log.Info(ctx, "book deleted", "book_id", id)
	return nil
}

func (s *CatalogService) BookBorrowings(ctx context.Context, bookID string) ([]models.Borrowing, error) {
	if _, err := s.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	out, err := s.repos.Borrowings(s.db).FindMany(ctx, models.BorrowingFilter{BookID: bookID}, 0, 0)
	if err != nil {
		return nil, classify(ctx, "book borrowings", err)
	}
	return out, nil
}

func (s *CatalogService) CreateAuthor(ctx context.Context, in AuthorInput) (*models.Author, error) {
	in.Name, in.Nationality = clean(in.Name), clean(in.Nationality)
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	if in.BirthYear != nil && (*in.BirthYear < 0 || *in.BirthYear > s.clock.Now().Year()) {
		return nil, common.NewValidation("birthYear", fmt.Sprintf("%d is not a plausible year", *in.BirthYear))
	}

	id, err := s.ids.New()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	a := &models.Author{ID: id, Name: in.Name, Nationality: in.Nationality, BirthYear: in.BirthYear}

	if err := s.repos.Authors(s.db).Insert(ctx, a); err != nil {
		return nil, classify(ctx, "create author", err)
	}
	s.log.Info(ctx, "author created", "author_id", a.ID)
	return a, nil
}

func (s *CatalogService) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	a, err := s.repos.Authors(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, classify(ctx, "get author", err)
	}
	return a, nil
}

func (s *CatalogService) ListAuthors(ctx context.Context, page models.Page) ([]models.Author, int64, error) {
	page = page.Normalize()
	repo := s.repos.Authors(s.db)

	items, err := repo.FindMany(ctx, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, classify(ctx, "list authors", err)
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, 0, classify(ctx, "list authors", err)
	}
	return items, total, nil
}

// AuthorBooks lists books whose author text equals the author's name,
// ignoring case.
func (s *CatalogService) AuthorBooks(ctx context.Context, authorID string) ([]models.Book, error) {
	a, err := s.GetAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	out, err := s.repos.Books(s.db).FindByAuthorName(ctx, a.Name)
	if err != nil {
		return nil, classify(ctx, "author books", err)
	}
	return out, nil
}

func (s *CatalogService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	in.Name = clean(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	if err := required("email", in.Email); err != nil {
		return nil, err
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return nil, common.NewValidation("email", fmt.Sprintf("%q is not a valid address", in.Email))
	}
	if in.Status == "" {
		in.Status = models.UserActive
	}
	if !in.Status.Valid() {
		return nil, common.NewValidation("status", fmt.Sprintf("unknown user status %q", in.Status))
	}

	id, err := s.ids.New()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	u := &models.User{ID: id, Name: in.Name, Email: in.Email, Status: in.Status, MembershipDate: s.clock.Now()}

	if err := s.repos.Users(s.db).Insert(ctx, u); err != nil {
		return nil, classify(ctx, "create user", err)
	}
	s.log.Info(ctx, "user created", "user_id", u.ID)
	return u, nil
}

func (s *CatalogService) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repos.Users(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, classify(ctx, "get user", err)
	}
	return u, nil
}

func (s *CatalogService) ListUsers(ctx context.Context, page models.Page) ([]models.User, int64, error) {
	page = page.Normalize()
	repo := s.repos.Users(s.db)

	items, err := repo.FindMany(ctx, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, classify(ctx, "list users", err)
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, 0, classify(ctx, "list users", err)
	}
	return items, total, nil
}

func (s *CatalogService) UserBorrowings(ctx context.Context, userID string) ([]models.Borrowing, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	out, err := s.repos.Borrowings(s.db).FindMany(ctx, models.BorrowingFilter{UserID: userID}, 0, 0)
	if err != nil {
		return nil, classify(ctx, "user borrowings", err)
	}
	return out, nil
}
