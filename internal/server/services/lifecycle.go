package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/repositories/books"
	"github.com/dmitrijs2005/libris/internal/server/repositories/repomanager"
)

// LifecycleManager owns the borrowing state machine. A book is BORROWED
// exactly while one ACTIVE borrowing references it; BeginBorrow and
// CompleteReturn move both records together in one transaction.
type LifecycleManager struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	settings
}

func NewLifecycleManager(db *sql.DB, repos repomanager.RepositoryManager, opts ...Option) *LifecycleManager {
	return &LifecycleManager{db: db, repos: repos, settings: newSettings(opts)}
}

// BeginBorrow lends an AVAILABLE book to an ACTIVE user. The due date
// defaults to the loan period after now. A lost race on the book's status is
// retried; when retries run out the caller gets a BookNotAvailable conflict.
func (m *LifecycleManager) BeginBorrow(ctx context.Context, bookID, userID string, dueDate *time.Time) (*models.Borrowing, error) {
	if err := required("bookId", bookID); err != nil {
		return nil, err
	}
	if err := required("userId", userID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.opTimeout)
	defer cancel()

	var out *models.Borrowing
	err := RetryWithBackoff(ctx, func(ctx context.Context) error {
		b, err := m.beginBorrow(ctx, bookID, userID, dueDate)
		out = b
		return err
	}, m.retry...)
	if errors.Is(err, common.ErrConcurrentUpdate) {
		err = common.NewConflict(common.ErrBookNotAvailable, "book %s is not available", bookID)
	}
	if err != nil {
		err = classify(ctx, "begin borrow", err)
		m.logFailure(ctx, "borrow rejected", err, "book_id", bookID, "user_id", userID)
		return nil, err
	}

	m.log.Info(ctx, "borrow started", "borrowing_id", out.ID, "book_id", bookID, "user_id", userID, "due_date", out.DueDate)
	return out, nil
}

func (m *LifecycleManager) beginBorrow(ctx context.Context, bookID, userID string, requested *time.Time) (*models.Borrowing, error) {
	now := m.clock.Now()

	due := now.Add(m.loanPeriod)
	if requested != nil {
		if !requested.After(now) {
			return nil, common.NewValidation("dueDate", "must be after the borrow date")
		}
		due = requested.UTC().Truncate(time.Microsecond)
	}

	id, err := m.ids.New()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	borrowing := &models.Borrowing{
		ID:         id,
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: now,
		DueDate:    due,
		Status:     models.BorrowingActive,
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		bookRepo := m.repos.Books(tx)

		book, err := bookRepo.FindByID(ctx, bookID)
		if err != nil {
			return err
		}
		if book.Status != models.BookAvailable {
			return common.NewConflict(common.ErrBookNotAvailable, "book %s is not available (status %s)", bookID, book.Status)
		}

		user, err := m.repos.Users(tx).FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Status != models.UserActive {
			return common.NewConflict(common.ErrUserNotActive, "user %s is %s", userID, user.Status)
		}

		ok, err := bookRepo.UpdateStatus(ctx, bookID, models.BookAvailable, models.BookBorrowed, now)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrConcurrentUpdate
		}

		if err := m.repos.Borrowings(tx).Insert(ctx, borrowing); err != nil {
			if errors.Is(err, common.ErrorDuplicate) {
				return common.ErrConcurrentUpdate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return borrowing, nil
}

// CompleteReturn closes an ACTIVE borrowing and makes its book AVAILABLE.
// Returning twice fails with BorrowingNotActive. If the book is not BORROWED
// nothing changes and the caller gets a reconciliation conflict.
func (m *LifecycleManager) CompleteReturn(ctx context.Context, borrowingID string) (*models.Borrowing, error) {
	if err := required("borrowingId", borrowingID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.opTimeout)
	defer cancel()

	now := m.clock.Now()

	var out *models.Borrowing
	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.repos.Borrowings(tx)

		b, err := repo.FindByID(ctx, borrowingID)
		if err != nil {
			return err
		}
		if b.Status != models.BorrowingActive {
			return common.NewConflict(common.ErrBorrowingNotActive, "borrowing %s is not active (status %s)", borrowingID, b.Status)
		}

		ok, err := repo.UpdateStatus(ctx, borrowingID, models.BorrowingActive, models.BorrowingReturned, now)
		if err != nil {
			return err
		}
		if !ok {
			return common.NewConflict(common.ErrBorrowingNotActive, "borrowing %s is not active", borrowingID)
		}

		ok, err = m.repos.Books(tx).UpdateStatus(ctx, b.BookID, models.BookBorrowed, models.BookAvailable, now)
		if err != nil {
			return err
		}
		if !ok {
			return common.NewConflict(common.ErrReconciliationRequired,
				"book %s of borrowing %s is not BORROWED; reconciliation required", b.BookID, borrowingID)
		}

		b.Status = models.BorrowingReturned
		b.ReturnDate = &now
		out = b
		return nil
	})
	if err != nil {
		err = classify(ctx, "complete return", err)
		m.logFailure(ctx, "return rejected", err, "borrowing_id", borrowingID)
		return nil, err
	}

	m.log.Info(ctx, "borrowing returned", "borrowing_id", out.ID, "book_id", out.BookID)
	return out, nil
}

// ListBooks returns one page of books and the total number of matches.
func (m *LifecycleManager) ListBooks(ctx context.Context, filter models.BookFilter, sort models.Sort, page models.Page) (*models.BookPage, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, common.NewValidation("status", fmt.Sprintf("unknown book status %q", filter.Status))
	}
	if sort.Field != "" {
		if _, ok := books.SortColumn(sort.Field); !ok {
			return nil, common.NewValidation("sortBy", fmt.Sprintf("cannot sort by %q", sort.Field))
		}
	}
	page = page.Normalize()

	ctx, cancel := context.WithTimeout(ctx, m.opTimeout)
	defer cancel()

	repo := m.repos.Books(m.db)

	items, err := repo.FindMany(ctx, filter, sort, page.Offset(), page.Limit)
	if err != nil {
		return nil, classify(ctx, "list books", err)
	}
	total, err := repo.Count(ctx, filter)
	if err != nil {
		return nil, classify(ctx, "list books", err)
	}

	return &models.BookPage{Items: items, TotalCount: total, Page: page}, nil
}

func (m *LifecycleManager) GetBorrowing(ctx context.Context, id string) (*models.Borrowing, error) {
	if err := required("id", id); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.opTimeout)
	defer cancel()

	b, err := m.repos.Borrowings(m.db).FindByID(ctx, id)
	if err != nil {
		return nil, classify(ctx, "get borrowing", err)
	}
	return b, nil
}

// ListBorrowings lists borrowings newest first. OVERDUE is derived and cannot
// be filtered on; callers filter ACTIVE and check EffectiveStatus.
func (m *LifecycleManager) ListBorrowings(ctx context.Context, filter models.BorrowingFilter, page models.Page) ([]models.Borrowing, int64, error) {
	if filter.Status != "" && (!filter.Status.Valid() || filter.Status == models.BorrowingOverdue) {
		return nil, 0, common.NewValidation("status", fmt.Sprintf("cannot filter by status %q", filter.Status))
	}
	page = page.Normalize()

	ctx, cancel := context.WithTimeout(ctx, m.opTimeout)
	defer cancel()

	repo := m.repos.Borrowings(m.db)

	items, err := repo.FindMany(ctx, filter, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, classify(ctx, "list borrowings", err)
	}
	total, err := repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, classify(ctx, "list borrowings", err)
	}
	return items, total, nil
}

// Now is the manager's clock, shared with transports that derive OVERDUE.
func (m *LifecycleManager) Now() time.Time {
	return m.clock.Now()
}

func (m *LifecycleManager) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err, "code", common.Code(err))
	switch common.Code(err) {
	case common.CodeUnavailable, common.CodeInternal:
		m.log.Error(ctx, msg, args...)
	default:
		m.log.Warn(ctx, msg, args...)
	}
}
