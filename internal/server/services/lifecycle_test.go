package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/repositories/books"
	"github.com/dmitrijs2005/libris/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libris/internal/server/storetest"
)

func TestBeginBorrow_DefaultDueDateAndSecondBorrowConflicts(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, WithClock(fixedClock{now}))
	ctx := context.Background()

	book := f.book(t, "Mort", "isbn-1")
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")

	b, err := f.lifecycle.BeginBorrow(ctx, book.ID, u1.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.BorrowingActive, b.Status)
	assert.Equal(t, now, b.BorrowDate)
	assert.Equal(t, b.BorrowDate.Add(14*24*time.Hour), b.DueDate)
	assert.Nil(t, b.ReturnDate)
	assert.Equal(t, models.BookBorrowed, f.bookStatus(t, book.ID))

	_, err = f.lifecycle.BeginBorrow(ctx, book.ID, u2.ID, nil)
	var cf *common.ConflictError
	require.ErrorAs(t, err, &cf)
	assert.ErrorIs(t, err, common.ErrBookNotAvailable)
	assert.Equal(t, common.CodeConflict, common.Code(err))

	f.requireConsistent(t, book.ID)
}

func TestBeginBorrow_UnknownBook(t *testing.T) {
	f := newFixture(t)
	f.user(t, "user-1")

	_, err := f.lifecycle.BeginBorrow(context.Background(), "book-404", "user-1", nil)

	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, &common.NotFoundError{Entity: "Book", ID: "book-404"}, nf)
}

func TestBeginBorrow_UnknownUserLeavesBookAvailable(t *testing.T) {
	f := newFixture(t)
	book := f.book(t, "Mort", "isbn-1")

	_, err := f.lifecycle.BeginBorrow(context.Background(), book.ID, "nobody", nil)

	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "User", nf.Entity)
	assert.Equal(t, models.BookAvailable, f.bookStatus(t, book.ID))
	f.requireConsistent(t, book.ID)
}

func TestBeginBorrow_InactiveUser(t *testing.T) {
	f := newFixture(t)
	book := f.book(t, "Mort", "isbn-1")
	u, err := f.catalog.CreateUser(context.Background(), UserInput{Name: "s", Email: "s@example.com", Status: models.UserSuspended})
	require.NoError(t, err)

	_, err = f.lifecycle.BeginBorrow(context.Background(), book.ID, u.ID, nil)
	assert.ErrorIs(t, err, common.ErrUserNotActive)
	assert.Equal(t, models.BookAvailable, f.bookStatus(t, book.ID))
}

func TestBeginBorrow_BookNotLendable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book, err := f.catalog.CreateBook(ctx, BookInput{Title: "Eric", Author: "TP", ISBN: "i", Status: models.BookLost})
	require.NoError(t, err)
	u := f.user(t, "u")

	_, err = f.lifecycle.BeginBorrow(ctx, book.ID, u.ID, nil)
	assert.ErrorIs(t, err, common.ErrBookNotAvailable)
}

func TestBeginBorrow_Validation(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, WithClock(fixedClock{now}))
	ctx := context.Background()
	book := f.book(t, "Mort", "isbn-1")
	u := f.user(t, "u")

	tests := []struct {
		name   string
		bookID string
		userID string
		due    *time.Time
		field  string
	}{
		{"no book", "", u.ID, nil, "bookId"},
		{"no user", book.ID, "", nil, "userId"},
		{"due in past", book.ID, u.ID, ptr(now.Add(-time.Hour)), "dueDate"},
		{"due now", book.ID, u.ID, ptr(now), "dueDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.lifecycle.BeginBorrow(ctx, tt.bookID, tt.userID, tt.due)
			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	assert.Equal(t, models.BookAvailable, f.bookStatus(t, book.ID))
}

func TestBeginBorrow_RequestedDueDate(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, WithClock(fixedClock{now}))
	book := f.book(t, "Mort", "isbn-1")
	u := f.user(t, "u")

	due := now.Add(3 * 24 * time.Hour)
	b, err := f.lifecycle.BeginBorrow(context.Background(), book.ID, u.ID, &due)
	require.NoError(t, err)
	assert.True(t, due.Equal(b.DueDate))

	got, err := f.lifecycle.GetBorrowing(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, due.Equal(got.DueDate))
}

func TestBeginBorrow_ConcurrentCallersOneWins(t *testing.T) {
	const n = 8
	// One connection per caller so the transactions really overlap.
	f := newFixtureOn(t, storetest.OpenPool(t, dbx.Pool{MaxOpenConns: n, MaxIdleConns: n}))
	book := f.book(t, "Mort", "isbn-1")

	users := make([]string, n)
	for i := range users {
		users[i] = f.user(t, string(rune('a'+i))).ID
	}

	var (
		wg       sync.WaitGroup
		wins     atomic.Int32
		rejected atomic.Int32
	)
	start := make(chan struct{})
	for _, uid := range users {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			<-start
			_, err := f.lifecycle.BeginBorrow(context.Background(), book.ID, uid, nil)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, common.ErrBookNotAvailable):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(uid)
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, wins.Load())
	assert.EqualValues(t, n-1, rejected.Load())
	f.requireConsistent(t, book.ID)
}

type flakyBooks struct {
	books.Repository
	losses *atomic.Int32
}

func (f flakyBooks) UpdateStatus(ctx context.Context, id string, expected, next models.BookStatus, at time.Time) (bool, error) {
	if f.losses.Add(-1) >= 0 {
		return false, nil
	}
	return f.Repository.UpdateStatus(ctx, id, expected, next, at)
}

type flakyRepos struct {
	*repomanager.SQLRepositoryManager
	losses *atomic.Int32
}

func (r flakyRepos) Books(db dbx.DBTX) books.Repository {
	return flakyBooks{Repository: r.SQLRepositoryManager.Books(db), losses: r.losses}
}

func TestBeginBorrow_LostUpdateRetriedOnce(t *testing.T) {
	f := newFixture(t)
	book := f.book(t, "Mort", "isbn-1")
	u := f.user(t, "u")

	losses := &atomic.Int32{}
	losses.Store(1)
	m := NewLifecycleManager(f.db, flakyRepos{f.repos, losses}, WithRetry(WithBaseDelay(0)))

	b, err := m.BeginBorrow(context.Background(), book.ID, u.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, book.ID, b.BookID)
	f.requireConsistent(t, book.ID)
}

func TestBeginBorrow_LostUpdateTwiceIsNotAvailable(t *testing.T) {
	f := newFixture(t)
	book := f.book(t, "Mort", "isbn-1")
	u := f.user(t, "u")

	losses := &atomic.Int32{}
	losses.Store(2)
	m := NewLifecycleManager(f.db, flakyRepos{f.repos, losses}, WithRetry(WithBaseDelay(0)))

	_, err := m.BeginBorrow(context.Background(), book.ID, u.ID, nil)
	assert.ErrorIs(t, err, common.ErrBookNotAvailable)
	assert.NotErrorIs(t, err, common.ErrConcurrentUpdate)
	assert.Equal(t, models.BookAvailable, f.bookStatus(t, book.ID))
	assert.Equal(t, 0, f.activeCount(t, book.ID))
}

type blockingBooks struct{ books.Repository }

func (blockingBooks) FindByID(ctx context.Context, _ string) (*models.Book, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type blockingRepos struct{ *repomanager.SQLRepositoryManager }

func (r blockingRepos) Books(db dbx.DBTX) books.Repository {
	return blockingBooks{r.SQLRepositoryManager.Books(db)}
}

func TestBeginBorrow_TimeoutIsUnavailable(t *testing.T) {
	f := newFixture(t)
	book := f.book(t, "Mort", "isbn-1")
	u := f.user(t, "u")

	m := NewLifecycleManager(f.db, blockingRepos{f.repos}, WithOpTimeout(50*time.Millisecond))

	_, err := m.BeginBorrow(context.Background(), book.ID, u.ID, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorUnavailable)
	assert.True(t, common.Retryable(err))
	assert.Equal(t, common.CodeUnavailable, common.Code(err))
	assert.NotErrorIs(t, err, common.ErrBookNotAvailable)
	f.requireConsistent(t, book.ID)
}

func TestCompleteReturn_RoundTripAndNotIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.book(t, "Mort", "isbn-1")
	u := f.user(t, "u")

	b, err := f.lifecycle.BeginBorrow(ctx, book.ID, u.ID, nil)
	require.NoError(t, err)

	r, err := f.lifecycle.CompleteReturn(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BorrowingReturned, r.Status)
	require.NotNil(t, r.ReturnDate)
	assert.False(t, r.ReturnDate.Before(r.BorrowDate))
	assert.Equal(t, models.BookAvailable, f.bookStatus(t, book.ID))

	stored, err := f.lifecycle.GetBorrowing(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BorrowingReturned, stored.Status)
	require.NotNil(t, stored.ReturnDate)

	_, err = f.lifecycle.CompleteReturn(ctx, b.ID)
	assert.ErrorIs(t, err, common.ErrBorrowingNotActive)
	f.requireConsistent(t, book.ID)

	// The book can be lent again.
	_, err = f.lifecycle.BeginBorrow(ctx, book.ID, u.ID, nil)
	require.NoError(t, err)
	f.requireConsistent(t, book.ID)
}

func TestCompleteReturn_UnknownBorrowing(t *testing.T) {
	f := newFixture(t)

	_, err := f.lifecycle.CompleteReturn(context.Background(), "b-404")
	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Borrowing", nf.Entity)

	_, err = f.lifecycle.CompleteReturn(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestCompleteReturn_BookOutOfSyncRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.book(t, "Mort", "isbn-1")
	u := f.user(t, "u")

	b, err := f.lifecycle.BeginBorrow(ctx, book.ID, u.ID, nil)
	require.NoError(t, err)

	_, err = f.db.Exec(`UPDATE books SET status = 'MAINTENANCE' WHERE id = ?`, book.ID)
	require.NoError(t, err)

	_, err = f.lifecycle.CompleteReturn(ctx, b.ID)
	assert.ErrorIs(t, err, common.ErrReconciliationRequired)

	stored, err := f.lifecycle.GetBorrowing(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BorrowingActive, stored.Status)
	assert.Nil(t, stored.ReturnDate)
}

func TestListBooks_WitchScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i, title := range []string{"Witches Abroad", "Mort", "The Wee Free Men", "Wyrd Sisters", "The WITCH of Lancre", "Lords and Ladies: a witch tale"} {
		f.book(t, title, string(rune('a'+i)))
	}
	for i := 0; i < 12; i++ {
		f.book(t, "Witch "+string(rune('A'+i)), "w"+string(rune('a'+i)))
	}

	page, err := f.lifecycle.ListBooks(ctx, models.BookFilter{Title: "witch"}, models.ParseSort("title:asc"), models.Page{Number: 1, Limit: 10})
	require.NoError(t, err)

	assert.EqualValues(t, 15, page.TotalCount)
	require.Len(t, page.Items, 10)
	assert.True(t, page.HasNext())
	assert.Equal(t, 2, page.TotalPages())

	for i, b := range page.Items {
		assert.Contains(t, strings.ToLower(b.Title), "witch")
		if i > 0 {
			assert.LessOrEqual(t, page.Items[i-1].Title, b.Title)
		}
	}
	assert.Equal(t, "Lords and Ladies: a witch tale", page.Items[0].Title)

	second, err := f.lifecycle.ListBooks(ctx, models.BookFilter{Title: "witch"}, models.ParseSort("title:asc"), models.Page{Number: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)
	assert.EqualValues(t, 15, second.TotalCount)
	assert.False(t, second.HasNext())
}

func TestListBooks_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.lifecycle.ListBooks(ctx, models.BookFilter{}, models.Sort{Field: "password"}, models.Page{})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sortBy", ve.Field)

	_, err = f.lifecycle.ListBooks(ctx, models.BookFilter{Status: "GONE"}, models.Sort{}, models.Page{})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)

	page, err := f.lifecycle.ListBooks(ctx, models.BookFilter{}, models.Sort{}, models.Page{Number: -1, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, models.Page{Number: 1, Limit: models.MaxLimit}, page.Page)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages())
}

func TestListBooks_PageFarPastTheEnd(t *testing.T) {
	f := newFixture(t)
	f.book(t, "Mort", "isbn-1")

	page, err := f.lifecycle.ListBooks(context.Background(), models.BookFilter{}, models.Sort{}, models.Page{Number: math.MaxInt64, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 1, page.TotalCount)
	assert.False(t, page.HasNext())
}

func TestListBorrowings_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1, b2 := f.book(t, "Mort", "1"), f.book(t, "Eric", "2")
	u := f.user(t, "u")

	first, err := f.lifecycle.BeginBorrow(ctx, b1.ID, u.ID, nil)
	require.NoError(t, err)
	_, err = f.lifecycle.CompleteReturn(ctx, first.ID)
	require.NoError(t, err)
	_, err = f.lifecycle.BeginBorrow(ctx, b2.ID, u.ID, nil)
	require.NoError(t, err)

	items, total, err := f.lifecycle.ListBorrowings(ctx, models.BorrowingFilter{UserID: u.ID}, models.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	items, total, err = f.lifecycle.ListBorrowings(ctx, models.BorrowingFilter{Status: models.BorrowingActive}, models.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, b2.ID, items[0].BookID)

	_, _, err = f.lifecycle.ListBorrowings(ctx, models.BorrowingFilter{Status: models.BorrowingOverdue}, models.Page{})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func ptr[T any](v T) *T { return &v }
