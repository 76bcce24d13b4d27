package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/server/models"
)

type MismatchKind string

const (
	// A BORROWED book with no ACTIVE borrowing.
	BorrowedWithoutActive MismatchKind = "BORROWED_WITHOUT_ACTIVE"
	// An ACTIVE borrowing whose book is not BORROWED, or no longer exists.
	ActiveOnUnborrowedBook MismatchKind = "ACTIVE_ON_UNBORROWED_BOOK"
	// More than one ACTIVE borrowing for one book.
	MultipleActive MismatchKind = "MULTIPLE_ACTIVE"
)

// Mismatch is one book whose status disagrees with its active borrowings.
type Mismatch struct {
	Kind         MismatchKind      `json:"kind"`
	BookID       string            `json:"bookId"`
	BookStatus   models.BookStatus `json:"bookStatus,omitempty"`
	BorrowingIDs []string          `json:"borrowingIds"`
}

// Err reports the mismatch as a conflict that needs manual resolution.
func (m Mismatch) Err() *common.ConflictError {
	return common.NewConflict(common.ErrReconciliationRequired,
		"%s: book %s has status %q and active borrowings [%s]",
		m.Kind, m.BookID, m.BookStatus, strings.Join(m.BorrowingIDs, ", "))
}

type ReconcileReport struct {
	CheckedAt        time.Time  `json:"checkedAt"`
	BooksScanned     int        `json:"booksScanned"`
	ActiveBorrowings int        `json:"activeBorrowings"`
	Mismatches       []Mismatch `json:"mismatches"`
}

func (r *ReconcileReport) Conflicts() []error {
	out := make([]error, 0, len(r.Mismatches))
	for _, m := range r.Mismatches {
		out = append(out, m.Err())
	}
	return out
}

// Reconcile scans every book and every ACTIVE borrowing and reports each
// book that breaks the BORROWED iff one ACTIVE borrowing rule. It reads only;
// nothing is repaired.
func (m *LifecycleManager) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{CheckedAt: m.clock.Now(), Mismatches: []Mismatch{}}

	var (
		all    []models.Book
		active []models.Borrowing
	)
	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		all, err = m.repos.Books(tx).FindMany(ctx, models.BookFilter{}, models.Sort{Field: "createdAt"}, 0, 0)
		if err != nil {
			return err
		}
		active, err = m.repos.Borrowings(tx).FindMany(ctx, models.BorrowingFilter{Status: models.BorrowingActive}, 0, 0)
		return err
	})
	if err != nil {
		return nil, classify(ctx, "reconcile", err)
	}

	byBook := make(map[string][]string, len(active))
	for _, b := range active {
		byBook[b.BookID] = append(byBook[b.BookID], b.ID)
	}

	seen := make(map[string]bool, len(all))
	for _, book := range all {
		seen[book.ID] = true
		ids := byBook[book.ID]

		var kind MismatchKind
		switch {
		case len(ids) > 1:
			kind = MultipleActive
		case len(ids) == 0 && book.Status == models.BookBorrowed:
			kind = BorrowedWithoutActive
		case len(ids) == 1 && book.Status != models.BookBorrowed:
			kind = ActiveOnUnborrowedBook
		default:
			continue
		}
		report.Mismatches = append(report.Mismatches, Mismatch{
			Kind: kind, BookID: book.ID, BookStatus: book.Status, BorrowingIDs: nonNil(ids),
		})
	}

	// Borrowings pointing at missing books, in borrowing order.
	for _, b := range active {
		if seen[b.BookID] {
			continue
		}
		seen[b.BookID] = true
		report.Mismatches = append(report.Mismatches, Mismatch{
			Kind: ActiveOnUnborrowedBook, BookID: b.BookID, BorrowingIDs: byBook[b.BookID],
		})
	}

	report.BooksScanned = len(all)
	report.ActiveBorrowings = len(active)

	for i, err := range report.Conflicts() {
		mm := report.Mismatches[i]
		m.log.Warn(ctx, "reconciliation mismatch", "kind", mm.Kind, "book_id", mm.BookID,
			"borrowing_ids", mm.BorrowingIDs, "error", err)
	}
	m.log.Info(ctx, "reconciliation finished", "books", report.BooksScanned,
		"active_borrowings", report.ActiveBorrowings, "mismatches", len(report.Mismatches))

	return report, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
