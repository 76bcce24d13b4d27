package models

import "time"

type BorrowingStatus string

const (
	BorrowingActive   BorrowingStatus = "ACTIVE"
	BorrowingReturned BorrowingStatus = "RETURNED"
	// BorrowingOverdue is never stored; see Borrowing.EffectiveStatus.
	BorrowingOverdue BorrowingStatus = "OVERDUE"
)

func (s BorrowingStatus) Valid() bool {
	switch s {
	case BorrowingActive, BorrowingReturned, BorrowingOverdue:
		return true
	}
	return false
}

// DefaultLoanPeriod is added to the borrow date when no due date is given.
const DefaultLoanPeriod = 14 * 24 * time.Hour

// Borrowing links a book to a user for one loan. ReturnDate is set exactly
// when Status is RETURNED.
type Borrowing struct {
	ID         string          `db:"id" json:"id"`
	BookID     string          `db:"book_id" json:"bookId"`
	UserID     string          `db:"user_id" json:"userId"`
	BorrowDate time.Time       `db:"borrow_date" json:"borrowDate"`
	DueDate    time.Time       `db:"due_date" json:"dueDate"`
	ReturnDate *time.Time      `db:"return_date" json:"returnDate,omitempty"`
	Status     BorrowingStatus `db:"status" json:"status"`
}

// EffectiveStatus is Status with OVERDUE derived for active loans past due.
func (b *Borrowing) EffectiveStatus(now time.Time) BorrowingStatus {
	if b.Status == BorrowingActive && now.After(b.DueDate) {
		return BorrowingOverdue
	}
	return b.Status
}
