package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBorrowing_EffectiveStatus(t *testing.T) {
	due := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	returned := due.Add(48 * time.Hour)

	tests := []struct {
		name string
		b    Borrowing
		now  time.Time
		want BorrowingStatus
	}{
		{"active before due", Borrowing{Status: BorrowingActive, DueDate: due}, due.Add(-time.Hour), BorrowingActive},
		{"active past due", Borrowing{Status: BorrowingActive, DueDate: due}, due.Add(time.Hour), BorrowingOverdue},
		{"returned late stays returned", Borrowing{Status: BorrowingReturned, DueDate: due, ReturnDate: &returned}, returned, BorrowingReturned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.b.EffectiveStatus(tt.now))
		})
	}
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, Sort{Field: "title", Desc: true}, ParseSort("title:desc"))
	assert.Equal(t, Sort{Field: "title"}, ParseSort("title:asc"))
	assert.Equal(t, Sort{Field: "createdAt"}, ParseSort("createdAt"))
	assert.Equal(t, Sort{}, ParseSort(""))
}

func TestPage(t *testing.T) {
	p := Page{}.Normalize()
	assert.Equal(t, Page{Number: 1, Limit: 10}, p)
	assert.Equal(t, 0, p.Offset())

	p = Page{Number: 3, Limit: 500}.Normalize()
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestPage_HugeNumberDoesNotOverflow(t *testing.T) {
	p := Page{Number: math.MaxInt64, Limit: MaxLimit}.Normalize()
	assert.Equal(t, MaxPage, p.Number)
	assert.Positive(t, p.Offset())

	page := BookPage{TotalCount: 1, Page: p}
	assert.False(t, page.HasNext())
}

func TestBookPage(t *testing.T) {
	page := BookPage{Items: make([]Book, 10), TotalCount: 25, Page: Page{Number: 2, Limit: 10}}
	assert.Equal(t, 3, page.TotalPages())
	assert.True(t, page.HasNext())

	last := BookPage{Items: make([]Book, 5), TotalCount: 25, Page: Page{Number: 3, Limit: 10}}
	assert.False(t, last.HasNext())

	empty := BookPage{Page: Page{Number: 1, Limit: 10}}
	assert.Equal(t, 1, empty.TotalPages())
	assert.False(t, empty.HasNext())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, BookLost.Valid())
	assert.False(t, BookStatus("GONE").Valid())
	assert.True(t, UserBlocked.Valid())
	assert.False(t, UserStatus("").Valid())
	assert.True(t, BorrowingOverdue.Valid())
}
