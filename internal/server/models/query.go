package models

import (
	"math"
	"strings"
)

// BookFilter narrows a book listing. Title and Author match as
// case-insensitive substrings; Status matches exactly. Zero values match all.
type BookFilter struct {
	Title  string
	Author string
	Status BookStatus
}

// BorrowingFilter narrows a borrowing listing. Zero values match all.
type BorrowingFilter struct {
	BookID string
	UserID string
	Status BorrowingStatus
}

// Sort orders a listing by one field.
type Sort struct {
	Field string
	Desc  bool
}

// ParseSort reads the "field:dir" form used by every transport. Anything but
// "desc" sorts ascending.
func ParseSort(s string) Sort {
	field, dir, _ := strings.Cut(strings.TrimSpace(s), ":")
	return Sort{Field: field, Desc: strings.EqualFold(dir, "desc")}
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (Number-1)*Limit inside a 32-bit int.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Page is a 1-indexed page request.
type Page struct {
	Number int
	Limit  int
}

// Normalize fills defaults and clamps the page number and limit. A page past
// MaxPage is always empty, so clamping it changes no result.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = DefaultPage
	}
	if p.Number > MaxPage {
		p.Number = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// BookPage is one page of a book listing with the unpaginated total.
type BookPage struct {
	Items      []Book
	TotalCount int64
	Page       Page
}

// TotalPages is at least 1 so an empty listing still has a first page.
func (p BookPage) TotalPages() int {
	if p.Page.Limit <= 0 || p.TotalCount == 0 {
		return 1
	}
	return int((p.TotalCount + int64(p.Page.Limit) - 1) / int64(p.Page.Limit))
}

func (p BookPage) HasNext() bool {
	return int64(p.Page.Offset()+len(p.Items)) < p.TotalCount
}
