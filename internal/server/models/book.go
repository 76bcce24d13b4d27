// Package models holds the library's domain types as stored and returned by
// the repositories.
package models

import "time"

type BookStatus string

const (
	BookAvailable   BookStatus = "AVAILABLE"
	BookBorrowed    BookStatus = "BORROWED"
	BookLost        BookStatus = "LOST"
	BookMaintenance BookStatus = "MAINTENANCE"
)

func (s BookStatus) Valid() bool {
	switch s {
	case BookAvailable, BookBorrowed, BookLost, BookMaintenance:
		return true
	}
	return false
}

// Book is a catalog entry. Author is free text and matches Author.Name.
//
// Status is BORROWED exactly when one ACTIVE borrowing references the book.
type Book struct {
	ID        string     `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Author    string     `db:"author" json:"author"`
	ISBN      string     `db:"isbn" json:"isbn"`
	Status    BookStatus `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}
