package proto

import "time"

// Messages of library.LibraryService. Field names on the wire are the json
// tags; see library.proto.

type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Author struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality,omitempty"`
	BirthYear   *int   `json:"birthYear,omitempty"`
}

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Status         string    `json:"status"`
	MembershipDate time.Time `json:"membershipDate"`
}

type Borrowing struct {
	ID              string     `json:"id"`
	BookID          string     `json:"bookId"`
	UserID          string     `json:"userId"`
	BorrowDate      time.Time  `json:"borrowDate"`
	DueDate         time.Time  `json:"dueDate"`
	ReturnDate      *time.Time `json:"returnDate,omitempty"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effectiveStatus"`
}

type GetBooksRequest struct {
	TitleFilter  string `json:"titleFilter,omitempty"`
	AuthorFilter string `json:"authorFilter,omitempty"`
	StatusFilter string `json:"statusFilter,omitempty"`
	SortBy       string `json:"sortBy,omitempty"`
	Page         int    `json:"page,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

type GetBooksResponse struct {
	Books       []Book `json:"books"`
	TotalCount  int64  `json:"totalCount"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
	TotalPages  int    `json:"totalPages"`
	HasNextPage bool   `json:"hasNextPage"`
}

type GetBookRequest struct {
	ID string `json:"id"`
}

type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
	Status string `json:"status,omitempty"`
}

type DeleteBookRequest struct {
	ID string `json:"id"`
}

type DeleteBookResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type GetAuthorsRequest struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

type GetAuthorsResponse struct {
	Authors    []Author `json:"authors"`
	TotalCount int64    `json:"totalCount"`
}

type GetAuthorRequest struct {
	ID string `json:"id"`
}

type CreateAuthorRequest struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality,omitempty"`
	BirthYear   *int   `json:"birthYear,omitempty"`
}

type GetUsersRequest struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

type GetUsersResponse struct {
	Users      []User `json:"users"`
	TotalCount int64  `json:"totalCount"`
}

type CreateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status,omitempty"`
}

// CreateBorrowingRequest.DueDate is RFC 3339; empty means the server's loan
// period.
type CreateBorrowingRequest struct {
	BookID  string `json:"bookId"`
	UserID  string `json:"userId"`
	DueDate string `json:"dueDate,omitempty"`
}

type ReturnBookRequest struct {
	BorrowingID string `json:"borrowingId"`
}

type GetBorrowingRequest struct {
	ID string `json:"id"`
}
