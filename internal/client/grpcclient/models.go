package grpcclient

import pb "github.com/dmitrijs2005/libris/internal/proto"

// The client hands out the service's own messages.
type (
	Book      = pb.Book
	BookPage  = pb.GetBooksResponse
	Author    = pb.Author
	User      = pb.User
	Borrowing = pb.Borrowing
)

// BookQuery filters GetBooks. SortBy is "field" or "field:desc".
type BookQuery struct {
	Title  string
	Author string
	Status string
	SortBy string
	Page   int
	Limit  int
}
