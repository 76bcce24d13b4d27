package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/libris/internal/common"
	pb "github.com/dmitrijs2005/libris/internal/proto"
	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/services"
)

func toBook(b models.Book) pb.Book {
	return pb.Book{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toAuthor(a models.Author) pb.Author {
	return pb.Author{ID: a.ID, Name: a.Name, Nationality: a.Nationality, BirthYear: a.BirthYear}
}

func toUser(u models.User) pb.User {
	return pb.User{ID: u.ID, Name: u.Name, Email: u.Email, Status: string(u.Status), MembershipDate: u.MembershipDate}
}

// toBorrowing adds the OVERDUE status derived at the lifecycle's clock.
func (s *GRPCServer) toBorrowing(b *models.Borrowing) *pb.Borrowing {
	return &pb.Borrowing{
		ID:              b.ID,
		BookID:          b.BookID,
		UserID:          b.UserID,
		BorrowDate:      b.BorrowDate,
		DueDate:         b.DueDate,
		ReturnDate:      b.ReturnDate,
		Status:          string(b.Status),
		EffectiveStatus: string(b.EffectiveStatus(s.lifecycle.Now())),
	}
}

func (s *GRPCServer) GetBooks(ctx context.Context, in *pb.GetBooksRequest) (*pb.GetBooksResponse, error) {
	filter := models.BookFilter{
		Title:  in.TitleFilter,
		Author: in.AuthorFilter,
		Status: models.BookStatus(strings.ToUpper(in.StatusFilter)),
	}
	page := models.Page{Number: in.Page, Limit: in.Limit}

	res, err := s.lifecycle.ListBooks(ctx, filter, models.ParseSort(in.SortBy), page)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	books := make([]pb.Book, 0, len(res.Items))
	for _, b := range res.Items {
		books = append(books, toBook(b))
	}
	return &pb.GetBooksResponse{
		Books:       books,
		TotalCount:  res.TotalCount,
		Page:        res.Page.Number,
		Limit:       res.Page.Limit,
		TotalPages:  res.TotalPages(),
		HasNextPage: res.HasNext(),
	}, nil
}

func (s *GRPCServer) GetBook(ctx context.Context, in *pb.GetBookRequest) (*pb.Book, error) {
	b, err := s.catalog.GetBook(ctx, in.ID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	out := toBook(*b)
	return &out, nil
}

func (s *GRPCServer) CreateBook(ctx context.Context, in *pb.CreateBookRequest) (*pb.Book, error) {
	b, err := s.catalog.CreateBook(ctx, services.BookInput{
		Title:  in.Title,
		Author: in.Author,
		ISBN:   in.ISBN,
		Status: models.BookStatus(strings.ToUpper(in.Status)),
	})
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	out := toBook(*b)
	return &out, nil
}

func (s *GRPCServer) DeleteBook(ctx context.Context, in *pb.DeleteBookRequest) (*pb.DeleteBookResponse, error) {
	if err := s.catalog.DeleteBook(ctx, in.ID); err != nil {
		return nil, s.fail(ctx, err)
	}
	return &pb.DeleteBookResponse{ID: in.ID, Deleted: true}, nil
}

func (s *GRPCServer) GetAuthors(ctx context.Context, in *pb.GetAuthorsRequest) (*pb.GetAuthorsResponse, error) {
	list, total, err := s.catalog.ListAuthors(ctx, models.Page{Number: in.Page, Limit: in.Limit})
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	authors := make([]pb.Author, 0, len(list))
	for _, a := range list {
		authors = append(authors, toAuthor(a))
	}
	return &pb.GetAuthorsResponse{Authors: authors, TotalCount: total}, nil
}

func (s *GRPCServer) GetAuthor(ctx context.Context, in *pb.GetAuthorRequest) (*pb.Author, error) {
	a, err := s.catalog.GetAuthor(ctx, in.ID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	out := toAuthor(*a)
	return &out, nil
}

func (s *GRPCServer) CreateAuthor(ctx context.Context, in *pb.CreateAuthorRequest) (*pb.Author, error) {
	a, err := s.catalog.CreateAuthor(ctx, services.AuthorInput{
		Name:        in.Name,
		Nationality: in.Nationality,
		BirthYear:   in.BirthYear,
	})
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	out := toAuthor(*a)
	return &out, nil
}

func (s *GRPCServer) GetUsers(ctx context.Context, in *pb.GetUsersRequest) (*pb.GetUsersResponse, error) {
	list, total, err := s.catalog.ListUsers(ctx, models.Page{Number: in.Page, Limit: in.Limit})
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	users := make([]pb.User, 0, len(list))
	for _, u := range list {
		users = append(users, toUser(u))
	}
	return &pb.GetUsersResponse{Users: users, TotalCount: total}, nil
}

func (s *GRPCServer) CreateUser(ctx context.Context, in *pb.CreateUserRequest) (*pb.User, error) {
	u, err := s.catalog.CreateUser(ctx, services.UserInput{
		Name:   in.Name,
		Email:  in.Email,
		Status: models.UserStatus(strings.ToUpper(in.Status)),
	})
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	out := toUser(*u)
	return &out, nil
}

func (s *GRPCServer) CreateBorrowing(ctx context.Context, in *pb.CreateBorrowingRequest) (*pb.Borrowing, error) {
	var due *time.Time
	if in.DueDate != "" {
		t, err := time.Parse(time.RFC3339, in.DueDate)
		if err != nil {
			return nil, s.fail(ctx, common.NewValidation("dueDate", "must be an RFC 3339 timestamp"))
		}
		due = &t
	}

	b, err := s.lifecycle.BeginBorrow(ctx, in.BookID, in.UserID, due)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return s.toBorrowing(b), nil
}

func (s *GRPCServer) ReturnBook(ctx context.Context, in *pb.ReturnBookRequest) (*pb.Borrowing, error) {
	b, err := s.lifecycle.CompleteReturn(ctx, in.BorrowingID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return s.toBorrowing(b), nil
}

func (s *GRPCServer) GetBorrowing(ctx context.Context, in *pb.GetBorrowingRequest) (*pb.Borrowing, error) {
	b, err := s.lifecycle.GetBorrowing(ctx, in.ID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return s.toBorrowing(b), nil
}
