// Package grpcclient is a typed client for library.LibraryService.
package grpcclient

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	pb "github.com/dmitrijs2005/libris/internal/proto"
	"github.com/dmitrijs2005/libris/internal/shared"
)

type Client struct {
	conn *grpc.ClientConn
	rpc  pb.LibraryServiceClient
}

// New connects to addr without TLS. Extra options are appended, so tests
// can pass a custom dialer.
func New(addr string, opts ...grpc.DialOption) (*Client, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(requestIDInterceptor),
	}
	conn, err := grpc.NewClient(addr, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, rpc: pb.NewLibraryServiceClient(conn)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// requestIDInterceptor tags each call with a fresh x-request-id unless the
// caller set one.
func requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	md, _ := metadata.FromOutgoingContext(ctx)
	if len(md.Get(shared.RequestIDHeader)) == 0 {
		ctx = metadata.AppendToOutgoingContext(ctx, shared.RequestIDHeader, uuid.NewString())
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *Client) ListBooks(ctx context.Context, q BookQuery) (*BookPage, error) {
	page, err := c.rpc.GetBooks(ctx, &pb.GetBooksRequest{
		TitleFilter:  q.Title,
		AuthorFilter: q.Author,
		StatusFilter: q.Status,
		SortBy:       q.SortBy,
		Page:         q.Page,
		Limit:        q.Limit,
	})
	return page, mapError(err)
}

func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	b, err := c.rpc.GetBook(ctx, &pb.GetBookRequest{ID: id})
	return b, mapError(err)
}

func (c *Client) CreateBook(ctx context.Context, title, author, isbn string) (*Book, error) {
	b, err := c.rpc.CreateBook(ctx, &pb.CreateBookRequest{Title: title, Author: author, ISBN: isbn})
	return b, mapError(err)
}

func (c *Client) DeleteBook(ctx context.Context, id string) error {
	_, err := c.rpc.DeleteBook(ctx, &pb.DeleteBookRequest{ID: id})
	return mapError(err)
}

func (c *Client) ListAuthors(ctx context.Context, page, limit int) ([]Author, error) {
	res, err := c.rpc.GetAuthors(ctx, &pb.GetAuthorsRequest{Page: page, Limit: limit})
	if err != nil {
		return nil, mapError(err)
	}
	return res.Authors, nil
}

func (c *Client) GetAuthor(ctx context.Context, id string) (*Author, error) {
	a, err := c.rpc.GetAuthor(ctx, &pb.GetAuthorRequest{ID: id})
	return a, mapError(err)
}

func (c *Client) CreateAuthor(ctx context.Context, name, nationality string, birthYear *int) (*Author, error) {
	a, err := c.rpc.CreateAuthor(ctx, &pb.CreateAuthorRequest{Name: name, Nationality: nationality, BirthYear: birthYear})
	return a, mapError(err)
}

func (c *Client) ListUsers(ctx context.Context, page, limit int) ([]User, error) {
	res, err := c.rpc.GetUsers(ctx, &pb.GetUsersRequest{Page: page, Limit: limit})
	if err != nil {
		return nil, mapError(err)
	}
	return res.Users, nil
}

func (c *Client) CreateUser(ctx context.Context, name, email string) (*User, error) {
	u, err := c.rpc.CreateUser(ctx, &pb.CreateUserRequest{Name: name, Email: email})
	return u, mapError(err)
}

// Borrow starts a loan. A nil due date lets the server apply its loan period.
func (c *Client) Borrow(ctx context.Context, bookID, userID string, due *time.Time) (*Borrowing, error) {
	in := &pb.CreateBorrowingRequest{BookID: bookID, UserID: userID}
	if due != nil {
		in.DueDate = due.UTC().Format(time.RFC3339)
	}
	b, err := c.rpc.CreateBorrowing(ctx, in)
	return b, mapError(err)
}

func (c *Client) Return(ctx context.Context, borrowingID string) (*Borrowing, error) {
	b, err := c.rpc.ReturnBook(ctx, &pb.ReturnBookRequest{BorrowingID: borrowingID})
	return b, mapError(err)
}

func (c *Client) GetBorrowing(ctx context.Context, id string) (*Borrowing, error) {
	b, err := c.rpc.GetBorrowing(ctx, &pb.GetBorrowingRequest{ID: id})
	return b, mapError(err)
}
