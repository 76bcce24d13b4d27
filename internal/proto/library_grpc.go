// Package proto defines library.LibraryService: its messages, the server
// interface with registration helpers, and a client.
//
// Every message travels as a google.protobuf.Struct holding the message's
// JSON form (see shared.ToStruct), so any protobuf client can call the
// service with nothing but the well-known types.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dmitrijs2005/libris/internal/shared"
)

// LibraryServiceServer is the server API for library.LibraryService.
type LibraryServiceServer interface {
	GetBooks(context.Context, *GetBooksRequest) (*GetBooksResponse, error)
	GetBook(context.Context, *GetBookRequest) (*Book, error)
	CreateBook(context.Context, *CreateBookRequest) (*Book, error)
	DeleteBook(context.Context, *DeleteBookRequest) (*DeleteBookResponse, error)
	GetAuthors(context.Context, *GetAuthorsRequest) (*GetAuthorsResponse, error)
	GetAuthor(context.Context, *GetAuthorRequest) (*Author, error)
	CreateAuthor(context.Context, *CreateAuthorRequest) (*Author, error)
	GetUsers(context.Context, *GetUsersRequest) (*GetUsersResponse, error)
	CreateUser(context.Context, *CreateUserRequest) (*User, error)
	CreateBorrowing(context.Context, *CreateBorrowingRequest) (*Borrowing, error)
	ReturnBook(context.Context, *ReturnBookRequest) (*Borrowing, error)
	GetBorrowing(context.Context, *GetBorrowingRequest) (*Borrowing, error)
	mustEmbedUnimplementedLibraryServiceServer()
}

// UnimplementedLibraryServiceServer must be embedded by implementations.
type UnimplementedLibraryServiceServer struct{}

func unimplemented(name string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", name)
}

func (UnimplementedLibraryServiceServer) GetBooks(context.Context, *GetBooksRequest) (*GetBooksResponse, error) {
	return nil, unimplemented(shared.MethodGetBooks)
}
func (UnimplementedLibraryServiceServer) GetBook(context.Context, *GetBookRequest) (*Book, error) {
	return nil, unimplemented(shared.MethodGetBook)
}
func (UnimplementedLibraryServiceServer) CreateBook(context.Context, *CreateBookRequest) (*Book, error) {
	return nil, unimplemented(shared.MethodCreateBook)
}
func (UnimplementedLibraryServiceServer) DeleteBook(context.Context, *DeleteBookRequest) (*DeleteBookResponse, error) {
	return nil, unimplemented(shared.MethodDeleteBook)
}
func (UnimplementedLibraryServiceServer) GetAuthors(context.Context, *GetAuthorsRequest) (*GetAuthorsResponse, error) {
	return nil, unimplemented(shared.MethodGetAuthors)
}
func (UnimplementedLibraryServiceServer) GetAuthor(context.Context, *GetAuthorRequest) (*Author, error) {
	return nil, unimplemented(shared.MethodGetAuthor)
}
func (UnimplementedLibraryServiceServer) CreateAuthor(context.Context, *CreateAuthorRequest) (*Author, error) {
	return nil, unimplemented(shared.MethodCreateAuthor)
}
func (UnimplementedLibraryServiceServer) GetUsers(context.Context, *GetUsersRequest) (*GetUsersResponse, error) {
	return nil, unimplemented(shared.MethodGetUsers)
}
func (UnimplementedLibraryServiceServer) CreateUser(context.Context, *CreateUserRequest) (*User, error) {
	return nil, unimplemented(shared.MethodCreateUser)
}
func (UnimplementedLibraryServiceServer) CreateBorrowing(context.Context, *CreateBorrowingRequest) (*Borrowing, error) {
	return nil, unimplemented(shared.MethodCreateBorrowing)
}
func (UnimplementedLibraryServiceServer) ReturnBook(context.Context, *ReturnBookRequest) (*Borrowing, error) {
	return nil, unimplemented(shared.MethodReturnBook)
}
func (UnimplementedLibraryServiceServer) GetBorrowing(context.Context, *GetBorrowingRequest) (*Borrowing, error) {
	return nil, unimplemented(shared.MethodGetBorrowing)
}
func (UnimplementedLibraryServiceServer) mustEmbedUnimplementedLibraryServiceServer() {}

// unaryHandler decodes the Struct payload into Req, runs the interceptor
// chain on the typed request and encodes the typed response.
func unaryHandler[Req, Resp any](name string, call func(LibraryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			raw := new(structpb.Struct)
			if err := dec(raw); err != nil {
				return nil, err
			}
			in := new(Req)
			if err := shared.FromStruct(raw, in); err != nil {
				return nil, status.Error(codes.InvalidArgument, err.Error())
			}

			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LibraryServiceServer), ctx, req.(*Req))
			}
			var (
				out any
				err error
			)
			if interceptor == nil {
				out, err = handler(ctx, in)
			} else {
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: shared.FullMethod(name)}
				out, err = interceptor(ctx, in, info, handler)
			}
			if err != nil {
				return nil, err
			}

			resp, err := shared.ToStruct(out)
			if err != nil {
				return nil, status.Error(codes.Internal, err.Error())
			}
			return resp, nil
		},
	}
}

// LibraryService_ServiceDesc is the grpc.ServiceDesc for library.LibraryService.
var LibraryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: shared.ServiceName,
	HandlerType: (*LibraryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(shared.MethodGetBooks, LibraryServiceServer.GetBooks),
		unaryHandler(shared.MethodGetBook, LibraryServiceServer.GetBook),
		unaryHandler(shared.MethodCreateBook, LibraryServiceServer.CreateBook),
		unaryHandler(shared.MethodDeleteBook, LibraryServiceServer.DeleteBook),
		unaryHandler(shared.MethodGetAuthors, LibraryServiceServer.GetAuthors),
		unaryHandler(shared.MethodGetAuthor, LibraryServiceServer.GetAuthor),
		unaryHandler(shared.MethodCreateAuthor, LibraryServiceServer.CreateAuthor),
		unaryHandler(shared.MethodGetUsers, LibraryServiceServer.GetUsers),
		unaryHandler(shared.MethodCreateUser, LibraryServiceServer.CreateUser),
		unaryHandler(shared.MethodCreateBorrowing, LibraryServiceServer.CreateBorrowing),
		unaryHandler(shared.MethodReturnBook, LibraryServiceServer.ReturnBook),
		unaryHandler(shared.MethodGetBorrowing, LibraryServiceServer.GetBorrowing),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "library.proto",
}

func RegisterLibraryServiceServer(s grpc.ServiceRegistrar, srv LibraryServiceServer) {
	s.RegisterService(&LibraryService_ServiceDesc, srv)
}

// LibraryServiceClient is the client API for library.LibraryService.
type LibraryServiceClient interface {
	GetBooks(ctx context.Context, in *GetBooksRequest, opts ...grpc.CallOption) (*GetBooksResponse, error)
	GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*Book, error)
	CreateBook(ctx context.Context, in *CreateBookRequest, opts ...grpc.CallOption) (*Book, error)
	DeleteBook(ctx context.Context, in *DeleteBookRequest, opts ...grpc.CallOption) (*DeleteBookResponse, error)
	GetAuthors(ctx context.Context, in *GetAuthorsRequest, opts ...grpc.CallOption) (*GetAuthorsResponse, error)
	GetAuthor(ctx context.Context, in *GetAuthorRequest, opts ...grpc.CallOption) (*Author, error)
	CreateAuthor(ctx context.Context, in *CreateAuthorRequest, opts ...grpc.CallOption) (*Author, error)
	GetUsers(ctx context.Context, in *GetUsersRequest, opts ...grpc.CallOption) (*GetUsersResponse, error)
	CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*User, error)
	CreateBorrowing(ctx context.Context, in *CreateBorrowingRequest, opts ...grpc.CallOption) (*Borrowing, error)
	ReturnBook(ctx context.Context, in *ReturnBookRequest, opts ...grpc.CallOption) (*Borrowing, error)
	GetBorrowing(ctx context.Context, in *GetBorrowingRequest, opts ...grpc.CallOption) (*Borrowing, error)
}

type libraryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLibraryServiceClient(cc grpc.ClientConnInterface) LibraryServiceClient {
	return &libraryServiceClient{cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	req, err := shared.ToStruct(in)
	if err != nil {
		return nil, err
	}
	raw := new(structpb.Struct)
	if err := cc.Invoke(ctx, shared.FullMethod(name), req, raw, opts...); err != nil {
		return nil, err
	}
	out := new(Resp)
	if err := shared.FromStruct(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *libraryServiceClient) GetBooks(ctx context.Context, in *GetBooksRequest, opts ...grpc.CallOption) (*GetBooksResponse, error) {
	return invoke[GetBooksRequest, GetBooksResponse](ctx, c.cc, shared.MethodGetBooks, in, opts)
}

func (c *libraryServiceClient) GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*Book, error) {
	return invoke[GetBookRequest, Book](ctx, c.cc, shared.MethodGetBook, in, opts)
}

func (c *libraryServiceClient) CreateBook(ctx context.Context, in *CreateBookRequest, opts ...grpc.CallOption) (*Book, error) {
	return invoke[CreateBookRequest, Book](ctx, c.cc, shared.MethodCreateBook, in, opts)
}

func (c *libraryServiceClient) DeleteBook(ctx context.Context, in *DeleteBookRequest, opts ...grpc.CallOption) (*DeleteBookResponse, error) {
	return invoke[DeleteBookRequest, DeleteBookResponse](ctx, c.cc, shared.MethodDeleteBook, in, opts)
}

func (c *libraryServiceClient) GetAuthors(ctx context.Context, in *GetAuthorsRequest, opts ...grpc.CallOption) (*GetAuthorsResponse, error) {
	return invoke[GetAuthorsRequest, GetAuthorsResponse](ctx, c.cc, shared.MethodGetAuthors, in, opts)
}

func (c *libraryServiceClient) GetAuthor(ctx context.Context, in *GetAuthorRequest, opts ...grpc.CallOption) (*Author, error) {
	return invoke[GetAuthorRequest, Author](ctx, c.cc, shared.MethodGetAuthor, in, opts)
}

func (c *libraryServiceClient) CreateAuthor(ctx context.Context, in *CreateAuthorRequest, opts ...grpc.CallOption) (*Author, error) {
	return invoke[CreateAuthorRequest, Author](ctx, c.cc, shared.MethodCreateAuthor, in, opts)
}

func (c *libraryServiceClient) GetUsers(ctx context.Context, in *GetUsersRequest, opts ...grpc.CallOption) (*GetUsersResponse, error) {
	return invoke[GetUsersRequest, GetUsersResponse](ctx, c.cc, shared.MethodGetUsers, in, opts)
}

func (c *libraryServiceClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[CreateUserRequest, User](ctx, c.cc, shared.MethodCreateUser, in, opts)
}

func (c *libraryServiceClient) CreateBorrowing(ctx context.Context, in *CreateBorrowingRequest, opts ...grpc.CallOption) (*Borrowing, error) {
	return invoke[CreateBorrowingRequest, Borrowing](ctx, c.cc, shared.MethodCreateBorrowing, in, opts)
}

func (c *libraryServiceClient) ReturnBook(ctx context.Context, in *ReturnBookRequest, opts ...grpc.CallOption) (*Borrowing, error) {
	return invoke[ReturnBookRequest, Borrowing](ctx, c.cc, shared.MethodReturnBook, in, opts)
}

func (c *libraryServiceClient) GetBorrowing(ctx context.Context, in *GetBorrowingRequest, opts ...grpc.CallOption) (*Borrowing, error) {
	return invoke[GetBorrowingRequest, Borrowing](ctx, c.cc, shared.MethodGetBorrowing, in, opts)
}
