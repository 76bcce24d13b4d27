package graphql

import (
	"strings"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/services"
)

func (r *resolver) books(p graphql.ResolveParams) (any, error) {
	filter := models.BookFilter{
		Title:  str(p.Args, "title"),
		Author: str(p.Args, "author"),
		Status: models.BookStatus(str(p.Args, "status")),
	}
	sort := models.ParseSort(str(p.Args, "sortBy"))
	if order := str(p.Args, "sortOrder"); order != "" {
		sort.Desc = strings.EqualFold(order, "DESC")
	}

	res, err := r.lifecycle.ListBooks(p.Context, filter, sort, pageFrom(p.Args))
	if err != nil {
		return nil, wrap(err)
	}
	return map[string]any{
		"books":       booksList(res.Items),
		"totalCount":  int(res.TotalCount),
		"hasNextPage": res.HasNext(),
		"page":        res.Page.Number,
		"totalPages":  res.TotalPages(),
	}, nil
}

func (r *resolver) book(p graphql.ResolveParams) (any, error) {
	b, err := r.catalog.GetBook(p.Context, str(p.Args, "id"))
	if err != nil {
		return lookup(nil, err)
	}
	return bookMap(b), nil
}

func (r *resolver) authors(p graphql.ResolveParams) (any, error) {
	list, _, err := r.catalog.ListAuthors(p.Context, pageFrom(p.Args))
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]any, 0, len(list))
	for i := range list {
		out = append(out, authorMap(&list[i]))
	}
	return out, nil
}

func (r *resolver) author(p graphql.ResolveParams) (any, error) {
	a, err := r.catalog.GetAuthor(p.Context, str(p.Args, "id"))
	if err != nil {
		return lookup(nil, err)
	}
	return authorMap(a), nil
}

func (r *resolver) users(p graphql.ResolveParams) (any, error) {
	list, _, err := r.catalog.ListUsers(p.Context, pageFrom(p.Args))
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]any, 0, len(list))
	for i := range list {
		out = append(out, userMap(&list[i]))
	}
	return out, nil
}

func (r *resolver) user(p graphql.ResolveParams) (any, error) {
	u, err := r.catalog.GetUser(p.Context, str(p.Args, "id"))
	if err != nil {
		return lookup(nil, err)
	}
	return userMap(u), nil
}

func (r *resolver) borrowings(p graphql.ResolveParams) (any, error) {
	filter := models.BorrowingFilter{
		BookID: str(p.Args, "bookId"),
		UserID: str(p.Args, "userId"),
		Status: models.BorrowingStatus(str(p.Args, "status")),
	}
	list, _, err := r.lifecycle.ListBorrowings(p.Context, filter, pageFrom(p.Args))
	if err != nil {
		return nil, wrap(err)
	}
	return borrowingsList(list, r.now()), nil
}

func (r *resolver) borrowing(p graphql.ResolveParams) (any, error) {
	b, err := r.lifecycle.GetBorrowing(p.Context, str(p.Args, "id"))
	if err != nil {
		return lookup(nil, err)
	}
	return borrowingMap(b, r.now()), nil
}

// Nested fields.

func (r *resolver) bookBorrowings(p graphql.ResolveParams) (any, error) {
	list, err := r.catalog.BookBorrowings(p.Context, sourceID(p.Source, "id"))
	if err != nil {
		return nil, wrap(err)
	}
	return borrowingsList(list, r.now()), nil
}

func (r *resolver) userBorrowings(p graphql.ResolveParams) (any, error) {
	list, err := r.catalog.UserBorrowings(p.Context, sourceID(p.Source, "id"))
	if err != nil {
		return nil, wrap(err)
	}
	return borrowingsList(list, r.now()), nil
}

func (r *resolver) authorBooks(p graphql.ResolveParams) (any, error) {
	list, err := r.catalog.AuthorBooks(p.Context, sourceID(p.Source, "id"))
	if err != nil {
		return nil, wrap(err)
	}
	return booksList(list), nil
}

func (r *resolver) borrowingBook(p graphql.ResolveParams) (any, error) {
	b, err := r.catalog.GetBook(p.Context, sourceID(p.Source, "bookId"))
	if err != nil {
		return lookup(nil, err)
	}
	return bookMap(b), nil
}

func (r *resolver) borrowingUser(p graphql.ResolveParams) (any, error) {
	u, err := r.catalog.GetUser(p.Context, sourceID(p.Source, "userId"))
	if err != nil {
		return lookup(nil, err)
	}
	return userMap(u), nil
}

// Mutations.

func input(p graphql.ResolveParams) map[string]any {
	in, _ := p.Args["input"].(map[string]any)
	return in
}

func (r *resolver) addBook(p graphql.ResolveParams) (any, error) {
	in := input(p)
	b, err := r.catalog.CreateBook(p.Context, services.BookInput{
		Title:  str(in, "title"),
		Author: str(in, "author"),
		ISBN:   str(in, "isbn"),
		Status: models.BookStatus(str(in, "status")),
	})
	if err != nil {
		return nil, wrap(err)
	}
	return bookMap(b), nil
}

func (r *resolver) updateBook(p graphql.ResolveParams) (any, error) {
	in := input(p)
	patch := services.BookPatch{
		Title:  optStr(in, "title"),
		Author: optStr(in, "author"),
		ISBN:   optStr(in, "isbn"),
	}
	if s := optStr(in, "status"); s != nil {
		st := models.BookStatus(*s)
		patch.Status = &st
	}
	b, err := r.catalog.UpdateBook(p.Context, str(p.Args, "id"), patch)
	if err != nil {
		return nil, wrap(err)
	}
	return bookMap(b), nil
}

func (r *resolver) deleteBook(p graphql.ResolveParams) (any, error) {
	if err := r.catalog.DeleteBook(p.Context, str(p.Args, "id")); err != nil {
		return nil, wrap(err)
	}
	return true, nil
}

func (r *resolver) addAuthor(p graphql.ResolveParams) (any, error) {
	in := input(p)
	ai := services.AuthorInput{
		Name:        str(in, "name"),
		Nationality: str(in, "nationality"),
	}
	if y, ok := in["birthYear"].(int); ok {
		ai.BirthYear = &y
	}
	a, err := r.catalog.CreateAuthor(p.Context, ai)
	if err != nil {
		return nil, wrap(err)
	}
	return authorMap(a), nil
}

func (r *resolver) addUser(p graphql.ResolveParams) (any, error) {
	in := input(p)
	u, err := r.catalog.CreateUser(p.Context, services.UserInput{
		Name:   str(in, "name"),
		Email:  str(in, "email"),
		Status: models.UserStatus(str(in, "status")),
	})
	if err != nil {
		return nil, wrap(err)
	}
	return userMap(u), nil
}

func (r *resolver) createBorrowing(p graphql.ResolveParams) (any, error) {
	var due *time.Time
	if t, ok := p.Args["dueDate"].(time.Time); ok {
		due = &t
	}
	b, err := r.lifecycle.BeginBorrow(p.Context, str(p.Args, "bookId"), str(p.Args, "userId"), due)
	if err != nil {
		return nil, wrap(err)
	}
	return borrowingMap(b, r.now()), nil
}

func (r *resolver) returnBook(p graphql.ResolveParams) (any, error) {
	b, err := r.lifecycle.CompleteReturn(p.Context, str(p.Args, "borrowingId"))
	if err != nil {
		return nil, wrap(err)
	}
	return borrowingMap(b, r.now()), nil
}
