// Package graphql serves the library over a single GraphQL endpoint. It is a
// thin layer over services.Lifecycle and services.Catalog; errors carry the
// taxonomy code in their extensions.
package graphql

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/services"
)

type resolver struct {
	lifecycle services.Lifecycle
	catalog   services.Catalog
}

func enum(name string, values ...string) *graphql.Enum {
	m := graphql.EnumValueConfigMap{}
	for _, v := range values {
		m[v] = &graphql.EnumValueConfig{Value: v}
	}
	return graphql.NewEnum(graphql.EnumConfig{Name: name, Values: m})
}

var (
	bookStatusEnum = enum("BookStatus",
		string(models.BookAvailable), string(models.BookBorrowed),
		string(models.BookLost), string(models.BookMaintenance))
	userStatusEnum = enum("UserStatus",
		string(models.UserActive), string(models.UserSuspended), string(models.UserBlocked))
	borrowingStatusEnum = enum("BorrowingStatus",
		string(models.BorrowingActive), string(models.BorrowingReturned), string(models.BorrowingOverdue))
	sortOrderEnum = enum("SortOrder", "ASC", "DESC")
)

func nonNull(t graphql.Output) graphql.Output { return graphql.NewNonNull(t) }

func idArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}}
}

func pageArgs(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: models.DefaultPage},
		"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: models.DefaultLimit},
	}
	for k, v := range extra {
		args[k] = v
	}
	return args
}

func pageFrom(args map[string]any) models.Page {
	return models.Page{Number: num(args, "page"), Limit: num(args, "limit")}
}

// NewSchema builds the executable schema.
func NewSchema(l services.Lifecycle, c services.Catalog) (graphql.Schema, error) {
	r := &resolver{lifecycle: l, catalog: c}

	var bookType, authorType, userType, borrowingType *graphql.Object

	bookType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Book",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":        {Type: nonNull(graphql.ID)},
				"_id":       {Type: nonNull(graphql.ID)},
				"title":     {Type: nonNull(graphql.String)},
				"author":    {Type: nonNull(graphql.String)},
				"isbn":      {Type: nonNull(graphql.String)},
				"status":    {Type: nonNull(bookStatusEnum)},
				"createdAt": {Type: graphql.DateTime},
				"updatedAt": {Type: graphql.DateTime},
				"borrowings": {
					Type:    graphql.NewList(nonNull(borrowingType)),
					Resolve: r.bookBorrowings,
				},
			}
		}),
	})

	authorType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Author",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          {Type: nonNull(graphql.ID)},
				"_id":         {Type: nonNull(graphql.ID)},
				"name":        {Type: nonNull(graphql.String)},
				"nationality": {Type: graphql.String},
				"birthYear":   {Type: graphql.Int},
				"books": {
					Type:    graphql.NewList(nonNull(bookType)),
					Resolve: r.authorBooks,
				},
			}
		}),
	})

	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":             {Type: nonNull(graphql.ID)},
				"_id":            {Type: nonNull(graphql.ID)},
				"name":           {Type: nonNull(graphql.String)},
				"email":          {Type: nonNull(graphql.String)},
				"status":         {Type: nonNull(userStatusEnum)},
				"membershipDate": {Type: graphql.DateTime},
				"borrowings": {
					Type:    graphql.NewList(nonNull(borrowingType)),
					Resolve: r.userBorrowings,
				},
			}
		}),
	})

	borrowingType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Borrowing",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":              {Type: nonNull(graphql.ID)},
				"_id":             {Type: nonNull(graphql.ID)},
				"bookId":          {Type: nonNull(graphql.ID)},
				"userId":          {Type: nonNull(graphql.ID)},
				"borrowDate":      {Type: nonNull(graphql.DateTime)},
				"dueDate":         {Type: nonNull(graphql.DateTime)},
				"returnDate":      {Type: graphql.DateTime},
				"status":          {Type: nonNull(borrowingStatusEnum)},
				"effectiveStatus": {Type: nonNull(borrowingStatusEnum)},
				"book":            {Type: bookType, Resolve: r.borrowingBook},
				"user":            {Type: userType, Resolve: r.borrowingUser},
			}
		}),
	})

	paginatedBooks := graphql.NewObject(graphql.ObjectConfig{
		Name: "PaginatedBooks",
		Fields: graphql.Fields{
			"books":       {Type: nonNull(graphql.NewList(nonNull(bookType)))},
			"totalCount":  {Type: nonNull(graphql.Int)},
			"hasNextPage": {Type: nonNull(graphql.Boolean)},
			"page":        {Type: nonNull(graphql.Int)},
			"totalPages":  {Type: nonNull(graphql.Int)},
		},
	})

	bookInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BookInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":  {Type: graphql.NewNonNull(graphql.String)},
			"author": {Type: graphql.NewNonNull(graphql.String)},
			"isbn":   {Type: graphql.NewNonNull(graphql.String)},
			"status": {Type: bookStatusEnum},
		},
	})

	bookUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BookUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":  {Type: graphql.String},
			"author": {Type: graphql.String},
			"isbn":   {Type: graphql.String},
			"status": {Type: bookStatusEnum},
		},
	})

	authorInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AuthorInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        {Type: graphql.NewNonNull(graphql.String)},
			"nationality": {Type: graphql.String},
			"birthYear":   {Type: graphql.Int},
		},
	})

	userInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":   {Type: graphql.NewNonNull(graphql.String)},
			"email":  {Type: graphql.NewNonNull(graphql.String)},
			"status": {Type: userStatusEnum},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"books": {
				Type: nonNull(paginatedBooks),
				Args: pageArgs(graphql.FieldConfigArgument{
					"title":     {Type: graphql.String},
					"author":    {Type: graphql.String},
					"status":    {Type: bookStatusEnum},
					"sortBy":    {Type: graphql.String},
					"sortOrder": {Type: sortOrderEnum},
				}),
				Resolve: r.books,
			},
			"book": {Type: bookType, Args: idArg(), Resolve: r.book},
			"authors": {
				Type:    nonNull(graphql.NewList(nonNull(authorType))),
				Args:    pageArgs(nil),
				Resolve: r.authors,
			},
			"author": {Type: authorType, Args: idArg(), Resolve: r.author},
			"users": {
				Type:    nonNull(graphql.NewList(nonNull(userType))),
				Args:    pageArgs(nil),
				Resolve: r.users,
			},
			"user": {Type: userType, Args: idArg(), Resolve: r.user},
			"borrowings": {
				Type: nonNull(graphql.NewList(nonNull(borrowingType))),
				Args: pageArgs(graphql.FieldConfigArgument{
					"bookId": {Type: graphql.ID},
					"userId": {Type: graphql.ID},
					"status": {Type: borrowingStatusEnum},
				}),
				Resolve: r.borrowings,
			},
			"borrowing": {Type: borrowingType, Args: idArg(), Resolve: r.borrowing},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addBook": {
				Type:    nonNull(bookType),
				Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(bookInput)}},
				Resolve: r.addBook,
			},
			"updateBook": {
				Type: nonNull(bookType),
				Args: graphql.FieldConfigArgument{
					"id":    {Type: graphql.NewNonNull(graphql.ID)},
					"input": {Type: graphql.NewNonNull(bookUpdateInput)},
				},
				Resolve: r.updateBook,
			},
			"deleteBook": {
				Type:    nonNull(graphql.Boolean),
				Args:    idArg(),
				Resolve: r.deleteBook,
			},
			"addAuthor": {
				Type:    nonNull(authorType),
				Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(authorInput)}},
				Resolve: r.addAuthor,
			},
			"addUser": {
				Type:    nonNull(userType),
				Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(userInput)}},
				Resolve: r.addUser,
			},
			"createBorrowing": {
				Type: nonNull(borrowingType),
				Args: graphql.FieldConfigArgument{
					"bookId":  {Type: graphql.NewNonNull(graphql.ID)},
					"userId":  {Type: graphql.NewNonNull(graphql.ID)},
					"dueDate": {Type: graphql.DateTime},
				},
				Resolve: r.createBorrowing,
			},
			"returnBook": {
				Type:    nonNull(borrowingType),
				Args:    graphql.FieldConfigArgument{"borrowingId": {Type: graphql.NewNonNull(graphql.ID)}},
				Resolve: r.returnBook,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("build schema: %w", err)
	}
	return schema, nil
}

func (r *resolver) now() time.Time { return r.lifecycle.Now() }
