package graphql

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libris/internal/server/services"
	"github.com/dmitrijs2005/libris/internal/server/storetest"
)

func newTestEngine(t *testing.T, l services.Lifecycle, c services.Catalog) *gin.Engine {
	t.Helper()
	schema, err := NewSchema(l, c)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(schema, logging.Discard()).Register(r)
	return r
}

func newStoreEngine(t *testing.T) *gin.Engine {
	t.Helper()
	db := storetest.Open(t)
	repos := repomanager.NewSQLRepositoryManager(dbx.SQLite)
	return newTestEngine(t, services.NewLifecycleManager(db, repos), services.NewCatalogService(db, repos))
}

type result struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func exec(t *testing.T, r http.Handler, query string, vars map[string]any) result {
	t.Helper()
	b, err := stdjson.Marshal(map[string]any{"query": query, "variables": vars})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out result
	require.NoError(t, stdjson.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func field(m map[string]any, path ...string) any {
	var cur any = m
	for _, p := range path {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = mm[p]
	}
	return cur
}

const addBook = `mutation($in: BookInput!) { addBook(input: $in) { id _id status } }`

func mustAddBook(t *testing.T, r http.Handler, title, author string) string {
	t.Helper()
	res := exec(t, r, addBook, map[string]any{"in": map[string]any{"title": title, "author": author, "isbn": "isbn-" + title}})
	require.Empty(t, res.Errors)
	id, _ := field(res.Data, "addBook", "id").(string)
	require.NotEmpty(t, id)
	assert.Equal(t, id, field(res.Data, "addBook", "_id"))
	return id
}

func mustAddUser(t *testing.T, r http.Handler, email string) string {
	t.Helper()
	res := exec(t, r, `mutation($in: UserInput!) { addUser(input: $in) { id status } }`,
		map[string]any{"in": map[string]any{"name": "Reader", "email": email}})
	require.Empty(t, res.Errors)
	assert.Equal(t, "ACTIVE", field(res.Data, "addUser", "status"))
	return field(res.Data, "addUser", "id").(string)
}

func TestBorrowAndReturn(t *testing.T) {
	r := newStoreEngine(t)
	bookID := mustAddBook(t, r, "Mort", "Terry Pratchett")
	userID := mustAddUser(t, r, "reader@example.com")

	const borrow = `mutation($b: ID!, $u: ID!) {
		createBorrowing(bookId: $b, userId: $u) { id status effectiveStatus returnDate book { status } user { email } }
	}`
	res := exec(t, r, borrow, map[string]any{"b": bookID, "u": userID})
	require.Empty(t, res.Errors)
	assert.Equal(t, "ACTIVE", field(res.Data, "createBorrowing", "status"))
	assert.Equal(t, "ACTIVE", field(res.Data, "createBorrowing", "effectiveStatus"))
	assert.Nil(t, field(res.Data, "createBorrowing", "returnDate"))
	assert.Equal(t, "BORROWED", field(res.Data, "createBorrowing", "book", "status"))
	assert.Equal(t, "reader@example.com", field(res.Data, "createBorrowing", "user", "email"))
	borrowingID := field(res.Data, "createBorrowing", "id").(string)

	again := exec(t, r, borrow, map[string]any{"b": bookID, "u": userID})
	require.Len(t, again.Errors, 1)
	assert.Equal(t, common.CodeConflict, again.Errors[0].Extensions["code"])
	assert.Nil(t, again.Data)

	ret := exec(t, r, `mutation($id: ID!) { returnBook(borrowingId: $id) { status returnDate book { status } } }`,
		map[string]any{"id": borrowingID})
	require.Empty(t, ret.Errors)
	assert.Equal(t, "RETURNED", field(ret.Data, "returnBook", "status"))
	assert.NotNil(t, field(ret.Data, "returnBook", "returnDate"))
	assert.Equal(t, "AVAILABLE", field(ret.Data, "returnBook", "book", "status"))

	hist := exec(t, r, `query($id: ID!) { book(id: $id) { borrowings { id status } } }`, map[string]any{"id": bookID})
	require.Empty(t, hist.Errors)
	assert.Len(t, field(hist.Data, "book", "borrowings"), 1)
}

func TestDeletedBookKeepsLoanHistory(t *testing.T) {
	r := newStoreEngine(t)
	bookID := mustAddBook(t, r, "Mort", "Terry Pratchett")
	userID := mustAddUser(t, r, "reader@example.com")

	res := exec(t, r, `mutation($b: ID!, $u: ID!) { createBorrowing(bookId: $b, userId: $u) { id } }`,
		map[string]any{"b": bookID, "u": userID})
	require.Empty(t, res.Errors)
	borrowingID := field(res.Data, "createBorrowing", "id").(string)

	ret := exec(t, r, `mutation($id: ID!) { returnBook(borrowingId: $id) { id } }`, map[string]any{"id": borrowingID})
	require.Empty(t, ret.Errors)
	del := exec(t, r, `mutation($id: ID!) { deleteBook(id: $id) }`, map[string]any{"id": bookID})
	require.Empty(t, del.Errors)

	got := exec(t, r, `query($id: ID!) { borrowing(id: $id) { status bookId book { id } user { email } } }`,
		map[string]any{"id": borrowingID})
	require.Empty(t, got.Errors)
	assert.Equal(t, "RETURNED", field(got.Data, "borrowing", "status"))
	assert.Equal(t, bookID, field(got.Data, "borrowing", "bookId"))
	assert.Nil(t, field(got.Data, "borrowing", "book"))
	assert.Equal(t, "reader@example.com", field(got.Data, "borrowing", "user", "email"))
}

func TestSingleLookupNotFoundIsNull(t *testing.T) {
	r := newStoreEngine(t)

	for _, q := range []string{
		`{ book(id: "missing") { id } }`,
		`{ author(id: "missing") { id } }`,
		`{ user(id: "missing") { id } }`,
		`{ borrowing(id: "missing") { id } }`,
	} {
		res := exec(t, r, q, nil)
		assert.Empty(t, res.Errors, q)
		for _, v := range res.Data {
			assert.Nil(t, v, q)
		}
	}
}

func TestMutationNotFoundIsError(t *testing.T) {
	r := newStoreEngine(t)

	res := exec(t, r, `mutation { deleteBook(id: "missing") }`, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, common.CodeNotFound, res.Errors[0].Extensions["code"])
}

func TestValidationCarriesField(t *testing.T) {
	r := newStoreEngine(t)

	res := exec(t, r, addBook, map[string]any{"in": map[string]any{"title": " ", "author": "A", "isbn": "1"}})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, common.CodeValidation, res.Errors[0].Extensions["code"])
	assert.Equal(t, "title", res.Errors[0].Extensions["field"])
}

func TestBooksPaging(t *testing.T) {
	r := newStoreEngine(t)
	for i := 0; i < 12; i++ {
		mustAddBook(t, r, fmt.Sprintf("Discworld %02d", i), "Terry Pratchett")
	}
	mustAddBook(t, r, "Neverwhere", "Neil Gaiman")

	const q = `query($page: Int) {
		books(author: "pratchett", sortBy: "title", sortOrder: DESC, page: $page, limit: 10) {
			books { title } totalCount hasNextPage page totalPages
		}
	}`
	res := exec(t, r, q, map[string]any{"page": 1})
	require.Empty(t, res.Errors)
	assert.EqualValues(t, 12, field(res.Data, "books", "totalCount"))
	assert.Equal(t, true, field(res.Data, "books", "hasNextPage"))
	assert.EqualValues(t, 2, field(res.Data, "books", "totalPages"))
	list := field(res.Data, "books", "books").([]any)
	require.Len(t, list, 10)
	assert.Equal(t, "Discworld 11", field(list[0].(map[string]any), "title"))

	res = exec(t, r, q, map[string]any{"page": 2})
	require.Empty(t, res.Errors)
	assert.Equal(t, false, field(res.Data, "books", "hasNextPage"))
	assert.Len(t, field(res.Data, "books", "books"), 2)
}

func TestBooksRejectsUnknownSort(t *testing.T) {
	r := newStoreEngine(t)

	res := exec(t, r, `{ books(sortBy: "password") { totalCount } }`, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, common.CodeValidation, res.Errors[0].Extensions["code"])
}

func TestAuthorsAndBooks(t *testing.T) {
	r := newStoreEngine(t)
	mustAddBook(t, r, "Good Omens", "Neil Gaiman")

	res := exec(t, r, `mutation { addAuthor(input: {name: "Neil Gaiman", nationality: "British", birthYear: 1960}) { id birthYear } }`, nil)
	require.Empty(t, res.Errors)
	assert.EqualValues(t, 1960, field(res.Data, "addAuthor", "birthYear"))
	id := field(res.Data, "addAuthor", "id").(string)

	res = exec(t, r, `query($id: ID!) { author(id: $id) { name books { title } } }`, map[string]any{"id": id})
	require.Empty(t, res.Errors)
	assert.Len(t, field(res.Data, "author", "books"), 1)

	res = exec(t, r, `{ authors { name } }`, nil)
	require.Empty(t, res.Errors)
	assert.Len(t, res.Data["authors"], 1)
}

type unavailableLifecycle struct{ services.Lifecycle }

func (unavailableLifecycle) CompleteReturn(context.Context, string) (*models.Borrowing, error) {
	return nil, common.NewUnavailable("complete return", context.DeadlineExceeded)
}

func TestUnavailableIsRetryable(t *testing.T) {
	r := newTestEngine(t, unavailableLifecycle{}, nil)

	res := exec(t, r, `mutation { returnBook(borrowingId: "b1") { id } }`, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, common.CodeUnavailable, res.Errors[0].Extensions["code"])
	assert.Equal(t, true, res.Errors[0].Extensions["retryable"])
}

func TestHandlerRequests(t *testing.T) {
	r := newStoreEngine(t)

	t.Run("get", func(t *testing.T) {
		q := url.Values{"query": {`query($id: ID!) { book(id: $id) { id } }`}, "variables": {`{"id":"x"}`}}
		req := httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"book":null}}`, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{"variables":{}}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), common.CodeValidation)
	})

	t.Run("syntax error", func(t *testing.T) {
		res := exec(t, r, `{ books {`, nil)
		assert.NotEmpty(t, res.Errors)
	})
}
