package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/libris/internal/server/models"
)

const apiBase = "/api"

type Link struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

type Links map[string]Link

func get(format string, args ...any) Link {
	return Link{Href: fmt.Sprintf(apiBase+format, args...)}
}

func post(format string, args ...any) Link {
	return Link{Href: fmt.Sprintf(apiBase+format, args...), Method: "POST"}
}

type bookResource struct {
	models.Book
	Links Links `json:"_links"`
}

func bookLinks(b *models.Book) Links {
	l := Links{
		"self":       get("/books/%s", b.ID),
		"collection": get("/books"),
		"borrowings": get("/books/%s/borrowings", b.ID),
	}
	if b.Status == models.BookAvailable {
		l["borrow"] = post("/books/%s/borrow", b.ID)
	}
	return l
}

func newBookResource(b *models.Book) bookResource {
	return bookResource{Book: *b, Links: bookLinks(b)}
}

type authorResource struct {
	models.Author
	Links Links `json:"_links"`
}

func newAuthorResource(a *models.Author) authorResource {
	return authorResource{Author: *a, Links: Links{
		"self":       get("/authors/%s", a.ID),
		"collection": get("/authors"),
		"books":      get("/authors/%s/books", a.ID),
	}}
}

type userResource struct {
	models.User
	Links Links `json:"_links"`
}

func newUserResource(u *models.User) userResource {
	return userResource{User: *u, Links: Links{
		"self":       get("/users/%s", u.ID),
		"collection": get("/users"),
		"borrowings": get("/users/%s/borrowings", u.ID),
	}}
}

type borrowingResource struct {
	models.Borrowing
	EffectiveStatus models.BorrowingStatus `json:"effectiveStatus"`
	Links           Links                  `json:"_links"`
}

func newBorrowingResource(b *models.Borrowing, now time.Time) borrowingResource {
	l := Links{
		"self":       get("/borrowings/%s", b.ID),
		"collection": get("/borrowings"),
		"book":       get("/books/%s", b.BookID),
		"user":       get("/users/%s", b.UserID),
	}
	if b.Status == models.BorrowingActive {
		l["return"] = post("/borrowings/%s/return", b.ID)
	}
	return borrowingResource{Borrowing: *b, EffectiveStatus: b.EffectiveStatus(now), Links: l}
}

type pageInfo struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

type collection struct {
	Embedded map[string]any `json:"_embedded"`
	Links    Links          `json:"_links"`
	Page     *pageInfo      `json:"page,omitempty"`
}

func totalPages(total int64, limit int) int {
	return models.BookPage{TotalCount: total, Page: models.Page{Limit: limit}}.TotalPages()
}

// pagedCollection builds a collection with self/first/last/prev/next links.
// query carries the caller's filters and is reused in every link.
func pagedCollection(path, name string, items any, query url.Values, page models.Page, total int64) collection {
	pages := totalPages(total, page.Limit)

	href := func(n int) Link {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(n))
		q.Set("limit", strconv.Itoa(page.Limit))
		return Link{Href: apiBase + path + "?" + q.Encode()}
	}

	links := Links{
		"self":   href(page.Number),
		"first":  href(1),
		"last":   href(pages),
		"create": post(path),
	}
	if page.Number > 1 {
		links["prev"] = href(page.Number - 1)
	}
	if page.Number < pages {
		links["next"] = href(page.Number + 1)
	}

	return collection{
		Embedded: map[string]any{name: items},
		Links:    links,
		Page:     &pageInfo{Size: page.Limit, TotalElements: total, TotalPages: pages, Number: page.Number},
	}
}

func plainCollection(self, name string, items any) collection {
	return collection{Embedded: map[string]any{name: items}, Links: Links{"self": get("%s", self)}}
}
