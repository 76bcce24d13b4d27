// Package rest serves the library over HTTP as HAL-style JSON.
package rest

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/services"
)

type Handler struct {
	lifecycle services.Lifecycle
	catalog   services.Catalog
	log       logging.Logger
}

func NewHandler(l services.Lifecycle, c services.Catalog, log logging.Logger) *Handler {
	return &Handler{lifecycle: l, catalog: c, log: log.With("module", "rest")}
}

// Register mounts every resource under r, which is normally the /api group.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/books", h.ListBooks)
	r.POST("/books", h.CreateBook)
	r.GET("/books/:id", h.GetBook)
	r.PUT("/books/:id", h.UpdateBook)
	r.DELETE("/books/:id", h.DeleteBook)
	r.GET("/books/:id/borrowings", h.BookBorrowings)
	r.POST("/books/:id/borrow", h.BorrowBook)

	r.GET("/authors", h.ListAuthors)
	r.POST("/authors", h.CreateAuthor)
	r.GET("/authors/:id", h.GetAuthor)
	r.GET("/authors/:id/books", h.AuthorBooks)

	r.GET("/users", h.ListUsers)
	r.POST("/users", h.CreateUser)
	r.GET("/users/:id", h.GetUser)
	r.GET("/users/:id/borrowings", h.UserBorrowings)

	r.GET("/borrowings", h.ListBorrowings)
	r.POST("/borrowings", h.CreateBorrowing)
	r.GET("/borrowings/:id", h.GetBorrowing)
	r.POST("/borrowings/:id/return", h.ReturnBorrowing)
}

// Root lists the entry points.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"_links": Links{
		"self":       Link{Href: "/"},
		"books":      get("/books"),
		"authors":    get("/authors"),
		"users":      get("/users"),
		"borrowings": get("/borrowings"),
		"graphql":    Link{Href: "/graphql"},
		"docs":       Link{Href: "/swagger/index.html"},
	}})
}

func parseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func pageFrom(c *gin.Context) models.Page {
	return models.Page{
		Number: parseIntDefault(c.Query("page"), models.DefaultPage),
		Limit:  parseIntDefault(c.Query("limit"), models.DefaultLimit),
	}.Normalize()
}

// keep copies the listed query parameters that are set.
func keep(c *gin.Context, names ...string) url.Values {
	q := url.Values{}
	for _, n := range names {
		if v := c.Query(n); v != "" {
			q.Set(n, v)
		}
	}
	return q
}

func (h *Handler) created(c *gin.Context, location string, body any) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, body)
}
