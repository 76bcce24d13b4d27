package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/services"
)

var booksLinks = Links{"books": get("/books")}

type createBookRequest struct {
	Title  string            `json:"title"`
	Author string            `json:"author"`
	ISBN   string            `json:"isbn"`
	Status models.BookStatus `json:"status"`
}

type updateBookRequest struct {
	Title  *string            `json:"title"`
	Author *string            `json:"author"`
	ISBN   *string            `json:"isbn"`
	Status *models.BookStatus `json:"status"`
}

type borrowRequest struct {
	BookID  string     `json:"bookId"`
	UserID  string     `json:"userId"`
	DueDate *time.Time `json:"dueDate"`
}

// ListBooks supports title/author/status filters, sortBy=field:dir and
// page/limit paging.
func (h *Handler) ListBooks(c *gin.Context) {
	filter := models.BookFilter{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		Status: models.BookStatus(c.Query("status")),
	}

	res, err := h.lifecycle.ListBooks(c.Request.Context(), filter, models.ParseSort(c.Query("sortBy")), pageFrom(c))
	if err != nil {
		h.fail(c, err, booksLinks)
		return
	}

	items := make([]bookResource, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, newBookResource(&res.Items[i]))
	}
	c.JSON(http.StatusOK, pagedCollection("/books", "books", items,
		keep(c, "title", "author", "status", "sortBy"), res.Page, res.TotalCount))
}

func (h *Handler) GetBook(c *gin.Context) {
	b, err := h.catalog.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, booksLinks)
		return
	}
	c.JSON(http.StatusOK, newBookResource(b))
}

func (h *Handler) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "body", err)
		return
	}

	b, err := h.catalog.CreateBook(c.Request.Context(), services.BookInput{
		Title: req.Title, Author: req.Author, ISBN: req.ISBN, Status: req.Status,
	})
	if err != nil {
		h.fail(c, err, booksLinks)
		return
	}
	h.created(c, apiBase+"/books/"+b.ID, newBookResource(b))
}

func (h *Handler) UpdateBook(c *gin.Context) {
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "body", err)
		return
	}

	b, err := h.catalog.UpdateBook(c.Request.Context(), c.Param("id"), services.BookPatch{
		Title: req.Title, Author: req.Author, ISBN: req.ISBN, Status: req.Status,
	})
	if err != nil {
		h.fail(c, err, booksLinks)
		return
	}
	c.JSON(http.StatusOK, newBookResource(b))
}

func (h *Handler) DeleteBook(c *gin.Context) {
	if err := h.catalog.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, booksLinks)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) BookBorrowings(c *gin.Context) {
	id := c.Param("id")
	list, err := h.catalog.BookBorrowings(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, booksLinks)
		return
	}
	c.JSON(http.StatusOK, plainCollection("/books/"+id+"/borrowings", "borrowings", h.borrowingResources(list)))
}

// BorrowBook lends the book in the path to the user in the body.
func (h *Handler) BorrowBook(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "body", err)
		return
	}
	h.borrow(c, c.Param("id"), req)
}

func (h *Handler) borrow(c *gin.Context, bookID string, req borrowRequest) {
	b, err := h.lifecycle.BeginBorrow(c.Request.Context(), bookID, req.UserID, req.DueDate)
	if err != nil {
		h.fail(c, err, Links{"book": get("/books/%s", bookID)})
		return
	}
	h.created(c, apiBase+"/borrowings/"+b.ID, newBorrowingResource(b, h.lifecycle.Now()))
}
