package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/libris/internal/server/models"
)

var borrowingsLinks = Links{"borrowings": get("/borrowings")}

func (h *Handler) borrowingResources(list []models.Borrowing) []borrowingResource {
	now := h.lifecycle.Now()
	out := make([]borrowingResource, 0, len(list))
	for i := range list {
		out = append(out, newBorrowingResource(&list[i], now))
	}
	return out
}

func (h *Handler) ListBorrowings(c *gin.Context) {
	filter := models.BorrowingFilter{
		BookID: c.Query("bookId"),
		UserID: c.Query("userId"),
		Status: models.BorrowingStatus(c.Query("status")),
	}
	page := pageFrom(c)

	list, total, err := h.lifecycle.ListBorrowings(c.Request.Context(), filter, page)
	if err != nil {
		h.fail(c, err, borrowingsLinks)
		return
	}
	c.JSON(http.StatusOK, pagedCollection("/borrowings", "borrowings", h.borrowingResources(list),
		keep(c, "bookId", "userId", "status"), page, total))
}

func (h *Handler) GetBorrowing(c *gin.Context) {
	b, err := h.lifecycle.GetBorrowing(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, borrowingsLinks)
		return
	}
	c.JSON(http.StatusOK, newBorrowingResource(b, h.lifecycle.Now()))
}

func (h *Handler) CreateBorrowing(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "body", err)
		return
	}
	h.borrow(c, req.BookID, req)
}

func (h *Handler) ReturnBorrowing(c *gin.Context) {
	id := c.Param("id")
	b, err := h.lifecycle.CompleteReturn(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, Links{"borrowing": get("/borrowings/%s", id)})
		return
	}
	c.JSON(http.StatusOK, newBorrowingResource(b, h.lifecycle.Now()))
}
