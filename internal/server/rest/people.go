package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/libris/internal/server/models"
	"github.com/dmitrijs2005/libris/internal/server/services"
)

type createAuthorRequest struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	BirthYear   *int   `json:"birthYear"`
}

type createUserRequest struct {
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Status models.UserStatus `json:"status"`
}

var (
	authorsLinks = Links{"authors": get("/authors")}
	usersLinks   = Links{"users": get("/users")}
)

func (h *Handler) ListAuthors(c *gin.Context) {
	page := pageFrom(c)
	list, total, err := h.catalog.ListAuthors(c.Request.Context(), page)
	if err != nil {
		h.fail(c, err, authorsLinks)
		return
	}
	items := make([]authorResource, 0, len(list))
	for i := range list {
		items = append(items, newAuthorResource(&list[i]))
	}
	c.JSON(http.StatusOK, pagedCollection("/authors", "authors", items, nil, page, total))
}

func (h *Handler) GetAuthor(c *gin.Context) {
	a, err := h.catalog.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, authorsLinks)
		return
	}
	c.JSON(http.StatusOK, newAuthorResource(a))
}

func (h *Handler) CreateAuthor(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "body", err)
		return
	}
	a, err := h.catalog.CreateAuthor(c.Request.Context(), services.AuthorInput{
		Name: req.Name, Nationality: req.Nationality, BirthYear: req.BirthYear,
	})
	if err != nil {
		h.fail(c, err, authorsLinks)
		return
	}
	h.created(c, apiBase+"/authors/"+a.ID, newAuthorResource(a))
}

func (h *Handler) AuthorBooks(c *gin.Context) {
	id := c.Param("id")
	list, err := h.catalog.AuthorBooks(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, authorsLinks)
		return
	}
	items := make([]bookResource, 0, len(list))
	for i := range list {
		items = append(items, newBookResource(&list[i]))
	}
	c.JSON(http.StatusOK, plainCollection("/authors/"+id+"/books", "books", items))
}

func (h *Handler) ListUsers(c *gin.Context) {
	page := pageFrom(c)
	list, total, err := h.catalog.ListUsers(c.Request.Context(), page)
	if err != nil {
		h.fail(c, err, usersLinks)
		return
	}
	items := make([]userResource, 0, len(list))
	for i := range list {
		items = append(items, newUserResource(&list[i]))
	}
	c.JSON(http.StatusOK, pagedCollection("/users", "users", items, nil, page, total))
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.catalog.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, usersLinks)
		return
	}
	c.JSON(http.StatusOK, newUserResource(u))
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "body", err)
		return
	}
	u, err := h.catalog.CreateUser(c.Request.Context(), services.UserInput{
		Name: req.Name, Email: req.Email, Status: req.Status,
	})
	if err != nil {
		h.fail(c, err, usersLinks)
		return
	}
	h.created(c, apiBase+"/users/"+u.ID, newUserResource(u))
}

func (h *Handler) UserBorrowings(c *gin.Context) {
	id := c.Param("id")
	list, err := h.catalog.UserBorrowings(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, usersLinks)
		return
	}
	c.JSON(http.StatusOK, plainCollection("/users/"+id+"/borrowings", "borrowings", h.borrowingResources(list)))
}
