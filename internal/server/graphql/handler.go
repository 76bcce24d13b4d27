package graphql

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	jsoniter "github.com/json-iterator/go"

	"github.com/dmitrijs2005/libris/internal/common"
	"github.com/dmitrijs2005/libris/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBody caps a request document.
const maxBody = 1 << 20

type request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

type Handler struct {
	schema graphql.Schema
	log    logging.Logger
}

func NewHandler(schema graphql.Schema, log logging.Logger) *Handler {
	return &Handler{schema: schema, log: log}
}

// Register mounts the endpoint at /graphql for GET and POST.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/graphql", h.Serve)
	r.POST("/graphql", h.Serve)
}

// Serve executes one operation. Field errors are reported in errors[] with a
// 200 status; only an unreadable request gets 400.
func (h *Handler) Serve(c *gin.Context) {
	req, err := h.decode(c)
	if err != nil {
		h.reject(c, err.Error())
		return
	}
	if req.Query == "" {
		h.reject(c, "query is required")
		return
	}

	ctx := c.Request.Context()
	res := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
	for _, e := range res.Errors {
		if e.Extensions["code"] == common.CodeInternal || e.Extensions["code"] == common.CodeUnavailable {
			h.log.Error(ctx, "graphql field failed", "error", e.Message, "path", e.Path)
		}
	}

	body, err := json.Marshal(res)
	if err != nil {
		h.log.Error(ctx, "encode graphql result", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *Handler) decode(c *gin.Context) (request, error) {
	var req request
	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if v := c.Query("variables"); v != "" {
			if err := json.UnmarshalFromString(v, &req.Variables); err != nil {
				return req, err
			}
		}
		return req, nil
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBody))
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *Handler) reject(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"errors": []gin.H{{
			"message":    msg,
			"extensions": gin.H{"code": common.CodeValidation},
		}},
	})
}
