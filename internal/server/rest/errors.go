package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/libris/internal/common"
)

type errorDTO struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Links Links `json:"_links,omitempty"`
}

func errorBody(code, msg string, links Links) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	e.Links = links
	return e
}

// statusFor maps an error code to its HTTP status. Conflict and validation
// share 400; the body code tells them apart.
func statusFor(code string) int {
	switch code {
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict, common.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error, links Links) {
	code := common.Code(err)
	status := statusFor(code)

	if code == common.CodeUnavailable {
		c.Header("Retry-After", "1")
	}
	if status >= http.StatusInternalServerError {
		h.log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "code", code, "error", err)
	}
	msg := err.Error()
	if code == common.CodeInternal {
		msg = common.ErrorInternal.Error()
	}
	c.AbortWithStatusJSON(status, errorBody(code, msg, links))
}

func (h *Handler) badRequest(c *gin.Context, field string, err error) {
	h.fail(c, common.NewValidation(field, err.Error()), nil)
}
