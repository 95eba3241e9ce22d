package common

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler carries settings shared by every endpoint.
type Handler struct {
	ExposeErrors bool
}

func (h *Handler) Fail(c *gin.Context, err error) {
	WriteError(c, err, h.ExposeErrors)
}

func (h *Handler) BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse(FormatBindingError(err)))
}

// ShouldBindBody binds a JSON body, treating an empty body as an empty object
// so the domain validation reports the missing fields.
func ShouldBindBody(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
