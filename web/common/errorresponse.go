package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/core"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

// StatusOf maps an error kind onto the HTTP status sent to the caller.
func StatusOf(kind core.ErrorKind) int {
	switch kind {
	case core.KindValidation, core.KindConflict, core.KindInvalidCredentials:
		return http.StatusBadRequest
	case core.KindUnauthorized:
		return http.StatusUnauthorized
	case core.KindForbidden:
		return http.StatusForbidden
	case core.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError aborts the request with the status and message carried by err.
// Internal errors include the cause only when exposeErrors is set.
func WriteError(c *gin.Context, err error, exposeErrors bool) {
	var appErr *core.Error
	if !errors.As(err, &appErr) {
		appErr = &core.Error{Kind: core.KindInternal, Message: "Server error.", Err: err}
	}

	status := StatusOf(appErr.Kind)
	res := NewErrorResponse(appErr.Message)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		if exposeErrors && appErr.Err != nil {
			res.Error = appErr.Err.Error()
		}
	}
	c.AbortWithStatusJSON(status, res)
}
