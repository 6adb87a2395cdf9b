package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, kind Kind, code, message string) {
	c.JSON(status, HTTPError{
		Kind:    kind,
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, KindValidation, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, KindNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, KindInternal, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, KindUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, KindRateLimited, code, message)
}

// Respond maps err to its HTTP representation. Unknown errors are attached to the
// gin context so the request logger records the cause, and the body stays generic.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, StatusFor(be.Kind), be.Kind, be.Code, be.Message)
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", "Unexpected error.")
}
