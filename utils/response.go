package utils

import (
	"errors"
	"net/http"

	"tenantnotes/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request. Code is only set for
// failures a client is expected to branch on.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Success responses
func Success(c *gin.Context, body gin.H) {
	c.JSON(http.StatusOK, body)
}

func Created(c *gin.Context, body gin.H) {
	c.JSON(http.StatusCreated, body)
}

// Error responses
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: message})
}

func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: message})
}

func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{Error: message})
}

func TooManyRequests(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: message})
}

func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

// LimitReached reports a quota denial with its machine-readable code.
func LimitReached(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
		Error: message,
		Code:  model.CodeLimitReached,
	})
}

// StatusFor maps an error kind to the HTTP status it is reported with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthenticated), errors.Is(err, model.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrQuotaExceeded), errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the response for err and aborts the chain. Messages
// of unexpected errors are logged, never sent to the client.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	TrackError(ErrorKind(err))

	switch {
	case errors.Is(err, model.ErrQuotaExceeded):
		LimitReached(c, err.Error())
	case status == http.StatusInternalServerError:
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		InternalError(c)
	default:
		c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
	}
}

// ErrorKind names the error kind for metrics labels.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, model.ErrInvalidCredential):
		return "invalid_credential"
	case errors.Is(err, model.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, model.ErrForbidden):
		return "forbidden"
	case errors.Is(err, model.ErrNotFound):
		return "not_found"
	case errors.Is(err, model.ErrValidation):
		return "validation"
	case errors.Is(err, model.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
