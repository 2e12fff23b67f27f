package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Kind classifies an application error independently of its HTTP status.
type Kind string

const (
	KindInvalidRequest    Kind = "InvalidRequest"
	KindUnauthorized      Kind = "Unauthorized"
	KindForbidden         Kind = "Forbidden"
	KindNotFound          Kind = "NotFound"
	KindConflict          Kind = "Conflict"
	KindVendorUnavailable Kind = "VendorUnavailable"
	KindInvalidStatus     Kind = "InvalidStatus"
	KindInvalidTransition Kind = "InvalidTransition"
	KindServerError       Kind = "ServerError"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"-"`
	Kind    Kind   `json:"error"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, kind Kind, message string, err error) *Error {
	return &Error{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func InvalidRequest(message string) *Error {
	return New(http.StatusBadRequest, KindInvalidRequest, message, nil)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, KindConflict, message, nil)
}

func VendorUnavailable() *Error {
	return New(http.StatusBadRequest, KindVendorUnavailable, "Vendor is currently offline", nil)
}

func InvalidStatus() *Error {
	return New(http.StatusBadRequest, KindInvalidStatus, "Invalid status value", nil)
}

func InvalidTransition(message string) *Error {
	return New(http.StatusConflict, KindInvalidTransition, message, nil)
}

// ServerError wraps an unexpected failure; the cause is logged, never rendered.
func ServerError(message string, err error) *Error {
	return New(http.StatusInternalServerError, KindServerError, message, err)
}

// ServiceUnavailable is a ServerError variant for optional integrations that are not configured.
func ServiceUnavailable(message string) *Error {
	return New(http.StatusServiceUnavailable, KindServerError, message, nil)
}

// From converts any error into an *Error, mapping unknown errors to a 500.
func From(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ServerError("Internal server error", err)
}

// Is reports whether err is an application error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return stderrors.As(err, &appErr) && appErr.Kind == kind
}

// ErrorMiddleware renders the last error attached to the gin context.
func ErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := From(c.Errors.Last().Err)
		if appErr.Code >= http.StatusInternalServerError && logger != nil {
			logger.Error("request failed",
				zap.String("request_id", c.GetString("request_id")),
				zap.String("path", c.Request.URL.Path),
				zap.Error(appErr),
			)
		}

		c.JSON(appErr.Code, gin.H{
			"success": false,
			"message": appErr.Message,
			"error":   appErr.Kind,
		})
		c.Abort()
	}
}
