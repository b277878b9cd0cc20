package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents a failed call against the storefront API
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	// Body is the raw upstream payload, if any
	Body []byte `json:"-"`
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

// Is reports whether target is an *Error carrying the same code.
// This lets callers match against the sentinel values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FromStatus builds the error returned for a non-success upstream response.
func FromStatus(status int, message string, body []byte) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{
		Code:    status,
		Message: message,
		Body:    body,
	}
}

// As is a shorthand for errors.As against *Error.
func As(err error) (*Error, bool) {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Common error types
var (
	ErrBadRequest         = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized       = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden          = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrConflict           = New(http.StatusConflict, "Conflict", nil)
	ErrTooManyRequests    = New(http.StatusTooManyRequests, "Too many requests", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrBadGateway         = New(http.StatusBadGateway, "Upstream request failed", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
)

// ErrorMiddleware renders the last error attached to the gin context.
// Upstream errors are relayed with their original status and payload;
// anything else is treated as a transport failure.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := As(err)
		if !ok {
			appErr = New(ErrBadGateway.Code, ErrBadGateway.Message, err)
		}

		if len(appErr.Body) > 0 && json.Valid(appErr.Body) {
			c.Data(appErr.Code, "application/json; charset=utf-8", appErr.Body)
		} else {
			c.JSON(appErr.Code, appErr)
		}
		c.Abort()
	}
}
