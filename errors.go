package inkpress

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("post not found")

// ValidationError signals bad input shape or format (HTTP 400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError signals a slug collision on post creation (HTTP 409).
type ConflictError struct {
	Slug string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a post with slug %q already exists", e.Slug)
}

// jsonError writes a structured error envelope. Only the short message
// crosses the boundary; internal detail is logged server-side.
func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}
