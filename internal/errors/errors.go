package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCategoryNotFound is returned when a category is not found or not owned by the caller.
	ErrCategoryNotFound = errors.New("Category not found")
	// ErrCategoryNameTaken is returned when a category name collides with an existing one.
	ErrCategoryNameTaken = errors.New("Category with this name already exists")
	// ErrNoteNotFound is returned when a note is not found or not owned by the caller.
	ErrNoteNotFound = errors.New("Note not found")
)

// CategoryInUseError is returned when a category cannot be deleted because
// notes still reference it. The note count is part of the message shown to users.
type CategoryInUseError struct {
	Count int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("Cannot delete category: %d note(s) are using it. Please remove notes first or change their category.", e.Count)
}

// ErrorResponse is the wire shape for every error body. The "detail" key is
// the contract clients parse for human-readable messages.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var inUse *CategoryInUseError
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoteNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCategoryNameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &inUse):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
