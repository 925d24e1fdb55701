package errors

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Error carries the HTTP status a failure should surface with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrConflict            = New("record already exists", http.StatusConflict)
	ErrPayloadTooLarge     = New("file exceeds the maximum allowed size", http.StatusRequestEntityTooLarge)
	ErrUnsupportedType     = New("file type is not allowed", http.StatusUnsupportedMediaType)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
)

// GetUniqueContraintError maps a postgres unique violation to a conflict
// response, everything else to a 500.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := errors.Cause(err).Error()
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed") {
		return New("record already exists", http.StatusConflict)
	}
	return ErrInternalServerError
}
