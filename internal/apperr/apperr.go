// Package apperr holds the error values shared by the workflow layers and the
// mapping of those values to HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrAuthenticationFailed is returned for any bad login/password pair. It
	// never says which half was wrong.
	ErrAuthenticationFailed = errors.New("incorrect login or password")
	ErrRoleMismatch         = errors.New("incorrect user role")
	ErrDuplicateName        = errors.New("project name already exists")
	ErrDuplicateLogin       = errors.New("login already registered")
	ErrInvalidDeadline      = errors.New("deadline must be in the future")
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation error")
)

var statuses = []struct {
	err    error
	status int
}{
	{ErrAuthenticationFailed, http.StatusUnauthorized},
	{ErrRoleMismatch, http.StatusForbidden},
	{ErrDuplicateName, http.StatusConflict},
	{ErrDuplicateLogin, http.StatusConflict},
	{ErrInvalidDeadline, http.StatusUnprocessableEntity},
	{ErrNotFound, http.StatusNotFound},
	{ErrValidation, http.StatusBadRequest},
}

// Status maps err to the HTTP status the boundary should answer with.
func Status(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// Flag is the short name used for flash messages on HTML forms.
func Flag(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDeadline):
		return "incorrect_time"
	case errors.Is(err, ErrDuplicateName):
		return "incorrect_name"
	case errors.Is(err, ErrAuthenticationFailed):
		return "not_valid"
	case errors.Is(err, ErrRoleMismatch):
		return "incorrect_role"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	}
	return "invalid_input"
}
