// Package repository implements the users, tokens and activities collections
// over gorm. Every read goes to the store; there is no caching layer.
package repository

import (
	"errors"
	"strings"

	"translation-tracker/internal/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter is an equality match on one or more columns.
type Filter map[string]any

// Fields is a set of column updates.
type Fields map[string]any

func newID() string {
	return uuid.NewString()
}

// translate maps gorm errors onto the shared error values. dup is returned for
// unique constraint violations.
func translate(err error, dup error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case dup != nil && isDuplicate(err):
		return dup
	}
	return err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
