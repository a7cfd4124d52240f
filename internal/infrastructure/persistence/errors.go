package persistence

import (
	"errors"
	"fmt"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"

	"gorm.io/gorm"
)

// notFound reports a missing row the way every repository does
func notFound(entity, id string) error {
	return fmt.Errorf("%s with ID %s %w", entity, id, apperr.ErrNotFound)
}

// wrapError maps driver errors to error kinds and adds context
func wrapError(err error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w: %v", msg, apperr.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// validationError marks an entity rejected before it reached the database
func validationError(err error) error {
	return fmt.Errorf("validation error: %w", err)
}
