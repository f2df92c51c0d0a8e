package sqlite

import (
	"errors"
	"strings"

	"github.com/rpggio/cadence/internal/repository"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY constraint failed")
}

// mapWriteError converts constraint failures to repository sentinels.
func mapWriteError(err error) error {
	switch {
	case isUniqueViolation(err):
		return errors.Join(repository.ErrConflict, err)
	case isForeignKeyViolation(err):
		return errors.Join(repository.ErrForeignKeyViolation, err)
	}
	return err
}
