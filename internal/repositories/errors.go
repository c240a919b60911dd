package repositories

import (
	"errors"
	"strings"

	"busbooking/internal/domain"

	"gorm.io/gorm"
)

// translateError maps gorm/driver failures onto domain errors. Errors that
// already carry a domain type (model hooks) pass through unchanged.
func translateError(resource string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case domain.IsValidation(err), domain.IsNotFound(err), domain.IsConflict(err),
		domain.IsForbidden(err), domain.IsUnauthorized(err), domain.IsInternal(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFoundError{Resource: resource, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateMessage(err):
		return domain.ConflictError{Resource: resource, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated) || isForeignKeyMessage(err):
		return domain.ValidationError{Msg: "dữ liệu liên kết không tồn tại hoặc đang được sử dụng", Err: err}
	}
	return domain.InternalError{Err: err}
}

// Not every dialector translates errors; fall back to message matching.
func isDuplicateMessage(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func isForeignKeyMessage(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "a foreign key constraint fails") ||
		strings.Contains(msg, "violates foreign key constraint")
}
