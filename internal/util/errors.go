package util

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrNotFound: the referenced entity id does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden: the caller lacks ownership or role for the operation.
	ErrForbidden = errors.New("permission denied")
	// ErrConflict: a uniqueness constraint was violated.
	ErrConflict = errors.New("conflict with existing resource")
	// ErrInvalidRole: the target user does not have the required role.
	ErrInvalidRole = errors.New("user does not have the required role")
	// ErrIntegrityViolation: a delete hit a foreign-key constraint. With
	// the orchestrator's ordering this is a defensive backstop, not an
	// expected outcome.
	ErrIntegrityViolation = errors.New("operation violates referential integrity")
	// ErrConcurrencyConflict: the row changed or vanished between read
	// and write. Retrying is the caller's call, not ours.
	ErrConcurrencyConflict = errors.New("resource was modified concurrently")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

// MySQL error numbers for constraint violations.
const (
	mysqlDupEntry      = 1062
	mysqlRowIsRef      = 1451 // cannot delete parent, child rows exist
	mysqlNoRefRow      = 1452 // cannot add child, parent row missing
	mysqlRowIsRefLegacy = 1217
)

// TranslateDBError maps raw store errors onto the error taxonomy so
// callers never see driver-specific failures for expected conditions.
func TranslateDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDupEntry:
			return ErrConflict
		case mysqlRowIsRef, mysqlNoRefRow, mysqlRowIsRefLegacy:
			return ErrIntegrityViolation
		}
	}

	// SQLite (used by the test store) reports constraint failures by
	// message only.
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry") {
		return ErrConflict
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "foreign key constraint fails") {
		return ErrIntegrityViolation
	}

	return err
}
