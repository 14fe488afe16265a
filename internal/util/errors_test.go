package util

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateDBError(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, TranslateDBError(nil))
	})

	t.Run("RecordNotFound", func(t *testing.T) {
		assert.ErrorIs(t, TranslateDBError(gorm.ErrRecordNotFound), ErrNotFound)
	})

	t.Run("DuplicatedKey", func(t *testing.T) {
		assert.ErrorIs(t, TranslateDBError(gorm.ErrDuplicatedKey), ErrConflict)
	})

	t.Run("MySQLDuplicateEntry", func(t *testing.T) {
		err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '2-1' for key 'PRIMARY'"}
		assert.ErrorIs(t, TranslateDBError(err), ErrConflict)
	})

	t.Run("MySQLForeignKey", func(t *testing.T) {
		parent := &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"}
		assert.ErrorIs(t, TranslateDBError(parent), ErrIntegrityViolation)

		child := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
		assert.ErrorIs(t, TranslateDBError(child), ErrIntegrityViolation)
	})

	t.Run("SQLiteMessages", func(t *testing.T) {
		assert.ErrorIs(t,
			TranslateDBError(errors.New("UNIQUE constraint failed: enrollments.user_id, enrollments.course_id")),
			ErrConflict)
		assert.ErrorIs(t,
			TranslateDBError(errors.New("FOREIGN KEY constraint failed")),
			ErrIntegrityViolation)
	})

	t.Run("UnknownErrorPassesThrough", func(t *testing.T) {
		err := errors.New("disk on fire")
		assert.Equal(t, err, TranslateDBError(err))
	})
}
