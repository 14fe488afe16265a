package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"edusync_backend/internal/model"
	"edusync_backend/internal/util"
)

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("InstructorWithCoursesIsBlocked", func(t *testing.T) {
		db := newTestDB(t)
		svc := newUserService(db)
		educator := seedUser(t, db, 1, model.Educator)
		seedCourse(t, db, 1, educator.ID)

		assert.ErrorIs(t, svc.DeleteUser(educator.ID), util.ErrIntegrityViolation)
		assert.EqualValues(t, 1, rowCount(t, db, &model.User{}))
	})

	t.Run("EnrolledStudentIsBlocked", func(t *testing.T) {
		db := newTestDB(t)
		svc := newUserService(db)
		educator := seedUser(t, db, 1, model.Educator)
		student := seedUser(t, db, 2, model.Student)
		course := seedCourse(t, db, 1, educator.ID)
		seedEnrollment(t, db, student.ID, course.ID)

		assert.ErrorIs(t, svc.DeleteUser(student.ID), util.ErrIntegrityViolation)
	})

	t.Run("AnswersGoWithTheStudent", func(t *testing.T) {
		db := newTestDB(t)
		svc := newUserService(db)
		educator := seedUser(t, db, 1, model.Educator)
		student := seedUser(t, db, 2, model.Student)
		course := seedCourse(t, db, 1, educator.ID)
		a := seedAssessment(t, db, 10, course.ID)
		q := seedQuestion(t, db, 100, a.ID)
		seedAnswer(t, db, 5000, q.ID, student.ID)

		require.NoError(t, svc.DeleteUser(student.ID))
		assert.EqualValues(t, 0, rowCount(t, db, &model.StudentAnswer{}))
		assert.EqualValues(t, 1, rowCount(t, db, &model.User{}))
		// The question itself is untouched.
		assert.EqualValues(t, 1, rowCount(t, db, &model.Question{}))
	})

	t.Run("NotFound", func(t *testing.T) {
		db := newTestDB(t)
		svc := newUserService(db)

		assert.ErrorIs(t, svc.DeleteUser(999), util.ErrNotFound)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("RehashesChangedPassword", func(t *testing.T) {
		db := newTestDB(t)
		svc := newUserService(db)
		user := seedUser(t, db, 1, model.Student)

		updated, err := svc.UpdateUser(user.ID, UpdateUserRequest{Password: "new-pass"})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-pass")))
	})

	t.Run("RejectsUnknownRole", func(t *testing.T) {
		db := newTestDB(t)
		svc := newUserService(db)
		user := seedUser(t, db, 1, model.Student)

		_, err := svc.UpdateUser(user.ID, UpdateUserRequest{Role: "Wizard"})
		assert.ErrorIs(t, err, util.ErrInvalidRole)
	})

	t.Run("RoleChange", func(t *testing.T) {
		db := newTestDB(t)
		svc := newUserService(db)
		user := seedUser(t, db, 1, model.Student)

		updated, err := svc.UpdateUser(user.ID, UpdateUserRequest{Role: model.Educator})
		require.NoError(t, err)
		assert.Equal(t, model.Educator, updated.Role)
	})
}
