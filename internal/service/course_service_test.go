package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"edusync_backend/internal/model"
	"edusync_backend/internal/util"
)

// seedCourseGraph builds one course with the whole dependency graph
// hanging off it: an enrollment, an assessment, a question with two
// options and one recorded answer.
func seedCourseGraph(t *testing.T, db *gorm.DB) (educator, student *model.User, course *model.Course) {
	t.Helper()
	educator = seedUser(t, db, 1, model.Educator)
	student = seedUser(t, db, 2, model.Student)
	course = seedCourse(t, db, 1, educator.ID)
	seedEnrollment(t, db, student.ID, course.ID)
	seedAssessment(t, db, 10, course.ID)
	seedQuestion(t, db, 100, 10)
	seedOption(t, db, 1000, 100, true)
	seedOption(t, db, 1001, 100, false)
	seedAnswer(t, db, 5000, 100, student.ID)
	return educator, student, course
}

func TestCourseService_DeleteCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesFullGraph", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		educator, _, course := seedCourseGraph(t, db)

		require.NoError(t, svc.DeleteCourse(ctx, course.ID, educator.ID))

		assert.EqualValues(t, 0, rowCount(t, db, &model.Course{}))
		assert.EqualValues(t, 0, rowCount(t, db, &model.Enrollment{}))
		assert.EqualValues(t, 0, rowCount(t, db, &model.Assessment{}))
		assert.EqualValues(t, 0, rowCount(t, db, &model.Question{}))
		assert.EqualValues(t, 0, rowCount(t, db, &model.Option{}))
		assert.EqualValues(t, 0, rowCount(t, db, &model.StudentAnswer{}))

		// Users are never taken down with a course.
		assert.EqualValues(t, 2, rowCount(t, db, &model.User{}))
	})

	t.Run("SecondDeleteIsNotFound", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		educator, _, course := seedCourseGraph(t, db)

		require.NoError(t, svc.DeleteCourse(ctx, course.ID, educator.ID))
		err := svc.DeleteCourse(ctx, course.ID, educator.ID)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("UnknownCourseIsNotFound", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		educator := seedUser(t, db, 1, model.Educator)

		err := svc.DeleteCourse(ctx, 999, educator.ID)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("ForbiddenForNonInstructor", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		_, student, course := seedCourseGraph(t, db)
		other := seedUser(t, db, 3, model.Educator)

		assert.ErrorIs(t, svc.DeleteCourse(ctx, course.ID, other.ID), util.ErrForbidden)
		assert.ErrorIs(t, svc.DeleteCourse(ctx, course.ID, student.ID), util.ErrForbidden)

		// Nothing was touched.
		assert.EqualValues(t, 1, rowCount(t, db, &model.Course{}))
		assert.EqualValues(t, 1, rowCount(t, db, &model.Enrollment{}))
		assert.EqualValues(t, 1, rowCount(t, db, &model.Assessment{}))
		assert.EqualValues(t, 1, rowCount(t, db, &model.Question{}))
		assert.EqualValues(t, 2, rowCount(t, db, &model.Option{}))
		assert.EqualValues(t, 1, rowCount(t, db, &model.StudentAnswer{}))
	})

	t.Run("RollsBackWhenAStepFails", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		educator, _, course := seedCourseGraph(t, db)

		// Fail the question delete, several steps into the transaction.
		injected := errors.New("injected question delete failure")
		err := db.Callback().Delete().Before("gorm:delete").Register("test:fail_question_delete", func(tx *gorm.DB) {
			if tx.Statement.Table == "questions" {
				tx.AddError(injected)
			}
		})
		require.NoError(t, err)

		require.Error(t, svc.DeleteCourse(ctx, course.ID, educator.ID))

		// The enrollment delete ran before the failure; the rollback
		// must bring it back along with everything else.
		assert.EqualValues(t, 1, rowCount(t, db, &model.Course{}))
		assert.EqualValues(t, 1, rowCount(t, db, &model.Enrollment{}))
		assert.EqualValues(t, 1, rowCount(t, db, &model.Assessment{}))
		assert.EqualValues(t, 1, rowCount(t, db, &model.Question{}))
		assert.EqualValues(t, 2, rowCount(t, db, &model.Option{}))
		assert.EqualValues(t, 1, rowCount(t, db, &model.StudentAnswer{}))
	})

	t.Run("CourseWithoutDependents", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		educator := seedUser(t, db, 1, model.Educator)
		course := seedCourse(t, db, 1, educator.ID)

		require.NoError(t, svc.DeleteCourse(ctx, course.ID, educator.ID))
		assert.EqualValues(t, 0, rowCount(t, db, &model.Course{}))
	})
}

func TestCourseService_CreateCourse(t *testing.T) {
	t.Run("InstructorMustBeEducator", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		student := seedUser(t, db, 1, model.Student)

		_, err := svc.CreateCourse(student.ID, CourseRequest{Title: "Go 101"})
		assert.ErrorIs(t, err, util.ErrInvalidRole)
	})

	t.Run("UnknownInstructor", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)

		_, err := svc.CreateCourse(404, CourseRequest{Title: "Go 101"})
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		educator := seedUser(t, db, 1, model.Educator)

		course, err := svc.CreateCourse(educator.ID, CourseRequest{Title: "Go 101", Description: "intro"})
		require.NoError(t, err)
		assert.Equal(t, educator.ID, course.InstructorID)
		assert.NotZero(t, course.ID)
	})
}

func TestCourseService_UpdateCourse(t *testing.T) {
	t.Run("OnlyInstructorMayUpdate", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		educator := seedUser(t, db, 1, model.Educator)
		other := seedUser(t, db, 2, model.Educator)
		course := seedCourse(t, db, 1, educator.ID)

		_, err := svc.UpdateCourse(course.ID, other.ID, CourseRequest{Title: "hijack"})
		assert.ErrorIs(t, err, util.ErrForbidden)
	})

	t.Run("Success", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		educator := seedUser(t, db, 1, model.Educator)
		course := seedCourse(t, db, 1, educator.ID)

		updated, err := svc.UpdateCourse(course.ID, educator.ID, CourseRequest{Title: "New title", Description: "new"})
		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, "new", updated.Description)
	})

	t.Run("UnknownCourse", func(t *testing.T) {
		db := newTestDB(t)
		svc := newCourseService(db)
		educator := seedUser(t, db, 1, model.Educator)

		_, err := svc.UpdateCourse(999, educator.ID, CourseRequest{Title: "x"})
		assert.ErrorIs(t, err, util.ErrNotFound)
	})
}
