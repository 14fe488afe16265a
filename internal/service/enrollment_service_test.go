package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edusync_backend/internal/model"
	"edusync_backend/internal/util"
)

func TestEnrollmentService_Enroll(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db := newTestDB(t)
		svc := newEnrollmentService(db)
		educator := seedUser(t, db, 1, model.Educator)
		student := seedUser(t, db, 2, model.Student)
		course := seedCourse(t, db, 1, educator.ID)

		before := time.Now().UTC()
		enrollment, err := svc.Enroll(student.ID, course.ID)
		require.NoError(t, err)

		assert.Equal(t, student.ID, enrollment.UserID)
		assert.Equal(t, course.ID, enrollment.CourseID)
		// The date is the server clock, never client input.
		assert.False(t, enrollment.EnrollmentDate.Before(before))
		assert.False(t, enrollment.EnrollmentDate.After(time.Now().UTC()))
	})

	t.Run("DuplicateIsConflict", func(t *testing.T) {
		db := newTestDB(t)
		svc := newEnrollmentService(db)
		educator := seedUser(t, db, 1, model.Educator)
		student := seedUser(t, db, 2, model.Student)
		course := seedCourse(t, db, 1, educator.ID)

		_, err := svc.Enroll(student.ID, course.ID)
		require.NoError(t, err)

		_, err = svc.Enroll(student.ID, course.ID)
		assert.ErrorIs(t, err, util.ErrConflict)
		assert.EqualValues(t, 1, rowCount(t, db, &model.Enrollment{}))
	})

	t.Run("EducatorCannotEnroll", func(t *testing.T) {
		db := newTestDB(t)
		svc := newEnrollmentService(db)
		educator := seedUser(t, db, 1, model.Educator)
		course := seedCourse(t, db, 1, educator.ID)

		_, err := svc.Enroll(educator.ID, course.ID)
		assert.ErrorIs(t, err, util.ErrInvalidRole)
	})

	t.Run("UnknownCourse", func(t *testing.T) {
		db := newTestDB(t)
		svc := newEnrollmentService(db)
		student := seedUser(t, db, 2, model.Student)

		_, err := svc.Enroll(student.ID, 999)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		db := newTestDB(t)
		svc := newEnrollmentService(db)
		educator := seedUser(t, db, 1, model.Educator)
		course := seedCourse(t, db, 1, educator.ID)

		_, err := svc.Enroll(999, course.ID)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})
}

func TestEnrollmentService_Withdraw(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db := newTestDB(t)
		svc := newEnrollmentService(db)
		educator := seedUser(t, db, 1, model.Educator)
		student := seedUser(t, db, 2, model.Student)
		course := seedCourse(t, db, 1, educator.ID)
		seedEnrollment(t, db, student.ID, course.ID)

		require.NoError(t, svc.Withdraw(student.ID, course.ID))
		assert.EqualValues(t, 0, rowCount(t, db, &model.Enrollment{}))
	})

	t.Run("NotEnrolledIsNotFound", func(t *testing.T) {
		db := newTestDB(t)
		svc := newEnrollmentService(db)
		educator := seedUser(t, db, 1, model.Educator)
		student := seedUser(t, db, 2, model.Student)
		course := seedCourse(t, db, 1, educator.ID)

		assert.ErrorIs(t, svc.Withdraw(student.ID, course.ID), util.ErrNotFound)
	})

	t.Run("ReEnrollAfterWithdraw", func(t *testing.T) {
		db := newTestDB(t)
		svc := newEnrollmentService(db)
		educator := seedUser(t, db, 1, model.Educator)
		student := seedUser(t, db, 2, model.Student)
		course := seedCourse(t, db, 1, educator.ID)

		_, err := svc.Enroll(student.ID, course.ID)
		require.NoError(t, err)
		require.NoError(t, svc.Withdraw(student.ID, course.ID))

		_, err = svc.Enroll(student.ID, course.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, rowCount(t, db, &model.Enrollment{}))
	})
}

func TestEnrollmentService_Listings(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	educator := seedUser(t, db, 1, model.Educator)
	alice := seedUser(t, db, 2, model.Student)
	bob := seedUser(t, db, 3, model.Student)
	goCourse := seedCourse(t, db, 1, educator.ID)
	dbCourse := seedCourse(t, db, 2, educator.ID)
	seedEnrollment(t, db, alice.ID, goCourse.ID)
	seedEnrollment(t, db, bob.ID, goCourse.ID)
	seedEnrollment(t, db, alice.ID, dbCourse.ID)

	t.Run("EnrolledStudents", func(t *testing.T) {
		enrollments, err := svc.EnrolledStudents(goCourse.ID)
		require.NoError(t, err)
		require.Len(t, enrollments, 2)
		for _, e := range enrollments {
			require.NotNil(t, e.User)
		}
	})

	t.Run("EnrolledStudentsUnknownCourse", func(t *testing.T) {
		_, err := svc.EnrolledStudents(999)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("EnrolledCourses", func(t *testing.T) {
		enrollments, err := svc.EnrolledCourses(alice.ID)
		require.NoError(t, err)
		require.Len(t, enrollments, 2)
		for _, e := range enrollments {
			require.NotNil(t, e.Course)
		}
	})

	t.Run("EnrolledCoursesForEducator", func(t *testing.T) {
		_, err := svc.EnrolledCourses(educator.ID)
		assert.ErrorIs(t, err, util.ErrInvalidRole)
	})
}
