package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"edusync_backend/internal/model"
	"edusync_backend/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "edusync.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestCourseRepository_UpdateChecked(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)

	course := &model.Course{Title: "Go 101", InstructorID: 1}
	require.NoError(t, repo.Create(course))

	t.Run("MatchingStamp", func(t *testing.T) {
		loaded, err := repo.FindByID(course.ID)
		require.NoError(t, err)

		affected, err := repo.UpdateChecked(loaded, map[string]interface{}{"title": "Go 102"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)
	})

	t.Run("StaleStamp", func(t *testing.T) {
		loaded, err := repo.FindByID(course.ID)
		require.NoError(t, err)

		// Somebody else updates the row after our read.
		loaded.UpdatedAt = loaded.UpdatedAt.Add(-time.Minute)

		affected, err := repo.UpdateChecked(loaded, map[string]interface{}{"title": "Go 103"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, affected)

		current, err := repo.FindByID(course.ID)
		require.NoError(t, err)
		assert.Equal(t, "Go 102", current.Title)
	})
}

func TestCourseRepository_FindByIDWithGraph(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)

	course := &model.Course{
		Title:        "Go 101",
		InstructorID: 1,
		Assessments: []model.Assessment{
			{
				Title: "Midterm",
				Questions: []model.Question{
					{
						Text: "2 + 2 = ?",
						Options: []model.Option{
							{Text: "4", IsCorrect: true},
							{Text: "5"},
						},
					},
				},
			},
		},
	}
	require.NoError(t, repo.Create(course))
	require.NoError(t, db.Create(&model.Enrollment{UserID: 7, CourseID: course.ID, EnrollmentDate: time.Now().UTC()}).Error)

	loaded, err := repo.FindByIDWithGraph(course.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Enrollments, 1)
	require.Len(t, loaded.Assessments, 1)
	require.Len(t, loaded.Assessments[0].Questions, 1)
	assert.Len(t, loaded.Assessments[0].Questions[0].Options, 2)
}
