package service

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"edusync_backend/internal/config"
	"edusync_backend/internal/model"
	"edusync_backend/internal/repository"
	"edusync_backend/pkg/database"
	"edusync_backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "edusync.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-0123456789abcdef0123456789",
			ExpireTime: time.Hour,
		},
	}
}

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewUserRepository(db),
		nil,
		testConfig(),
		db,
	)
}

func newEnrollmentService(db *gorm.DB) *EnrollmentService {
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewUserRepository(db),
	)
}

func newAssessmentService(db *gorm.DB) *AssessmentService {
	return NewAssessmentService(
		repository.NewAssessmentRepository(db),
		repository.NewCourseRepository(db),
		db,
	)
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(repository.NewUserRepository(db), nil, testConfig())
}

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(repository.NewUserRepository(db))
}

func seedUser(t *testing.T, db *gorm.DB, id uint, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{
		BaseModel: model.BaseModel{ID: id},
		Username:  fmt.Sprintf("user%d", id),
		Email:     fmt.Sprintf("user%d@example.com", id),
		Password:  "irrelevant",
		Role:      role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedCourse(t *testing.T, db *gorm.DB, id, instructorID uint) *model.Course {
	t.Helper()
	c := &model.Course{
		BaseModel:    model.BaseModel{ID: id},
		Title:        fmt.Sprintf("Course %d", id),
		InstructorID: instructorID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedAssessment(t *testing.T, db *gorm.DB, id, courseID uint) *model.Assessment {
	t.Helper()
	a := &model.Assessment{
		BaseModel: model.BaseModel{ID: id},
		Title:     fmt.Sprintf("Assessment %d", id),
		CourseID:  courseID,
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func seedQuestion(t *testing.T, db *gorm.DB, id, assessmentID uint) *model.Question {
	t.Helper()
	q := &model.Question{
		BaseModel:    model.BaseModel{ID: id},
		Text:         fmt.Sprintf("Question %d", id),
		QuestionType: "multiple-choice",
		AssessmentID: assessmentID,
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func seedOption(t *testing.T, db *gorm.DB, id, questionID uint, correct bool) *model.Option {
	t.Helper()
	o := &model.Option{
		BaseModel:  model.BaseModel{ID: id},
		Text:       fmt.Sprintf("Option %d", id),
		IsCorrect:  correct,
		QuestionID: questionID,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

func seedAnswer(t *testing.T, db *gorm.DB, id, questionID, userID uint) *model.StudentAnswer {
	t.Helper()
	sa := &model.StudentAnswer{
		BaseModel:  model.BaseModel{ID: id},
		QuestionID: questionID,
		UserID:     userID,
		AnswerText: "42",
		AnsweredOn: time.Now().UTC(),
	}
	require.NoError(t, db.Create(sa).Error)
	return sa
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) *model.Enrollment {
	t.Helper()
	e := &model.Enrollment{
		UserID:         userID,
		CourseID:       courseID,
		EnrollmentDate: time.Now().UTC(),
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func rowCount(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(value).Count(&n).Error)
	return n
}
