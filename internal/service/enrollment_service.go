package service

import (
	"edusync_backend/internal/model"
	"edusync_backend/internal/repository"
	"edusync_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	UserRepo       *repository.UserRepository
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository, userRepo *repository.UserRepository) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		UserRepo:       userRepo,
	}
}

// Enroll creates the (user, course) join row. The enrollment date is
// the server clock; a client-supplied date would be spoofable.
func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if user.Role != model.Student {
		return nil, util.ErrInvalidRole
	}

	if _, err := s.EnrollmentRepo.Find(userID, courseID); err == nil {
		return nil, util.ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		UserID:         userID,
		CourseID:       courseID,
		EnrollmentDate: time.Now().UTC(),
	}
	// The composite primary key backstops the existence check above
	// against a concurrent enroll for the same pair.
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, util.TranslateDBError(err)
	}
	return enrollment, nil
}

func (s *EnrollmentService) Withdraw(userID, courseID uint) error {
	affected, err := s.EnrollmentRepo.Delete(userID, courseID)
	if err != nil {
		return util.TranslateDBError(err)
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// EnrolledStudents lists the students of a course, for its educator.
func (s *EnrollmentService) EnrolledStudents(courseID uint) ([]model.Enrollment, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return s.EnrollmentRepo.ListByCourse(courseID)
}

// EnrolledCourses lists the courses a student is enrolled in.
func (s *EnrollmentService) EnrolledCourses(userID uint) ([]model.Enrollment, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if user.Role != model.Student {
		return nil, util.ErrInvalidRole
	}
	return s.EnrollmentRepo.ListByUser(userID)
}
