package repository

import (
	"edusync_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Find(userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	return &e, err
}

func (r *EnrollmentRepository) Create(e *model.Enrollment) error {
	return r.DB.Create(e).Error
}

func (r *EnrollmentRepository) Delete(userID, courseID uint) (int64, error) {
	res := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Delete(&model.Enrollment{})
	return res.RowsAffected, res.Error
}

func (r *EnrollmentRepository) ListByCourse(courseID uint) ([]model.Enrollment, error) {
	var es []model.Enrollment
	err := r.DB.Preload("User").Where("course_id = ?", courseID).Find(&es).Error
	return es, err
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var es []model.Enrollment
	err := r.DB.Preload("Course").Preload("Course.Instructor").Where("user_id = ?", userID).Find(&es).Error
	return es, err
}
