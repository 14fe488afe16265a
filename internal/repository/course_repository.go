package repository

import (
	"edusync_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").First(&course, id).Error
	return &course, err
}

// FindByIDWithGraph loads the course together with everything the
// deletion orchestrator has to remove: enrollments, assessments, their
// questions and options.
func (r *CourseRepository) FindByIDWithGraph(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Enrollments").
		Preload("Assessments").
		Preload("Assessments.Questions").
		Preload("Assessments.Questions.Options").
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) List(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64
	query := r.DB.Model(&model.Course{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Instructor").Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).Order("created_at desc").Find(&courses).Error
	return courses, err
}

// UpdateChecked writes the course only if the row still matches the
// updated_at the caller read. Zero rows affected means somebody got
// there first.
func (r *CourseRepository) UpdateChecked(course *model.Course, fields map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.Course{}).
		Where("id = ? AND updated_at = ?", course.ID, course.UpdatedAt).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}
