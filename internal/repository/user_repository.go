package repository

import (
	"edusync_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// CountCoursesInstructed and CountEnrollments back the NO ACTION edges
// on user deletion: a user with either cannot be removed.
func (r *UserRepository) CountCoursesInstructed(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("instructor_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountEnrollments(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
