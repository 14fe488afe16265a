package service

import (
	"edusync_backend/internal/model"
	"edusync_backend/internal/repository"
	"edusync_backend/internal/util"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	return user, err
}

type UpdateUserRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Role     model.UserRole `json:"role"`
}

func (s *UserService) UpdateUser(id uint, req UpdateUserRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return nil, util.ErrInvalidRole
		}
		user.Role = req.Role
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, util.TranslateDBError(err)
	}
	return user, nil
}

// DeleteUser honors the NO ACTION edges: a user still instructing
// courses or holding enrollments must be detached first. Answer rows
// cascade with the user.
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	} else if err != nil {
		return err
	}

	courses, err := s.UserRepo.CountCoursesInstructed(user.ID)
	if err != nil {
		return err
	}
	if courses > 0 {
		return util.ErrIntegrityViolation
	}

	enrollments, err := s.UserRepo.CountEnrollments(user.ID)
	if err != nil {
		return err
	}
	if enrollments > 0 {
		return util.ErrIntegrityViolation
	}

	return s.UserRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.StudentAnswer{}).Error; err != nil {
			return util.TranslateDBError(err)
		}
		if err := tx.Delete(&model.User{}, user.ID).Error; err != nil {
			return util.TranslateDBError(err)
		}
		return nil
	})
}
