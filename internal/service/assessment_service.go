package service

import (
	"context"
	"edusync_backend/internal/model"
	"edusync_backend/internal/repository"
	"edusync_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	CourseRepo     *repository.CourseRepository
	DB             *gorm.DB
}

func NewAssessmentService(assessmentRepo *repository.AssessmentRepository, courseRepo *repository.CourseRepository, db *gorm.DB) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		CourseRepo:     courseRepo,
		DB:             db,
	}
}

type AssessmentRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	CourseID    uint      `json:"courseId" binding:"required"`
}

type QuestionRequest struct {
	Text         string          `json:"text" binding:"required"`
	QuestionType string          `json:"questionType"`
	Options      []OptionRequest `json:"options"`
}

type OptionRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type AnswerSubmission struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	AnswerText string `json:"answerText" binding:"required"`
}

func (s *AssessmentService) ListAssessments(page, limit int) ([]model.Assessment, int64, error) {
	return s.AssessmentRepo.List(page, limit)
}

func (s *AssessmentService) GetAssessment(id uint) (*model.Assessment, error) {
	a, err := s.AssessmentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	return a, err
}

func (s *AssessmentService) CreateAssessment(requestingUserID uint, req AssessmentRequest) (*model.Assessment, error) {
	course, err := s.CourseRepo.FindByID(req.CourseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if course.InstructorID != requestingUserID {
		return nil, util.ErrForbidden
	}

	a := &model.Assessment{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CourseID:    course.ID,
	}
	if err := s.AssessmentRepo.Create(a); err != nil {
		return nil, util.TranslateDBError(err)
	}
	return a, nil
}

func (s *AssessmentService) UpdateAssessment(id, requestingUserID uint, req AssessmentRequest) (*model.Assessment, error) {
	a, err := s.AssessmentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if a.Course == nil || a.Course.InstructorID != requestingUserID {
		return nil, util.ErrForbidden
	}

	a.Title = req.Title
	a.Description = req.Description
	a.StartDate = req.StartDate
	a.EndDate = req.EndDate
	if err := s.AssessmentRepo.Save(a); err != nil {
		return nil, util.TranslateDBError(err)
	}
	return a, nil
}

// DeleteAssessment removes one assessment and its dependents. The
// question -> option and question -> answer edges cascade at store
// level, but questions are deleted explicitly anyway so the whole graph
// goes in one ordered, guarded transaction regardless of what the store
// is configured to do.
func (s *AssessmentService) DeleteAssessment(ctx context.Context, assessmentID, requestingUserID uint) error {
	a, err := s.AssessmentRepo.FindByIDWithGraph(assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	} else if err != nil {
		return err
	}
	if a.Course == nil || a.Course.InstructorID != requestingUserID {
		return util.ErrForbidden
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAssessmentGraph(tx, a); err != nil {
			return err
		}
		if err := tx.Delete(&model.Assessment{}, a.ID).Error; err != nil {
			return util.TranslateDBError(err)
		}
		return nil
	})
}

// AddQuestions appends questions (with their options) to an assessment
// in one transaction.
func (s *AssessmentService) AddQuestions(assessmentID, requestingUserID uint, reqs []QuestionRequest) ([]model.Question, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if a.Course == nil || a.Course.InstructorID != requestingUserID {
		return nil, util.ErrForbidden
	}

	var created []model.Question
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, req := range reqs {
			q := model.Question{
				Text:         req.Text,
				QuestionType: req.QuestionType,
				AssessmentID: a.ID,
			}
			for _, opt := range req.Options {
				q.Options = append(q.Options, model.Option{
					Text:      opt.Text,
					IsCorrect: opt.IsCorrect,
				})
			}
			if err := tx.Create(&q).Error; err != nil {
				return util.TranslateDBError(err)
			}
			created = append(created, q)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AssessmentService) ListQuestions(assessmentID uint) ([]model.Question, error) {
	if _, err := s.AssessmentRepo.FindByID(assessmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return s.AssessmentRepo.ListQuestions(assessmentID)
}

func (s *AssessmentService) GetQuestion(assessmentID, questionID uint) (*model.Question, error) {
	q, err := s.AssessmentRepo.FindQuestion(assessmentID, questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	return q, err
}

// UpdateQuestion replaces the question text, type and options. Options
// are rewritten wholesale; answers referencing the question survive.
func (s *AssessmentService) UpdateQuestion(assessmentID, questionID, requestingUserID uint, req QuestionRequest) (*model.Question, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if a.Course == nil || a.Course.InstructorID != requestingUserID {
		return nil, util.ErrForbidden
	}

	q, err := s.AssessmentRepo.FindQuestion(assessmentID, questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		q.Text = req.Text
		q.QuestionType = req.QuestionType
		if err := tx.Where("question_id = ?", q.ID).Delete(&model.Option{}).Error; err != nil {
			return util.TranslateDBError(err)
		}
		q.Options = nil
		for _, opt := range req.Options {
			q.Options = append(q.Options, model.Option{
				Text:       opt.Text,
				IsCorrect:  opt.IsCorrect,
				QuestionID: q.ID,
			})
		}
		if err := tx.Save(q).Error; err != nil {
			return util.TranslateDBError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// DeleteQuestion leans on the store-level cascades declared for
// question -> option and question -> answer.
func (s *AssessmentService) DeleteQuestion(assessmentID, questionID, requestingUserID uint) error {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	} else if err != nil {
		return err
	}
	if a.Course == nil || a.Course.InstructorID != requestingUserID {
		return util.ErrForbidden
	}

	q, err := s.AssessmentRepo.FindQuestion(assessmentID, questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	} else if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", q.ID).Delete(&model.StudentAnswer{}).Error; err != nil {
			return util.TranslateDBError(err)
		}
		if err := tx.Where("question_id = ?", q.ID).Delete(&model.Option{}).Error; err != nil {
			return util.TranslateDBError(err)
		}
		if err := tx.Delete(&model.Question{}, q.ID).Error; err != nil {
			return util.TranslateDBError(err)
		}
		return nil
	})
}

// SubmitAnswers records a student's answers. AnsweredOn is the server
// clock for every row of the submission.
func (s *AssessmentService) SubmitAnswers(userID uint, submissions []AnswerSubmission) ([]model.StudentAnswer, error) {
	now := time.Now().UTC()
	answers := make([]model.StudentAnswer, 0, len(submissions))
	for _, sub := range submissions {
		var q model.Question
		if err := s.DB.First(&q, sub.QuestionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrNotFound
			}
			return nil, err
		}
		answers = append(answers, model.StudentAnswer{
			QuestionID: sub.QuestionID,
			UserID:     userID,
			AnswerText: sub.AnswerText,
			AnsweredOn: now,
		})
	}

	if len(answers) == 0 {
		return nil, nil
	}
	if err := s.AssessmentRepo.CreateAnswers(answers); err != nil {
		return nil, util.TranslateDBError(err)
	}
	return answers, nil
}

// Responses returns all answers for an assessment, for its instructor.
func (s *AssessmentService) Responses(assessmentID, requestingUserID uint) ([]model.StudentAnswer, error) {
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if a.Course == nil || a.Course.InstructorID != requestingUserID {
		return nil, util.ErrForbidden
	}
	return s.AssessmentRepo.ListAnswersByAssessment(assessmentID)
}
