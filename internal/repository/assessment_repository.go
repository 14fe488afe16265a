package repository

import (
	"edusync_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Preload("Course").First(&a, id).Error
	return &a, err
}

// FindByIDWithGraph loads the assessment with its questions and their
// options for the deletion orchestrator.
func (r *AssessmentRepository) FindByIDWithGraph(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.
		Preload("Course").
		Preload("Questions").
		Preload("Questions.Options").
		First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) List(page, limit int) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64
	query := r.DB.Model(&model.Assessment{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Course").Order("created_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

func (r *AssessmentRepository) Save(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

// Questions

func (r *AssessmentRepository) FindQuestion(assessmentID, questionID uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Options").
		Where("id = ? AND assessment_id = ?", questionID, assessmentID).
		First(&q).Error
	return &q, err
}

func (r *AssessmentRepository) ListQuestions(assessmentID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Preload("Options").
		Where("assessment_id = ?", assessmentID).
		Order("id asc").
		Find(&qs).Error
	return qs, err
}

// Answers

func (r *AssessmentRepository) CreateAnswers(answers []model.StudentAnswer) error {
	return r.DB.Create(&answers).Error
}

func (r *AssessmentRepository) ListAnswersByAssessment(assessmentID uint) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	err := r.DB.
		Joins("JOIN questions ON questions.id = student_answers.question_id").
		Where("questions.assessment_id = ?", assessmentID).
		Preload("Question").
		Preload("User").
		Find(&answers).Error
	return answers, err
}
