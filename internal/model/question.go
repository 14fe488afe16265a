package model

// swagger:model Question
type Question struct {
	BaseModel
	Text         string `gorm:"type:text;not null" json:"text"`
	QuestionType string `gorm:"size:50" json:"questionType"` // multiple-choice, true/false, short-answer
	AssessmentID uint   `gorm:"index;not null" json:"assessmentId"`

	Options        []Option        `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	StudentAnswers []StudentAnswer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Option
type Option struct {
	BaseModel
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
}

func (Option) TableName() string {
	return "options"
}
