package model

import "time"

// swagger:model StudentAnswer
type StudentAnswer struct {
	BaseModel
	QuestionID uint      `gorm:"index;not null" json:"questionId"`
	UserID     uint      `gorm:"index;not null" json:"userId"`
	AnswerText string    `gorm:"type:text;not null" json:"answerText"`
	AnsweredOn time.Time `json:"answeredOn"`

	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}
