package model

import "time"

// Enrollment joins a student to a course. The composite primary key is
// what makes duplicate enrollment a store-level conflict.
// swagger:model Enrollment
type Enrollment struct {
	UserID         uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	CourseID       uint      `gorm:"primaryKey;autoIncrement:false" json:"courseId"`
	EnrollmentDate time.Time `json:"enrollmentDate"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
