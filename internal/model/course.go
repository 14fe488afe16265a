package model

// swagger:model Course
type Course struct {
	BaseModel
	Title        string `gorm:"size:100;not null" json:"title"`
	Description  string `gorm:"size:500" json:"description"`
	InstructorID uint   `gorm:"index;not null" json:"instructorId"`
	Instructor   *User  `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`

	VideoURL     string `gorm:"size:1024" json:"videoUrl,omitempty"`
	ThumbnailURL string `gorm:"size:1024" json:"thumbnailUrl,omitempty"`
	ModulePdfURL string `gorm:"size:1024" json:"modulePdfUrl,omitempty"`

	// Both edges are NO ACTION: dropping a course never wipes its
	// assessments or enrollments behind the store's back. The deletion
	// orchestrator removes them explicitly, in order.
	Assessments []Assessment `gorm:"foreignKey:CourseID;constraint:OnDelete:NO ACTION" json:"assessments,omitempty"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID;constraint:OnDelete:NO ACTION" json:"enrollments,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
