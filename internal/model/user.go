package model

type UserRole string

const (
	Student  UserRole = "Student"
	Educator UserRole = "Educator"
)

// ValidRole reports whether r is one of the closed set of roles. Roles
// are checked once, when a user is created or its role is updated.
func ValidRole(r UserRole) bool {
	return r == Student || r == Educator
}

// swagger:model User
type User struct {
	BaseModel
	Username string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email    string   `gorm:"size:100;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;not null" json:"role"`

	// Deleting a user must not silently take courses or enrollments
	// with it; answer records go with their author.
	Courses        []Course        `gorm:"foreignKey:InstructorID;constraint:OnDelete:NO ACTION" json:"-"`
	Enrollments    []Enrollment    `gorm:"foreignKey:UserID;constraint:OnDelete:NO ACTION" json:"-"`
	StudentAnswers []StudentAnswer `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}
