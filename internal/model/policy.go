package model

// DeleteRule is the action the store takes on dependents when a parent
// row is deleted.
type DeleteRule string

const (
	Cascade  DeleteRule = "CASCADE"
	NoAction DeleteRule = "NO ACTION"
)

// ForeignKeyPolicy declares the delete rule for one relationship. The
// orchestrator and the schema must agree on this table: every NO ACTION
// edge is one the orchestrator has to resolve itself, in order.
type ForeignKeyPolicy struct {
	Child    string
	Parent   string
	OnDelete DeleteRule
}

// DeletePolicies is the authoritative delete-rule table. Control-plane
// entities (users, courses, enrollments, assessments) are protected
// from silent mass deletion; questions, options and answer records are
// expendable once their owner is gone.
var DeletePolicies = []ForeignKeyPolicy{
	{Child: "enrollments.user_id", Parent: "users", OnDelete: NoAction},
	{Child: "enrollments.course_id", Parent: "courses", OnDelete: NoAction},
	{Child: "courses.instructor_id", Parent: "users", OnDelete: NoAction},
	{Child: "assessments.course_id", Parent: "courses", OnDelete: NoAction},
	{Child: "questions.assessment_id", Parent: "assessments", OnDelete: Cascade},
	{Child: "options.question_id", Parent: "questions", OnDelete: Cascade},
	{Child: "student_answers.question_id", Parent: "questions", OnDelete: Cascade},
	{Child: "student_answers.user_id", Parent: "users", OnDelete: Cascade},
}

// DeleteRuleFor looks up the policy for a child column. Second result
// is false when the relationship is not declared.
func DeleteRuleFor(child string) (DeleteRule, bool) {
	for _, p := range DeletePolicies {
		if p.Child == child {
			return p.OnDelete, true
		}
	}
	return "", false
}
