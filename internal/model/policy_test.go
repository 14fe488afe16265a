package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeletePolicies(t *testing.T) {
	cases := []struct {
		child string
		rule  DeleteRule
	}{
		{"enrollments.user_id", NoAction},
		{"enrollments.course_id", NoAction},
		{"courses.instructor_id", NoAction},
		{"assessments.course_id", NoAction},
		{"questions.assessment_id", Cascade},
		{"options.question_id", Cascade},
		{"student_answers.question_id", Cascade},
		{"student_answers.user_id", Cascade},
	}

	assert.Len(t, DeletePolicies, len(cases))

	for _, tc := range cases {
		rule, ok := DeleteRuleFor(tc.child)
		assert.True(t, ok, tc.child)
		assert.Equal(t, tc.rule, rule, tc.child)
	}
}

func TestDeleteRuleFor_UndeclaredEdge(t *testing.T) {
	_, ok := DeleteRuleFor("courses.id")
	assert.False(t, ok)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(Student))
	assert.True(t, ValidRole(Educator))
	assert.False(t, ValidRole("Admin"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("student"))
}
