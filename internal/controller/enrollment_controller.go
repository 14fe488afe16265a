package controller

import (
	"edusync_backend/internal/service"
	"edusync_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	Service *service.EnrollmentService
}

func NewEnrollmentController(svc *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{Service: svc}
}

type enrollRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

// @Summary Enroll the calling student in a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body enrollRequest true "course to enroll in"
// @Success 201 {object} util.Response
// @Router /enrollments/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req enrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.Service.Enroll(claims.UserID, req.CourseID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, enrollment)
}

// @Summary Withdraw the calling student from a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body enrollRequest true "course to withdraw from"
// @Success 200 {object} util.Response
// @Router /enrollments/withdraw [delete]
func (c *EnrollmentController) Withdraw(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req enrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.Withdraw(claims.UserID, req.CourseID); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Students enrolled in a course
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /enrollments/course/{courseId} [get]
func (c *EnrollmentController) EnrolledStudents(ctx *gin.Context) {
	courseID, err := strconv.Atoi(ctx.Param("courseId"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	enrollments, err := c.Service.EnrolledStudents(uint(courseID))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}

// @Summary Courses the calling student is enrolled in
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /enrollments/mine [get]
func (c *EnrollmentController) EnrolledCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.Service.EnrolledCourses(claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}
