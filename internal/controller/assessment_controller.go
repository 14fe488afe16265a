package controller

import (
	"edusync_backend/internal/service"
	"edusync_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// @Summary List assessments
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	page, limit := pagination(ctx)

	as, total, err := c.Service.ListAssessments(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  as,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Get an assessment
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	a, err := c.Service.GetAssessment(uint(id))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, a)
}

// @Summary Create an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AssessmentRequest true "assessment payload"
// @Success 201 {object} util.Response
// @Router /assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.CreateAssessment(claims.UserID, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, a)
}

// @Summary Update an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param body body service.AssessmentRequest true "assessment payload"
// @Success 200 {object} util.Response
// @Router /assessments/{id} [put]
func (c *AssessmentController) UpdateAssessment(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.UpdateAssessment(uint(id), claims.UserID, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, a)
}

// @Summary Delete an assessment and its dependents
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /assessments/{id} [delete]
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.DeleteAssessment(ctx.Request.Context(), uint(id), claims.UserID); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Add questions to an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param body body []service.QuestionRequest true "questions"
// @Success 201 {object} util.Response
// @Router /assessments/{id}/questions [post]
func (c *AssessmentController) AddQuestions(ctx *gin.Context) {
	assessmentID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var reqs []service.QuestionRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	qs, err := c.Service.AddQuestions(uint(assessmentID), claims.UserID, reqs)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, qs)
}

// @Summary List an assessment's questions
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /assessments/{id}/questions [get]
func (c *AssessmentController) ListQuestions(ctx *gin.Context) {
	assessmentID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	qs, err := c.Service.ListQuestions(uint(assessmentID))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, qs)
}

// @Summary Get a question
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param questionId path int true "question id"
// @Success 200 {object} util.Response
// @Router /assessments/{id}/questions/{questionId} [get]
func (c *AssessmentController) GetQuestion(ctx *gin.Context) {
	assessmentID, err1 := strconv.Atoi(ctx.Param("id"))
	questionID, err2 := strconv.Atoi(ctx.Param("questionId"))
	if err1 != nil || err2 != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	q, err := c.Service.GetQuestion(uint(assessmentID), uint(questionID))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Update a question
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param questionId path int true "question id"
// @Param body body service.QuestionRequest true "question payload"
// @Success 200 {object} util.Response
// @Router /assessments/{id}/questions/{questionId} [put]
func (c *AssessmentController) UpdateQuestion(ctx *gin.Context) {
	assessmentID, err1 := strconv.Atoi(ctx.Param("id"))
	questionID, err2 := strconv.Atoi(ctx.Param("questionId"))
	if err1 != nil || err2 != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateQuestion(uint(assessmentID), uint(questionID), claims.UserID, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Delete a question
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param questionId path int true "question id"
// @Success 200 {object} util.Response
// @Router /assessments/{id}/questions/{questionId} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	assessmentID, err1 := strconv.Atoi(ctx.Param("id"))
	questionID, err2 := strconv.Atoi(ctx.Param("questionId"))
	if err1 != nil || err2 != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.DeleteQuestion(uint(assessmentID), uint(questionID), claims.UserID); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Submit answers
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body []service.AnswerSubmission true "answers"
// @Success 201 {object} util.Response
// @Router /assessments/submit [post]
func (c *AssessmentController) SubmitAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var subs []service.AnswerSubmission
	if err := ctx.ShouldBindJSON(&subs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answers, err := c.Service.SubmitAnswers(claims.UserID, subs)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, answers)
}

// @Summary Student responses for an assessment
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /assessments/responses/{id} [get]
func (c *AssessmentController) Responses(ctx *gin.Context) {
	assessmentID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	answers, err := c.Service.Responses(uint(assessmentID), claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, answers)
}
