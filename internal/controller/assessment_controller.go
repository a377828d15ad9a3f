package controller

import (
	"errors"
	"mentora_backend/internal/service"
	"mentora_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// ListQuestions godoc
// @Summary 获取评估问卷题目
// @Description 按顺序返回启用中的问卷题目
// @Tags 评估
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.AssessmentQuestion} "成功"
// @Router /api/assessment/questions [get]
func (c *AssessmentController) ListQuestions(ctx *gin.Context) {
	includeInactive := ctx.Query("all") == "true"
	questions, err := c.AssessmentService.ListQuestions(includeInactive)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// CreateQuestion godoc
// @Summary 新建问卷题目
// @Description 管理员新建评估问卷题目
// @Tags 评估
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.AssessmentQuestionRequest true "题目内容"
// @Success 201 {object} util.Response{data=model.AssessmentQuestion} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/assessment/questions [post]
func (c *AssessmentController) CreateQuestion(ctx *gin.Context) {
	var req service.AssessmentQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.AssessmentService.CreateQuestion(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary 更新问卷题目
// @Tags 评估
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body service.AssessmentQuestionRequest true "题目内容"
// @Success 200 {object} util.Response{data=model.AssessmentQuestion} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/assessment/questions/{id} [put]
func (c *AssessmentController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.AssessmentQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.AssessmentService.UpdateQuestion(uint(id), req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary 删除问卷题目
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/assessment/questions/{id} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.AssessmentService.DeleteQuestion(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// SubmitAttempt godoc
// @Summary 提交评估答卷
// @Description 落库答卷并构建规划生成所需的上下文快照
// @Tags 评估
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubmitAttemptRequest true "答卷内容"
// @Success 201 {object} util.Response{data=model.AssessmentAttempt} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/assessment/attempts [post]
func (c *AssessmentController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.AssessmentService.SubmitAttempt(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// GetLatestAttempt godoc
// @Summary 获取最近一次评估
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.AssessmentAttempt} "成功"
// @Failure 404 {object} util.Response "尚未提交过评估"
// @Router /api/assessment/attempts/latest [get]
func (c *AssessmentController) GetLatestAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.AssessmentService.GetLatestAttempt(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempt)
}

// GetAttempt godoc
// @Summary 获取指定评估记录
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "评估ID"
// @Success 200 {object} util.Response{data=model.AssessmentAttempt} "成功"
// @Failure 404 {object} util.Response "评估不存在"
// @Router /api/assessment/attempts/{id} [get]
func (c *AssessmentController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	attempt, err := c.AssessmentService.GetAttempt(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempt)
}
