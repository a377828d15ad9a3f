package controller

import (
	"errors"
	"mentora_backend/internal/model"
	"mentora_backend/internal/service"
	"mentora_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	PlanService *service.PlanService
}

func NewPlanController(planService *service.PlanService) *PlanController {
	return &PlanController{PlanService: planService}
}

// 规划相关错误到 HTTP 状态码的统一映射
func respondPlanError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPlanNotFound),
		errors.Is(err, util.ErrStepNotFound),
		errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrVersionConflict):
		util.Conflict(ctx, "规划已被其他请求修改，请刷新后重试")
	case errors.Is(err, util.ErrInvalidAIResponse):
		util.UnprocessableEntity(ctx, err.Error())
	case errors.Is(err, util.ErrAIUnavailable):
		util.ServiceUnavailable(ctx, "AI 服务暂不可用，请稍后重试")
	case errors.Is(err, service.ErrInvalidTransition):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// GenerateStudyPlan godoc
// @Summary 生成学习规划
// @Description 基于最近（或指定）一次评估生成学习规划，旧的活跃规划自动归档
// @Tags 规划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.GeneratePlanRequest true "生成参数"
// @Success 201 {object} util.Response{data=service.GenerationResult} "创建成功"
// @Failure 404 {object} util.Response "评估记录不存在"
// @Failure 422 {object} util.Response "AI 返回结构不合格"
// @Failure 503 {object} util.Response "AI 服务不可用"
// @Router /api/plans/study/generate [post]
func (c *PlanController) GenerateStudyPlan(ctx *gin.Context) {
	c.generate(ctx, model.PlanKindStudy)
}

// GenerateCareerPlan godoc
// @Summary 生成职业规划
// @Description 基于最近（或指定）一次评估生成职业规划，旧的活跃规划自动归档
// @Tags 规划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.GeneratePlanRequest true "生成参数"
// @Success 201 {object} util.Response{data=service.GenerationResult} "创建成功"
// @Failure 404 {object} util.Response "评估记录不存在"
// @Failure 422 {object} util.Response "AI 返回结构不合格"
// @Failure 503 {object} util.Response "AI 服务不可用"
// @Router /api/plans/career/generate [post]
func (c *PlanController) GenerateCareerPlan(ctx *gin.Context) {
	c.generate(ctx, model.PlanKindCareer)
}

func (c *PlanController) generate(ctx *gin.Context, kind model.PlanKind) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GeneratePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PlanService.Generate(ctx.Request.Context(), claims.UserID, kind, req)
	if err != nil {
		respondPlanError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ListPlans godoc
// @Summary 规划列表
// @Description 当前用户的规划列表，可按类型过滤
// @Tags 规划
// @Produce  json
// @Security ApiKeyAuth
// @Param   kind query string false "规划类型" Enums(study, career)
// @Success 200 {object} util.Response{data=[]model.Plan} "成功"
// @Router /api/plans [get]
func (c *PlanController) ListPlans(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	plans, err := c.PlanService.ListPlans(claims.UserID, model.PlanKind(ctx.Query("kind")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// GetPlan godoc
// @Summary 规划详情
// @Description 规划及其步骤、检查点、技能要求、资源的完整视图
// @Tags 规划
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "规划ID"
// @Success 200 {object} util.Response{data=model.Plan} "成功"
// @Failure 404 {object} util.Response "规划不存在"
// @Router /api/plans/{id} [get]
func (c *PlanController) GetPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	plan, err := c.PlanService.GetPlan(ctx.Param("id"), claims.UserID)
	if err != nil {
		respondPlanError(ctx, err)
		return
	}
	util.Success(ctx, plan)
}

type UpdateCheckpointRequest struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

// UpdateCheckpoint godoc
// @Summary 勾选/取消检查点
// @Description 更新检查点完成状态并自底向上重算步骤与规划进度
// @Tags 规划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "规划ID"
// @Param   checkpointId path string true "检查点ID"
// @Param   body body UpdateCheckpointRequest true "完成状态"
// @Success 200 {object} util.Response{data=service.PlanSummary} "成功"
// @Failure 404 {object} util.Response "检查点不存在"
// @Failure 409 {object} util.Response "版本冲突"
// @Router /api/plans/{id}/checkpoints/{checkpointId} [patch]
func (c *PlanController) UpdateCheckpoint(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateCheckpointRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.PlanService.UpdateCheckpoint(claims.UserID, ctx.Param("id"), ctx.Param("checkpointId"), *req.IsCompleted)
	if err != nil {
		respondPlanError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

type UpdateSkillRequest struct {
	Status model.SkillStatus `json:"status" binding:"required"`
}

// UpdateSkill godoc
// @Summary 更新技能达成状态
// @Description 存在技能要求的步骤进度完全由技能口径决定
// @Tags 规划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "规划ID"
// @Param   skillId path string true "技能ID"
// @Param   body body UpdateSkillRequest true "技能状态"
// @Success 200 {object} util.Response{data=service.PlanSummary} "成功"
// @Failure 404 {object} util.Response "技能不存在"
// @Failure 409 {object} util.Response "版本冲突"
// @Router /api/plans/{id}/skills/{skillId} [patch]
func (c *PlanController) UpdateSkill(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.PlanService.UpdateSkill(claims.UserID, ctx.Param("id"), ctx.Param("skillId"), req.Status)
	if err != nil {
		respondPlanError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// OpenResource godoc
// @Summary 标记资源已打开
// @Tags 规划
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "规划ID"
// @Param   resourceId path string true "资源ID"
// @Success 200 {object} util.Response{data=service.PlanSummary} "成功"
// @Failure 404 {object} util.Response "资源不存在"
// @Router /api/plans/{id}/resources/{resourceId}/open [post]
func (c *PlanController) OpenResource(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.PlanService.OpenResource(claims.UserID, ctx.Param("id"), ctx.Param("resourceId"))
	if err != nil {
		respondPlanError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// SkipStep godoc
// @Summary 跳过步骤
// @Description 步骤进度冻结且仍计入规划平均值
// @Tags 规划
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "规划ID"
// @Param   stepId path string true "步骤ID"
// @Success 200 {object} util.Response{data=service.PlanSummary} "成功"
// @Failure 404 {object} util.Response "步骤不存在"
// @Failure 409 {object} util.Response "步骤已处于终态"
// @Router /api/plans/{id}/steps/{stepId}/skip [post]
func (c *PlanController) SkipStep(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.PlanService.SkipStepByID(claims.UserID, ctx.Param("id"), ctx.Param("stepId"))
	if err != nil {
		respondPlanError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// ArchivePlan godoc
// @Summary 归档规划
// @Description 归档后规划进入终态，不再接受任何进度更新
// @Tags 规划
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "规划ID"
// @Success 200 {object} util.Response{data=service.PlanSummary} "成功"
// @Failure 404 {object} util.Response "规划不存在"
// @Router /api/plans/{id}/archive [post]
func (c *PlanController) ArchivePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.PlanService.Archive(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondPlanError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
