package controller

import (
	"mentora_backend/internal/service"
	"mentora_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type StudySessionController struct {
	SessionService *service.StudySessionService
}

func NewStudySessionController(sessionService *service.StudySessionService) *StudySessionController {
	return &StudySessionController{SessionService: sessionService}
}

type StartSessionRequest struct {
	Subject string `json:"subject"`
}

// StartSession godoc
// @Summary 开始学习计时
// @Description 同一时刻只允许一个进行中的时段，已有的先自动收尾
// @Tags 学习时段
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartSessionRequest true "学习主题"
// @Success 201 {object} util.Response{data=model.StudySession} "创建成功"
// @Router /api/sessions/start [post]
func (c *StudySessionController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.StartSession(claims.UserID, req.Subject)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// StopSession godoc
// @Summary 结束学习计时
// @Tags 学习时段
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.StudySession} "成功"
// @Failure 404 {object} util.Response "没有进行中的学习时段"
// @Router /api/sessions/stop [post]
func (c *StudySessionController) StopSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.SessionService.StopSession(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, session)
}

// ListSessions godoc
// @Summary 学习时段列表
// @Description 按时间区间查询，默认最近 7 天
// @Tags 学习时段
// @Produce  json
// @Security ApiKeyAuth
// @Param   from query string false "开始日期 2006-01-02"
// @Param   to query string false "结束日期 2006-01-02"
// @Success 200 {object} util.Response{data=[]model.StudySession} "成功"
// @Router /api/sessions [get]
func (c *StudySessionController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	now := time.Now()
	from := now.AddDate(0, 0, -7)
	to := now
	if v := ctx.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = t
		}
	}
	if v := ctx.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = t.AddDate(0, 0, 1)
		}
	}

	sessions, err := c.SessionService.ListSessions(claims.UserID, from, to)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	minutes, err := c.SessionService.TotalMinutes(claims.UserID, from, to)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"sessions": sessions, "totalMinutes": minutes})
}
