package controller

import (
	"mentora_backend/internal/service"
	"mentora_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	EventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{EventService: eventService}
}

// CreateEvent godoc
// @Summary 新建日程事件
// @Tags 日程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.EventRequest true "事件内容"
// @Success 201 {object} util.Response{data=model.CalendarEvent} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.EventService.CreateEvent(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, event)
}

// ListEvents godoc
// @Summary 日程事件列表
// @Description 按时间区间查询，默认最近 30 天
// @Tags 日程
// @Produce  json
// @Security ApiKeyAuth
// @Param   from query string false "开始日期 2006-01-02"
// @Param   to query string false "结束日期 2006-01-02"
// @Success 200 {object} util.Response{data=[]model.CalendarEvent} "成功"
// @Router /api/events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 30)
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

	events, err := c.EventService.ListEvents(claims.UserID, from, to)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// UpdateEvent godoc
// @Summary 更新日程事件
// @Tags 日程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "事件ID"
// @Param   body body service.EventRequest true "事件内容"
// @Success 200 {object} util.Response{data=model.CalendarEvent} "成功"
// @Failure 404 {object} util.Response "事件不存在"
// @Router /api/events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.EventService.UpdateEvent(claims.UserID, id, req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, event)
}

type AttendanceRequest struct {
	Attended *bool `json:"attended" binding:"required"`
}

// MarkAttendance godoc
// @Summary 标记出勤
// @Description 出勤状态参与仪表盘综合得分计算
// @Tags 日程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "事件ID"
// @Param   body body AttendanceRequest true "出勤状态"
// @Success 200 {object} util.Response{data=model.CalendarEvent} "成功"
// @Failure 404 {object} util.Response "事件不存在"
// @Router /api/events/{id}/attendance [post]
func (c *EventController) MarkAttendance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req AttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.EventService.MarkAttendance(claims.UserID, id, *req.Attended)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, event)
}

// DeleteEvent godoc
// @Summary 删除日程事件
// @Tags 日程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "事件ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.EventService.DeleteEvent(claims.UserID, id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
