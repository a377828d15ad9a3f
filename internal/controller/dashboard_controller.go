package controller

import (
	"mentora_backend/internal/service"
	"mentora_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary 用户仪表盘
// @Description 今日任务、活跃规划、本周学习时长与出勤综合得分
// @Tags 仪表盘
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Dashboard} "成功"
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.GetUserDashboard(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// GetAttendanceSummary godoc
// @Summary 出勤汇总
// @Description 区间内任务完成率与事件出勤率的加权综合得分，默认最近 7 天
// @Tags 仪表盘
// @Produce  json
// @Security ApiKeyAuth
// @Param   from query string false "开始日期 2006-01-02"
// @Param   to query string false "结束日期 2006-01-02"
// @Success 200 {object} util.Response{data=service.AttendanceSummary} "成功"
// @Router /api/dashboard/attendance [get]
func (c *DashboardController) GetAttendanceSummary(ctx *gin.Context) {
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

	summary, err := c.DashboardService.GetAttendanceSummary(ctx.Request.Context(), claims.UserID, from, to)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
