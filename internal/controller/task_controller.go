package controller

import (
	"mentora_backend/internal/service"
	"mentora_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// CreateTask godoc
// @Summary 新建任务
// @Description 新建学习任务，可选关联规划步骤
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TaskRequest true "任务内容"
// @Success 201 {object} util.Response{data=model.Task} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.CreateTask(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, task)
}

// ListTasks godoc
// @Summary 任务列表
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Task} "成功"
// @Router /api/tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.TaskService.ListTasks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// GetTodayTasks godoc
// @Summary 今日任务
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Task} "成功"
// @Router /api/tasks/today [get]
func (c *TaskController) GetTodayTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.TaskService.GetTodayTasks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// UpdateTask godoc
// @Summary 更新任务
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Param   body body service.TaskRequest true "任务内容"
// @Success 200 {object} util.Response{data=model.Task} "成功"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.UpdateTask(claims.UserID, id, req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, task)
}

// StartTask godoc
// @Summary 开始任务
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Success 200 {object} util.Response{data=model.Task} "成功"
// @Router /api/tasks/{id}/start [post]
func (c *TaskController) StartTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	task, err := c.TaskService.StartTask(claims.UserID, id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, task)
}

// CompleteTask godoc
// @Summary 完成任务
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Success 200 {object} util.Response{data=model.Task} "成功"
// @Router /api/tasks/{id}/complete [post]
func (c *TaskController) CompleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	task, err := c.TaskService.CompleteTask(claims.UserID, id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, task)
}

// FailTask godoc
// @Summary 任务失败反馈
// @Description 记录失败原因与心情，任务退回待办
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Param   body body service.TaskFeedbackRequest true "反馈内容"
// @Success 200 {object} util.Response{data=model.Task} "成功"
// @Router /api/tasks/{id}/fail [post]
func (c *TaskController) FailTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.TaskFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.FailTask(claims.UserID, id, req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, task)
}

// DeleteTask godoc
// @Summary 删除任务
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.TaskService.DeleteTask(claims.UserID, id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
