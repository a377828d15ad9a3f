package controller

import (
	"mentora_backend/internal/service"
	"mentora_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NoteController struct {
	NoteService *service.NoteService
}

func NewNoteController(noteService *service.NoteService) *NoteController {
	return &NoteController{NoteService: noteService}
}

// CreateNote godoc
// @Summary 新建便签
// @Tags 便签
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.NoteRequest true "便签内容"
// @Success 201 {object} util.Response{data=model.Note} "创建成功"
// @Router /api/notes [post]
func (c *NoteController) CreateNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.NoteService.CreateNote(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, note)
}

// ListNotes godoc
// @Summary 便签列表
// @Description 置顶便签在前，其余按更新时间倒序
// @Tags 便签
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Note} "成功"
// @Router /api/notes [get]
func (c *NoteController) ListNotes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	notes, err := c.NoteService.ListNotes(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, notes)
}

// GetNote godoc
// @Summary 便签详情
// @Tags 便签
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "便签ID"
// @Success 200 {object} util.Response{data=model.Note} "成功"
// @Failure 404 {object} util.Response "便签不存在"
// @Router /api/notes/{id} [get]
func (c *NoteController) GetNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	note, err := c.NoteService.GetNote(claims.UserID, id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, note)
}

// UpdateNote godoc
// @Summary 更新便签
// @Tags 便签
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "便签ID"
// @Param   body body service.NoteRequest true "便签内容"
// @Success 200 {object} util.Response{data=model.Note} "成功"
// @Failure 404 {object} util.Response "便签不存在"
// @Router /api/notes/{id} [put]
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.NoteService.UpdateNote(claims.UserID, id, req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, note)
}

// DeleteNote godoc
// @Summary 删除便签
// @Tags 便签
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "便签ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/notes/{id} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.NoteService.DeleteNote(claims.UserID, id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
