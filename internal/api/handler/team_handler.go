package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/service"
	"erisync/backend/pkg/response"
)

// TeamHandler 团队模块 HTTP 处理器
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler 创建 TeamHandler
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// CreateTeam 创建团队
// POST /api/v1/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.teamSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// GetTeam 查询团队
// GET /api/v1/teams/:id
func (h *TeamHandler) GetTeam(c *gin.Context) {
	result, err := h.teamSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 13001, "团队不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListTeams 团队列表
// GET /api/v1/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	result, err := h.teamSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateTeam 更新团队
// PUT /api/v1/teams/:id
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.teamSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 13001, "团队不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// DeleteTeam 删除团队（软删除）
// DELETE /api/v1/teams/:id
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.teamSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 13001, "团队不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetMembers 团队成员列表
// GET /api/v1/teams/:id/members
func (h *TeamHandler) GetMembers(c *gin.Context) {
	result, err := h.teamSvc.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 13001, "团队不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// SetHotlineMembers 设置热线值班候选人（整体替换）
// PUT /api/v1/teams/:id/hotline-members
func (h *TeamHandler) SetHotlineMembers(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetHotlineMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.teamSvc.SetHotlineMembers(c.Request.Context(), c.Param("id"), &req, callerID); err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.NotFound(c, 13001, "团队不存在")
		case errors.Is(err, service.ErrMemberNotInTeam):
			response.BadRequest(c, 13002, "所选成员不属于该团队")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
