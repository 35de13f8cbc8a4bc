package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/service"
	"erisync/backend/pkg/response"
)

// HotlineHandler 热线轮值模块 HTTP 处理器
type HotlineHandler struct {
	hotlineSvc service.HotlineService
}

// NewHotlineHandler 创建 HotlineHandler
func NewHotlineHandler(hotlineSvc service.HotlineService) *HotlineHandler {
	return &HotlineHandler{hotlineSvc: hotlineSvc}
}

// GetEligibleMembers 查询团队值班候选人
// GET /api/v1/hotline/teams/:id/eligible-members
func (h *HotlineHandler) GetEligibleMembers(c *gin.Context) {
	result, err := h.hotlineSvc.GetEligibleMembers(c.Request.Context(), c.Param("id"))
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

type rotationRunFunc func(ctx context.Context, req *dto.GenerateRotationRequest, callerID string) (*dto.RotationRunResponse, error)

// runRotation 三种运行模式共用的解析与错误映射
func (h *HotlineHandler) runRotation(c *gin.Context, run rotationRunFunc) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateRotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := run(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 15001, "日期范围无效")
		case errors.Is(err, service.ErrRangeTooLarge):
			response.BadRequest(c, 15002, "日期范围超出允许的最大跨度")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// PreviewRotation 预览轮值（不落库）
// POST /api/v1/hotline/rotation/preview
func (h *HotlineHandler) PreviewRotation(c *gin.Context) {
	h.runRotation(c, h.hotlineSvc.PreviewRotation)
}

// GenerateDrafts 生成轮值并保存草稿
// POST /api/v1/hotline/rotation/drafts
func (h *HotlineHandler) GenerateDrafts(c *gin.Context) {
	h.runRotation(c, h.hotlineSvc.GenerateDrafts)
}

// ApplyDirect 直接应用模式：值班时段并入排班条目
// POST /api/v1/hotline/rotation/apply
func (h *HotlineHandler) ApplyDirect(c *gin.Context) {
	h.runRotation(c, h.hotlineSvc.ApplyDirect)
}

// ListDrafts 查询团队草稿
// GET /api/v1/hotline/drafts
func (h *HotlineHandler) ListDrafts(c *gin.Context) {
	var req dto.DraftListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.hotlineSvc.ListDrafts(c.Request.Context(), req.TeamID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Finalize 草稿转正
// POST /api/v1/hotline/finalize
func (h *HotlineHandler) Finalize(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.hotlineSvc.Finalize(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrNoDraftsToFinalize) {
			response.BadRequest(c, 15003, "所选团队没有可转正的草稿")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListAssignments 查询正式值班记录
// GET /api/v1/hotline/assignments
func (h *HotlineHandler) ListAssignments(c *gin.Context) {
	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.hotlineSvc.ListAssignments(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 15001, "日期范围无效")
		case errors.Is(err, service.ErrRangeTooLarge):
			response.BadRequest(c, 15002, "日期范围超出允许的最大跨度")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// GetConfig 查询团队热线配置
// GET /api/v1/hotline/teams/:id/config
func (h *HotlineHandler) GetConfig(c *gin.Context) {
	result, err := h.hotlineSvc.GetConfig(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrHotlineConfigNotFound) {
			response.NotFound(c, 15004, "该团队未配置热线值班")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateConfig 更新团队热线配置
// PUT /api/v1/hotline/teams/:id/config
func (h *HotlineHandler) UpdateConfig(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateHotlineConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.hotlineSvc.UpdateConfig(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.NotFound(c, 13001, "团队不存在")
		case errors.Is(err, service.ErrInvalidTimeWindow):
			response.BadRequest(c, 15005, "值班时段无效：开始时间必须早于结束时间")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
