package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/service"
	"erisync/backend/pkg/response"
)

// SwapHandler 换班模块 HTTP 处理器
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler 创建 SwapHandler
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// CreateSwap 发起换班申请
// POST /api/v1/swaps
func (h *SwapHandler) CreateSwap(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.swapSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			response.NotFound(c, 17001, "排班条目不存在")
		case errors.Is(err, service.ErrNotEntryOwner):
			response.Forbidden(c, 17002, "只能为自己的排班条目发起换班")
		case errors.Is(err, service.ErrTargetIsSelf):
			response.BadRequest(c, 17003, "不能与自己换班")
		case errors.Is(err, service.ErrTargetNotInTeam):
			response.BadRequest(c, 17004, "目标成员不在同一团队")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// ListSwaps 换班申请列表
// GET /api/v1/swaps
func (h *SwapHandler) ListSwaps(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.SwapListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.swapSvc.List(c.Request.Context(), &req, callerID, role)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, req.Limit())
}

// RespondSwap 目标成员响应换班申请
// POST /api/v1/swaps/:id/respond
func (h *SwapHandler) RespondSwap(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RespondSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.swapSvc.Respond(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.mapSwapError(c, err)
		return
	}

	response.OK(c, result)
}

// ApproveSwap 审批通过换班申请
// POST /api/v1/swaps/:id/approve
func (h *SwapHandler) ApproveSwap(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.swapSvc.Approve(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.mapSwapError(c, err)
		return
	}

	response.OK(c, result)
}

// RejectSwap 审批驳回换班申请
// POST /api/v1/swaps/:id/reject
func (h *SwapHandler) RejectSwap(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RejectSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.swapSvc.Reject(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.mapSwapError(c, err)
		return
	}

	response.OK(c, result)
}

// CancelSwap 申请人撤回换班申请
// POST /api/v1/swaps/:id/cancel
func (h *SwapHandler) CancelSwap(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.swapSvc.Cancel(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.mapSwapError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *SwapHandler) mapSwapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSwapNotFound):
		response.NotFound(c, 17005, "换班申请不存在")
	case errors.Is(err, service.ErrNotSwapTarget):
		response.Forbidden(c, 17006, "只有目标成员可以响应该申请")
	case errors.Is(err, service.ErrNotSwapApplicant):
		response.Forbidden(c, 17007, "只有申请人可以撤回该申请")
	case errors.Is(err, service.ErrSwapNotActionable),
		errors.Is(err, service.ErrSwapAlreadyResolved):
		response.Conflict(c, 17008, "申请当前状态不允许此操作")
	default:
		response.InternalError(c)
	}
}
