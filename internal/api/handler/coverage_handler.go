package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/service"
	"erisync/backend/pkg/response"
)

// CoverageHandler 覆盖分析模块 HTTP 处理器
type CoverageHandler struct {
	coverageSvc service.CoverageService
}

// NewCoverageHandler 创建 CoverageHandler
func NewCoverageHandler(coverageSvc service.CoverageService) *CoverageHandler {
	return &CoverageHandler{coverageSvc: coverageSvc}
}

// Analyze 覆盖缺口分析
// GET /api/v1/coverage/analysis
func (h *CoverageHandler) Analyze(c *gin.Context) {
	var req dto.CoverageAnalysisRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.coverageSvc.Analyze(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.NotFound(c, 13001, "团队不存在")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 16001, "日期范围无效")
		case errors.Is(err, service.ErrRangeTooLarge):
			response.BadRequest(c, 16002, "日期范围超出允许的最大跨度")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// GetCapacity 查询团队容量配置
// GET /api/v1/coverage/teams/:id/capacity
func (h *CoverageHandler) GetCapacity(c *gin.Context) {
	result, err := h.coverageSvc.GetCapacity(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateCapacity 更新团队容量配置
// PUT /api/v1/coverage/teams/:id/capacity
func (h *CoverageHandler) UpdateCapacity(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCapacityConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.coverageSvc.UpdateCapacity(c.Request.Context(), c.Param("id"), &req, callerID)
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
