package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/service"
	"erisync/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportHotlinePlan 导出值班计划
// GET /api/v1/export/hotline-plan?team_id=xxx&start_date=...&end_date=...
func (h *ExportHandler) ExportHotlinePlan(c *gin.Context) {
	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.HotlinePlanXLSX(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.NotFound(c, 13001, "团队不存在")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 19001, "日期范围无效")
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
