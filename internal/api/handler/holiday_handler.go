package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/service"
	"erisync/backend/pkg/response"
)

// HolidayHandler 节假日模块 HTTP 处理器
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler 创建 HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// ListHolidays 节假日列表
// GET /api/v1/holidays
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	var req dto.HolidayListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.holidaySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// CreateHoliday 创建节假日
// POST /api/v1/holidays
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.holidaySvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.BadRequest(c, 14001, "日期格式无效")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// ImportICS 从 ICS 日历导入节假日
// POST /api/v1/holidays/import-ics
func (h *HolidayHandler) ImportICS(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ImportHolidayICSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.holidaySvc.ImportICS(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidICS) {
			response.BadRequest(c, 14002, "ICS 日历内容无法解析")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// DeleteHoliday 删除节假日
// DELETE /api/v1/holidays/:id
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	if err := h.holidaySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
