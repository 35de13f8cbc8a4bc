package dto

// ── 节假日模块 DTO ──

// HolidayListRequest 节假日列表查询参数
type HolidayListRequest struct {
	Country string `form:"country" binding:"omitempty,len=2"`
	Year    int    `form:"year"    binding:"omitempty,min=2000,max=2100"`
}

// CreateHolidayRequest 创建节假日请求
type CreateHolidayRequest struct {
	Country string `json:"country" binding:"required,len=2"`
	Date    string `json:"date"    binding:"required,datetime=2006-01-02"`
	Name    string `json:"name"    binding:"required,min=1,max=200"`
}

// ImportHolidayICSRequest 从 ICS 日历导入节假日请求
type ImportHolidayICSRequest struct {
	Country string `json:"country" binding:"required,len=2"`
	ICS     string `json:"ics"     binding:"required"` // ICS 文件原文
}

// ImportHolidayICSResponse ICS 导入结果
type ImportHolidayICSResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"` // 已存在或无法解析的事件
	Warnings []string `json:"warnings,omitempty"`
}

// HolidayResponse 节假日响应
type HolidayResponse struct {
	ID      string `json:"id"`
	Country string `json:"country"`
	Date    string `json:"date"`
	Name    string `json:"name"`
}
