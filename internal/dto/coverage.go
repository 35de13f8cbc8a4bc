package dto

// ── 覆盖缺口分析模块 DTO ──

// CoverageAnalysisRequest 覆盖分析请求
type CoverageAnalysisRequest struct {
	TeamIDs []string `form:"team_ids" binding:"required,min=1,dive,uuid"`
	DateRangeRequest
}

// 缺口严重程度
const (
	GapSeverityCritical = "critical" // 当日无人在岗
	GapSeverityWarning  = "warning"  // 在岗人数低于最低要求
)

// CoverageGapResponse 单日覆盖缺口
type CoverageGapResponse struct {
	TeamID    string `json:"team_id"`
	Date      string `json:"date"`
	Required  int    `json:"required"`
	Actual    int    `json:"actual"`
	Deficit   int    `json:"deficit"`
	Severity  string `json:"severity"` // critical | warning
	IsWeekend bool   `json:"is_weekend"`
	IsHoliday bool   `json:"is_holiday"`
}

// TeamCoverageResponse 单团队覆盖分析结果
type TeamCoverageResponse struct {
	TeamID          string                `json:"team_id"`
	TeamName        string                `json:"team_name,omitempty"`
	DaysTotal       int                   `json:"days_total"`
	DaysCovered     int                   `json:"days_covered"`
	CoveragePercent float64               `json:"coverage_percent"` // days_covered / days_total × 100
	Gaps            []CoverageGapResponse `json:"gaps"`
}

// CoverageAnalysisResponse 覆盖分析整体响应
type CoverageAnalysisResponse struct {
	Teams []TeamCoverageResponse `json:"teams"`
}

// CapacityConfigResponse 容量配置响应
type CapacityConfigResponse struct {
	TeamID          string `json:"team_id"`
	MinStaff        int    `json:"min_staff"`
	WeekendMinStaff int    `json:"weekend_min_staff"`
	IncludeWeekends bool   `json:"include_weekends"`
}

// UpdateCapacityConfigRequest 更新容量配置请求
type UpdateCapacityConfigRequest struct {
	MinStaff        int  `json:"min_staff"         binding:"required,min=0,max=100"`
	WeekendMinStaff int  `json:"weekend_min_staff" binding:"min=0,max=100"`
	IncludeWeekends bool `json:"include_weekends"`
}
