package dto

// ── 热线轮值模块 DTO ──

// EligibleMemberResponse 值班候选人响应
type EligibleMemberResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	LastAssignedDate *string `json:"last_assigned_date,omitempty"` // 从未值班为 null
}

// GenerateRotationRequest 生成轮值请求（预览 / 存草稿 / 直接应用共用）
type GenerateRotationRequest struct {
	TeamIDs []string `json:"team_ids" binding:"required,min=1,dive,uuid"`
	DateRangeRequest
}

// RotationAssignmentResponse 单条轮值分配
type RotationAssignmentResponse struct {
	TeamID         string  `json:"team_id"`
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name"`
	DutyDate       string  `json:"duty_date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	IsSubstitute   bool    `json:"is_substitute"`
	OriginalUserID *string `json:"original_user_id,omitempty"`
}

// 团队轮值结果状态
const (
	TeamRunStatusOK            = "ok"
	TeamRunStatusConfigMissing = "config_missing"     // 软失败：无热线配置，跳过
	TeamRunStatusNoEligible    = "no_eligible_members" // 软失败：无候选人，跳过（区别于查询失败）
	TeamRunStatusFailed        = "failed"             // 存储层失败，仅该团队中止
)

// TeamRotationResult 单团队轮值结果
type TeamRotationResult struct {
	TeamID      string                       `json:"team_id"`
	TeamName    string                       `json:"team_name,omitempty"`
	Status      string                       `json:"status"`
	Assignments []RotationAssignmentResponse `json:"assignments,omitempty"`
	Warnings    []string                     `json:"warnings,omitempty"`
	Error       string                       `json:"error,omitempty"`
}

// RotationRunResponse 一次轮值运行的整体结果
type RotationRunResponse struct {
	Teams       []TeamRotationResult `json:"teams"`
	TotalSlots  int                  `json:"total_slots"`
	FilledSlots int                  `json:"filled_slots"`
	Cancelled   bool                 `json:"cancelled,omitempty"` // 运行被取消，结果为部分输出
}

// DraftListRequest 草稿列表查询参数
type DraftListRequest struct {
	TeamID string `form:"team_id" binding:"required,uuid"`
}

// DraftResponse 草稿响应
type DraftResponse struct {
	ID             string  `json:"id"`
	TeamID         string  `json:"team_id"`
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name,omitempty"`
	DutyDate       string  `json:"duty_date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	IsSubstitute   bool    `json:"is_substitute"`
	OriginalUserID *string `json:"original_user_id,omitempty"`
}

// FinalizeRequest 草稿转正请求
type FinalizeRequest struct {
	TeamIDs []string `json:"team_ids" binding:"required,min=1,dive,uuid"`
}

// FinalizeResponse 草稿转正结果
type FinalizeResponse struct {
	FinalizedCount int `json:"finalized_count"`
}

// AssignmentListRequest 正式值班记录查询参数
type AssignmentListRequest struct {
	TeamID string `form:"team_id" binding:"required,uuid"`
	DateRangeRequest
}

// AssignmentResponse 正式值班记录响应
type AssignmentResponse struct {
	ID             string  `json:"id"`
	TeamID         string  `json:"team_id"`
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name,omitempty"`
	DutyDate       string  `json:"duty_date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Year           int     `json:"year"`
	WeekIndex      int     `json:"week_index"`
	IsSubstitute   bool    `json:"is_substitute"`
	OriginalUserID *string `json:"original_user_id,omitempty"`
}

// HotlineConfigResponse 热线配置响应
type HotlineConfigResponse struct {
	TeamID           string `json:"team_id"`
	MinStaffRequired int    `json:"min_staff_required"`
	WeekdayStart     string `json:"weekday_start"`
	WeekdayEnd       string `json:"weekday_end"`
	FridayStart      string `json:"friday_start"`
	FridayEnd        string `json:"friday_end"`
}

// UpdateHotlineConfigRequest 更新热线配置请求
type UpdateHotlineConfigRequest struct {
	MinStaffRequired int    `json:"min_staff_required" binding:"required,min=1,max=20"`
	WeekdayStart     string `json:"weekday_start"      binding:"required,datetime=15:04"`
	WeekdayEnd       string `json:"weekday_end"        binding:"required,datetime=15:04"`
	FridayStart      string `json:"friday_start"       binding:"required,datetime=15:04"`
	FridayEnd        string `json:"friday_end"         binding:"required,datetime=15:04"`
}
