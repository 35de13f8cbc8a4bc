package dto

// ── 换班模块 DTO ──

// CreateSwapRequest 发起换班申请
type CreateSwapRequest struct {
	ScheduleEntryID string `json:"schedule_entry_id" binding:"required,uuid"`
	TargetMemberID  string `json:"target_member_id"  binding:"required,uuid"`
	Reason          string `json:"reason"            binding:"omitempty,max=500"`
}

// RespondSwapRequest 目标成员响应换班申请
type RespondSwapRequest struct {
	Accept bool `json:"accept"`
}

// RejectSwapRequest 审批驳回换班申请
type RejectSwapRequest struct {
	Reason string `json:"reason" binding:"required,min=2,max=500"`
}

// SwapListRequest 换班申请列表查询参数
type SwapListRequest struct {
	Status string `form:"status"  binding:"omitempty,oneof=pending reviewing completed rejected cancelled"`
	TeamID string `form:"team_id" binding:"omitempty,uuid"`
	PaginationRequest
}

// SwapRequestResponse 换班申请响应
type SwapRequestResponse struct {
	ID                string       `json:"id"`
	ScheduleEntryID   string       `json:"schedule_entry_id"`
	EntryDate         string       `json:"entry_date,omitempty"`
	Applicant         *MemberBrief `json:"applicant,omitempty"`
	TargetMember      *MemberBrief `json:"target_member,omitempty"`
	Reason            string       `json:"reason,omitempty"`
	Status            string       `json:"status"`
	TargetRespondedAt *string      `json:"target_responded_at,omitempty"`
	ApprovedAt        *string      `json:"approved_at,omitempty"`
	RejectReason      string       `json:"reject_reason,omitempty"`
	CreatedAt         string       `json:"created_at"`
}
