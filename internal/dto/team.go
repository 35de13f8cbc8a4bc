package dto

// TeamBrief 团队简要信息
type TeamBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamResponse 团队响应
type TeamResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	MemberCount int    `json:"member_count,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CreateTeamRequest 创建团队请求
type CreateTeamRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateTeamRequest 更新团队请求
type UpdateTeamRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

// SetHotlineMembersRequest 设置热线值班候选人请求
// 整体替换：列表内成员标记为可值班，其余成员取消标记
type SetHotlineMembersRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,dive,uuid"`
}

// MemberBrief 成员简要信息
type MemberBrief struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Country    string `json:"country"`
}
