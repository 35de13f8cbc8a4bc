package dto

// UserResponse 用户信息响应
type UserResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	EmployeeID      string     `json:"employee_id"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	Country         string     `json:"country"`
	HotlineEligible bool       `json:"hotline_eligible"`
	Team            *TeamBrief `json:"team,omitempty"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	TeamID  string `form:"team_id" binding:"omitempty,uuid"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	PaginationRequest
}

// UpdateUserRequest 更新用户请求（admin 或本人）
type UpdateUserRequest struct {
	Name    *string `json:"name"    binding:"omitempty,min=1,max=100"`
	Email   *string `json:"email"   binding:"omitempty,email"`
	Country *string `json:"country" binding:"omitempty,len=2"`
}
