package dto

// PaginationRequest 分页查询参数
type PaginationRequest struct {
	Page     int `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// Offset 计算偏移量
func (p *PaginationRequest) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

// Limit 计算每页条数
func (p *PaginationRequest) Limit() int {
	if p.PageSize < 1 {
		return 20
	}
	return p.PageSize
}

// DateRangeRequest 日期范围查询参数（闭区间，格式 2006-01-02）
type DateRangeRequest struct {
	StartDate string `form:"start_date" json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   json:"end_date"   binding:"required,datetime=2006-01-02"`
}
