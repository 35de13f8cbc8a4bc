package model

import "time"

// HotlineConfig 热线值班配置表 — 对应 hotline_configs（每团队一条）
type HotlineConfig struct {
	ConfigID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"config_id"`
	TeamID           string `gorm:"type:uuid;not null;uniqueIndex"                 json:"team_id"`
	MinStaffRequired int    `gorm:"not null;default:1"                             json:"min_staff_required"`
	WeekdayStart     string `gorm:"type:varchar(5);not null;default:'08:00'"       json:"weekday_start"`
	WeekdayEnd       string `gorm:"type:varchar(5);not null;default:'17:00'"       json:"weekday_end"`
	FridayStart      string `gorm:"type:varchar(5);not null;default:'08:00'"       json:"friday_start"`
	FridayEnd        string `gorm:"type:varchar(5);not null;default:'15:00'"       json:"friday_end"`
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// TableName 指定表名
func (HotlineConfig) TableName() string { return "hotline_configs" }

// WindowFor 返回某天适用的值班时段：周五使用 friday 窗口，其余工作日使用 weekday 窗口
func (c *HotlineConfig) WindowFor(day time.Time) (start, end string) {
	if day.Weekday() == time.Friday {
		return c.FridayStart, c.FridayEnd
	}
	return c.WeekdayStart, c.WeekdayEnd
}

// HotlineDraft 热线值班草稿表 — 对应 hotline_drafts
// 草稿供人工预览，按团队整体替换，最终由 Finalize 转为正式记录
type HotlineDraft struct {
	DraftID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"draft_id"`
	TeamID         string    `gorm:"type:uuid;not null"                             json:"team_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	DutyDate       time.Time `gorm:"type:date;not null"                             json:"duty_date"`
	StartTime      string    `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime        string    `gorm:"type:varchar(5);not null"                       json:"end_time"`
	IsSubstitute   bool      `gorm:"not null;default:false"                         json:"is_substitute"`
	OriginalUserID *string   `gorm:"type:uuid"                                      json:"original_user_id,omitempty"` // 轮到但不可用的首选人
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	CreatedBy      *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (HotlineDraft) TableName() string { return "hotline_drafts" }

// HotlineAssignment 热线值班正式记录表 — 对应 hotline_assignments
type HotlineAssignment struct {
	AssignmentID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	TeamID         string    `gorm:"type:uuid;not null"                             json:"team_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	DutyDate       time.Time `gorm:"type:date;not null"                             json:"duty_date"`
	StartTime      string    `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime        string    `gorm:"type:varchar(5);not null"                       json:"end_time"`
	Year           int       `gorm:"not null"                                       json:"year"`
	WeekIndex      int       `gorm:"not null"                                       json:"week_index"` // ISO 周序号
	IsSubstitute   bool      `gorm:"not null;default:false"                         json:"is_substitute"`
	OriginalUserID *string   `gorm:"type:uuid"                                      json:"original_user_id,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	CreatedBy      *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (HotlineAssignment) TableName() string { return "hotline_assignments" }
