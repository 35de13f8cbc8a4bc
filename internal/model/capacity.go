package model

// CapacityConfig 覆盖容量配置表 — 对应 capacity_configs（每团队一条）
// 覆盖缺口分析以此为每日最低在岗人数基准
type CapacityConfig struct {
	ConfigID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"config_id"`
	TeamID          string `gorm:"type:uuid;not null;uniqueIndex"                 json:"team_id"`
	MinStaff        int    `gorm:"not null;default:1"                             json:"min_staff"`
	WeekendMinStaff int    `gorm:"not null;default:0"                             json:"weekend_min_staff"`
	IncludeWeekends bool   `gorm:"not null;default:false"                         json:"include_weekends"`
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// TableName 指定表名
func (CapacityConfig) TableName() string { return "capacity_configs" }
