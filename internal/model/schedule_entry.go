package model

import "time"

// 排班条目可用性状态
const (
	AvailabilityAvailable = "available"
	AvailabilityAbsent    = "absent"
	AvailabilityUnknown   = "unknown"
)

// 排班条目活动类别
const (
	ActivityWork        = "work"
	ActivityVacation    = "vacation"
	ActivityFlextime    = "flextime"
	ActivityOther       = "other"
	ActivityOutOfOffice = "out_of_office"
)

// 排班条目来源
const (
	EntrySourceManual      = "manual"
	EntrySourceHotlineAuto = "hotline_auto" // 热线轮值直接应用模式自动生成
)

// ScheduleEntry 排班条目表 — 对应 schedule_entries
// 每人每天至多一条；time_blocks 为结构化 JSONB 时段列表
type ScheduleEntry struct {
	EntryID            string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	UserID             string        `gorm:"type:uuid;not null"                             json:"user_id"`
	TeamID             string        `gorm:"type:uuid;not null"                             json:"team_id"`
	EntryDate          time.Time     `gorm:"type:date;not null"                             json:"entry_date"`
	AvailabilityStatus string        `gorm:"type:varchar(20);not null;default:'available'"  json:"availability_status"` // available | absent | unknown
	ActivityType       string        `gorm:"type:varchar(20);not null;default:'work'"       json:"activity_type"`       // work | vacation | flextime | other | out_of_office
	ShiftType          string        `gorm:"type:varchar(20);not null;default:'normal'"     json:"shift_type"`          // normal | early | late
	TimeBlocks         TimeBlockList `gorm:"type:jsonb;not null;default:'[]'"               json:"time_blocks"`
	Source             string        `gorm:"type:varchar(20);not null;default:'manual'"     json:"source"` // manual | hotline_auto
	VersionedModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }

// DefaultShiftBlock 按班次类型合成默认班次时段
// 直接应用模式下条目无任何时间块时使用
func DefaultShiftBlock(shiftType string) TimeBlock {
	switch shiftType {
	case "early":
		return TimeBlock{StartTime: "06:00", EndTime: "14:30", BlockType: BlockTypeShift}
	case "late":
		return TimeBlock{StartTime: "13:30", EndTime: "22:00", BlockType: BlockTypeShift}
	default:
		return TimeBlock{StartTime: "09:00", EndTime: "17:30", BlockType: BlockTypeShift}
	}
}
