package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ── JSONB 时间块自定义类型 ──

// 时间块类型
const (
	BlockTypeShift   = "shift"   // 常规班次
	BlockTypeHotline = "hotline" // 热线值班时段
)

// TimeBlock 一天内的单个工作/值班时段
type TimeBlock struct {
	StartTime     string `json:"start_time"` // "HH:MM"
	EndTime       string `json:"end_time"`   // "HH:MM"
	BlockType     string `json:"block_type"` // shift | hotline
	AutoGenerated bool   `json:"auto_generated,omitempty"`
}

// TimeBlockList 对应 PostgreSQL JSONB 列，实现 GORM Scanner/Valuer 接口。
type TimeBlockList []TimeBlock

// Scan 将 JSONB 文本解析为时间块列表。
func (l *TimeBlockList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("TimeBlockList.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*l = TimeBlockList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Value 将时间块列表序列化为 JSONB 文本。
func (l TimeBlockList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// SoftDeleteModel 支持软删除的审计字段
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"    json:"deleted_at,omitempty"`
	DeletedBy *string        `gorm:"type:uuid" json:"deleted_by,omitempty"`
}

// VersionedModel 支持乐观锁的软删除模型
type VersionedModel struct {
	SoftDeleteModel
	Version int `gorm:"not null;default:1" json:"version"`
}
