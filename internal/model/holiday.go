package model

import "time"

// Holiday 公共节假日表 — 对应 holidays
// 仅按国家维度存储（不区分地区）
type Holiday struct {
	HolidayID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	Country     string    `gorm:"type:char(2);not null"                          json:"country"`
	HolidayDate time.Time `gorm:"type:date;not null"                             json:"holiday_date"`
	Name        string    `gorm:"type:varchar(200);not null"                     json:"name"`
	BaseModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }
