package model

// User 用户表 — 对应 users
type User struct {
	UserID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name               string `gorm:"type:varchar(100);not null"                     json:"name"`
	EmployeeID         string `gorm:"type:varchar(20);not null"                      json:"employee_id"`
	Email              string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(20);not null;default:'member'"     json:"role"` // admin | leader | member
	TeamID             string `gorm:"type:uuid;not null"                             json:"team_id"`
	Country            string `gorm:"type:char(2);not null;default:'DE'"             json:"country"` // 节假日按本国判定
	HotlineEligible    bool   `gorm:"not null;default:false"                         json:"hotline_eligible"`
	MustChangePassword bool   `gorm:"not null;default:false"                         json:"must_change_password"`
	VersionedModel

	// 关联
	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
