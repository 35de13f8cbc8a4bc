package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User              UserRepository
	Team              TeamRepository
	ScheduleEntry     ScheduleEntryRepository
	Holiday           HolidayRepository
	HotlineConfig     HotlineConfigRepository
	HotlineDraft      HotlineDraftRepository
	HotlineAssignment HotlineAssignmentRepository
	Capacity          CapacityConfigRepository
	SwapRequest       SwapRequestRepository
	Notification      NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:                db,
		User:              NewUserRepo(db),
		Team:              NewTeamRepo(db),
		ScheduleEntry:     NewScheduleEntryRepo(db),
		Holiday:           NewHolidayRepo(db),
		HotlineConfig:     NewHotlineConfigRepo(db),
		HotlineDraft:      NewHotlineDraftRepo(db),
		HotlineAssignment: NewHotlineAssignmentRepo(db),
		Capacity:          NewCapacityConfigRepo(db),
		SwapRequest:       NewSwapRequestRepo(db),
		Notification:      NewNotificationRepo(db),
	}
}

// WithTx 在单个数据库事务内执行 fn
// 草稿替换、草稿转正、直接应用等「先删后插」操作必须经由此方法，
// 保证删除与插入要么同时生效要么同时回滚
func (r *Repository) WithTx(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// 测试环境下 mock 聚合无真实连接，直接串行执行
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
