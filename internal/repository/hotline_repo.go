package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"erisync/backend/internal/model"
)

// HotlineConfigRepository 热线配置数据访问接口
type HotlineConfigRepository interface {
	GetByTeam(ctx context.Context, teamID string) (*model.HotlineConfig, error)
	Upsert(ctx context.Context, cfg *model.HotlineConfig) error
}

// HotlineDraftRepository 热线草稿数据访问接口
type HotlineDraftRepository interface {
	BatchCreate(ctx context.Context, drafts []model.HotlineDraft) error
	ListByTeam(ctx context.Context, teamID string) ([]model.HotlineDraft, error)
	ListByTeams(ctx context.Context, teamIDs []string) ([]model.HotlineDraft, error)
	DeleteByTeams(ctx context.Context, teamIDs []string) error
}

// HotlineAssignmentRepository 热线正式记录数据访问接口
type HotlineAssignmentRepository interface {
	BatchCreate(ctx context.Context, assignments []model.HotlineAssignment) error
	ListByTeamAndRange(ctx context.Context, teamID string, start, end time.Time) ([]model.HotlineAssignment, error)
	LastAssignedDates(ctx context.Context, teamID string) (map[string]time.Time, error)
}

// ── HotlineConfig Repository 实现 ──

type hotlineConfigRepo struct {
	db *gorm.DB
}

func NewHotlineConfigRepo(db *gorm.DB) HotlineConfigRepository {
	return &hotlineConfigRepo{db: db}
}

func (r *hotlineConfigRepo) GetByTeam(ctx context.Context, teamID string) (*model.HotlineConfig, error) {
	var cfg model.HotlineConfig
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *hotlineConfigRepo) Upsert(ctx context.Context, cfg *model.HotlineConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "team_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"min_staff_required", "weekday_start", "weekday_end",
				"friday_start", "friday_end", "updated_by", "updated_at",
			}),
		}).
		Create(cfg).Error
}

// ── HotlineDraft Repository 实现 ──

type hotlineDraftRepo struct {
	db *gorm.DB
}

func NewHotlineDraftRepo(db *gorm.DB) HotlineDraftRepository {
	return &hotlineDraftRepo{db: db}
}

func (r *hotlineDraftRepo) BatchCreate(ctx context.Context, drafts []model.HotlineDraft) error {
	if len(drafts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&drafts).Error
}

func (r *hotlineDraftRepo) ListByTeam(ctx context.Context, teamID string) ([]model.HotlineDraft, error) {
	var drafts []model.HotlineDraft
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("duty_date ASC, start_time ASC").
		Find(&drafts).Error
	return drafts, err
}

func (r *hotlineDraftRepo) ListByTeams(ctx context.Context, teamIDs []string) ([]model.HotlineDraft, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	var drafts []model.HotlineDraft
	err := r.db.WithContext(ctx).
		Where("team_id IN ?", teamIDs).
		Order("duty_date ASC, start_time ASC").
		Find(&drafts).Error
	return drafts, err
}

func (r *hotlineDraftRepo) DeleteByTeams(ctx context.Context, teamIDs []string) error {
	if len(teamIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("team_id IN ?", teamIDs).
		Delete(&model.HotlineDraft{}).Error
}

// ── HotlineAssignment Repository 实现 ──

type hotlineAssignmentRepo struct {
	db *gorm.DB
}

func NewHotlineAssignmentRepo(db *gorm.DB) HotlineAssignmentRepository {
	return &hotlineAssignmentRepo{db: db}
}

func (r *hotlineAssignmentRepo) BatchCreate(ctx context.Context, assignments []model.HotlineAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&assignments).Error
}

func (r *hotlineAssignmentRepo) ListByTeamAndRange(ctx context.Context, teamID string, start, end time.Time) ([]model.HotlineAssignment, error) {
	var assignments []model.HotlineAssignment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ? AND duty_date BETWEEN ? AND ?",
			teamID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("duty_date ASC, start_time ASC").
		Find(&assignments).Error
	return assignments, err
}

// LastAssignedDates 查询团队内每个成员最近一次值班日期
// 从未值班的成员不出现在结果中
func (r *hotlineAssignmentRepo) LastAssignedDates(ctx context.Context, teamID string) (map[string]time.Time, error) {
	type row struct {
		UserID   string
		LastDate time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.HotlineAssignment{}).
		Select("user_id, MAX(duty_date) AS last_date").
		Where("team_id = ?", teamID).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		result[r.UserID] = r.LastDate
	}
	return result, nil
}
