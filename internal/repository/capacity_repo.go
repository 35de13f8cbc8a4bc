package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"erisync/backend/internal/model"
)

// CapacityConfigRepository 容量配置数据访问接口
type CapacityConfigRepository interface {
	GetByTeam(ctx context.Context, teamID string) (*model.CapacityConfig, error)
	ListByTeams(ctx context.Context, teamIDs []string) ([]model.CapacityConfig, error)
	Upsert(ctx context.Context, cfg *model.CapacityConfig) error
}

type capacityConfigRepo struct {
	db *gorm.DB
}

func NewCapacityConfigRepo(db *gorm.DB) CapacityConfigRepository {
	return &capacityConfigRepo{db: db}
}

func (r *capacityConfigRepo) GetByTeam(ctx context.Context, teamID string) (*model.CapacityConfig, error) {
	var cfg model.CapacityConfig
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *capacityConfigRepo) ListByTeams(ctx context.Context, teamIDs []string) ([]model.CapacityConfig, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	var cfgs []model.CapacityConfig
	err := r.db.WithContext(ctx).
		Where("team_id IN ?", teamIDs).
		Find(&cfgs).Error
	return cfgs, err
}

func (r *capacityConfigRepo) Upsert(ctx context.Context, cfg *model.CapacityConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "team_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"min_staff", "weekend_min_staff", "include_weekends",
				"updated_by", "updated_at",
			}),
		}).
		Create(cfg).Error
}
