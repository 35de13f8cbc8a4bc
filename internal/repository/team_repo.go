package repository

import (
	"context"

	"gorm.io/gorm"

	"erisync/backend/internal/model"
	pkgerrors "erisync/backend/pkg/errors"
)

// TeamRepository 团队数据访问接口
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	List(ctx context.Context) ([]model.Team, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountMembers(ctx context.Context, teamID string) (int64, error)
}

type teamRepo struct {
	db *gorm.DB
}

func NewTeamRepo(db *gorm.DB) TeamRepository {
	return &teamRepo{db: db}
}

func (r *teamRepo) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Where("team_id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) List(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}

func (r *teamRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Where("team_id IN ?", ids).
		Find(&teams).Error
	return teams, err
}

func (r *teamRepo) Update(ctx context.Context, team *model.Team) error {
	oldVersion := team.Version
	result := r.db.WithContext(ctx).
		Model(team).
		Where("team_id = ? AND version = ?", team.TeamID, oldVersion).
		Updates(map[string]interface{}{
			"name":        team.Name,
			"description": team.Description,
			"is_active":   team.IsActive,
			"updated_by":  team.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	team.Version = oldVersion + 1
	return nil
}

func (r *teamRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("team_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"deleted_by": deletedBy,
		}).Error
}

func (r *teamRepo) CountMembers(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}
