package repository

import (
	"context"

	"gorm.io/gorm"

	"erisync/backend/internal/model"
	pkgerrors "erisync/backend/pkg/errors"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*model.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.User, error)
	ListByTeam(ctx context.Context, teamID string) ([]model.User, error)
	ListHotlineEligible(ctx context.Context, teamID string) ([]model.User, error)
	List(ctx context.Context, teamID, keyword string, offset, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	SetHotlineEligible(ctx context.Context, teamID string, userIDs []string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Team").
		Where("employee_id = ?", employeeID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", ids).
		Find(&users).Error
	return users, err
}

func (r *userRepo) ListByTeam(ctx context.Context, teamID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) ListHotlineEligible(ctx context.Context, teamID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND hotline_eligible = ?", teamID, true).
		Find(&users).Error
	return users, err
}

func (r *userRepo) List(ctx context.Context, teamID, keyword string, offset, limit int) ([]model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})
	if teamID != "" {
		query = query.Where("team_id = ?", teamID)
	}
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name ILIKE ? OR employee_id ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.
		Preload("Team").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	oldVersion := user.Version
	result := r.db.WithContext(ctx).
		Model(user).
		Where("user_id = ? AND version = ?", user.UserID, oldVersion).
		Updates(map[string]interface{}{
			"name":                 user.Name,
			"email":                user.Email,
			"country":              user.Country,
			"password_hash":        user.PasswordHash,
			"must_change_password": user.MustChangePassword,
			"updated_by":           user.UpdatedBy,
			"version":              oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	user.Version = oldVersion + 1
	return nil
}

// SetHotlineEligible 整体替换团队的值班候选人标记
func (r *userRepo) SetHotlineEligible(ctx context.Context, teamID string, userIDs []string) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Model(&model.User{}).
		Where("team_id = ?", teamID).
		Update("hotline_eligible", false).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	return tx.Model(&model.User{}).
		Where("team_id = ? AND user_id IN ?", teamID, userIDs).
		Update("hotline_eligible", true).Error
}
