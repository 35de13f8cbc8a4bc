package repository

import (
	"context"

	"gorm.io/gorm"

	"erisync/backend/internal/model"
	pkgerrors "erisync/backend/pkg/errors"
)

// SwapRequestRepository 换班申请数据访问接口
type SwapRequestRepository interface {
	Create(ctx context.Context, req *model.SwapRequest) error
	GetByID(ctx context.Context, id string) (*model.SwapRequest, error)
	List(ctx context.Context, userID, teamID, status string, offset, limit int) ([]model.SwapRequest, int64, error)
	Update(ctx context.Context, req *model.SwapRequest) error
}

type swapRequestRepo struct {
	db *gorm.DB
}

func NewSwapRequestRepo(db *gorm.DB) SwapRequestRepository {
	return &swapRequestRepo{db: db}
}

func (r *swapRequestRepo) Create(ctx context.Context, req *model.SwapRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *swapRequestRepo) GetByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.WithContext(ctx).
		Preload("ScheduleEntry").
		Preload("Applicant").
		Preload("TargetMember").
		Where("swap_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List 查询换班申请
// userID 非空时仅返回与该用户相关（申请人或目标成员）的申请
func (r *swapRequestRepo) List(ctx context.Context, userID, teamID, status string, offset, limit int) ([]model.SwapRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.SwapRequest{})
	if userID != "" {
		query = query.Where("applicant_id = ? OR target_member_id = ?", userID, userID)
	}
	if teamID != "" {
		query = query.
			Joins("JOIN schedule_entries ON schedule_entries.entry_id = swap_requests.schedule_entry_id").
			Where("schedule_entries.team_id = ?", teamID)
	}
	if status != "" {
		query = query.Where("swap_requests.status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []model.SwapRequest
	err := query.
		Preload("ScheduleEntry").
		Preload("Applicant").
		Preload("TargetMember").
		Order("swap_requests.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reqs).Error
	return reqs, total, err
}

func (r *swapRequestRepo) Update(ctx context.Context, req *model.SwapRequest) error {
	oldVersion := req.Version
	result := r.db.WithContext(ctx).
		Model(req).
		Where("swap_request_id = ? AND version = ?", req.SwapRequestID, oldVersion).
		Updates(map[string]interface{}{
			"status":              req.Status,
			"target_responded_at": req.TargetRespondedAt,
			"approved_at":         req.ApprovedAt,
			"approved_by":         req.ApprovedBy,
			"reject_reason":       req.RejectReason,
			"updated_by":          req.UpdatedBy,
			"version":             oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version = oldVersion + 1
	return nil
}
