package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"erisync/backend/internal/model"
	pkgerrors "erisync/backend/pkg/errors"
)

// ScheduleEntryRepository 排班条目数据访问接口
type ScheduleEntryRepository interface {
	Create(ctx context.Context, entry *model.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*model.ScheduleEntry, error)
	ListByUsersAndRange(ctx context.Context, userIDs []string, start, end time.Time) ([]model.ScheduleEntry, error)
	ListByTeamAndRange(ctx context.Context, teamID string, start, end time.Time) ([]model.ScheduleEntry, error)
	Update(ctx context.Context, entry *model.ScheduleEntry) error
	UpdateTimeBlocks(ctx context.Context, entryID string, blocks model.TimeBlockList) error
	ReassignUser(ctx context.Context, entryID, newUserID string, updatedBy string) error
	DeleteAutoGenerated(ctx context.Context, teamID string, start, end time.Time) error
}

type scheduleEntryRepo struct {
	db *gorm.DB
}

func NewScheduleEntryRepo(db *gorm.DB) ScheduleEntryRepository {
	return &scheduleEntryRepo{db: db}
}

func (r *scheduleEntryRepo) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *scheduleEntryRepo) GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleEntryRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date = ?", userID, date.Format("2006-01-02")).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleEntryRepo) ListByUsersAndRange(ctx context.Context, userIDs []string, start, end time.Time) ([]model.ScheduleEntry, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND entry_date BETWEEN ? AND ?",
			userIDs, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) ListByTeamAndRange(ctx context.Context, teamID string, start, end time.Time) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND entry_date BETWEEN ? AND ?",
			teamID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) Update(ctx context.Context, entry *model.ScheduleEntry) error {
	oldVersion := entry.Version
	result := r.db.WithContext(ctx).
		Model(entry).
		Where("entry_id = ? AND version = ?", entry.EntryID, oldVersion).
		Updates(map[string]interface{}{
			"availability_status": entry.AvailabilityStatus,
			"activity_type":       entry.ActivityType,
			"shift_type":          entry.ShiftType,
			"time_blocks":         entry.TimeBlocks,
			"source":              entry.Source,
			"updated_by":          entry.UpdatedBy,
			"version":             oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	entry.Version = oldVersion + 1
	return nil
}

func (r *scheduleEntryRepo) UpdateTimeBlocks(ctx context.Context, entryID string, blocks model.TimeBlockList) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("entry_id = ?", entryID).
		Update("time_blocks", blocks).Error
}

// ReassignUser 换班审批通过后将条目转移给目标成员
func (r *scheduleEntryRepo) ReassignUser(ctx context.Context, entryID, newUserID string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("entry_id = ?", entryID).
		Updates(map[string]interface{}{
			"user_id":    newUserID,
			"updated_by": updatedBy,
		}).Error
}

// DeleteAutoGenerated 删除范围内由直接应用模式自动生成的条目
func (r *scheduleEntryRepo) DeleteAutoGenerated(ctx context.Context, teamID string, start, end time.Time) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("team_id = ? AND source = ? AND entry_date BETWEEN ? AND ?",
			teamID, model.EntrySourceHotlineAuto, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Delete(&model.ScheduleEntry{}).Error
}
