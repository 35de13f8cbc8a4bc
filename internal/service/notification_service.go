package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/model"
	"erisync/backend/internal/repository"
)

// 通知类型
const (
	NotificationTypeSwap = "swap"
	NotificationTypeDuty = "duty"
)

// 关联对象类型
const (
	RelatedTypeSwapRequest       = "swap_request"
	RelatedTypeHotlineAssignment = "hotline_assignment"
)

// Notifier 站内通知发送接口，供其他 Service 依赖
// 发送失败只记日志不回传：通知不应阻断主流程
type Notifier interface {
	NotifySwap(ctx context.Context, userID, title, content, swapRequestID string)
	NotifyDuty(ctx context.Context, userID, title, content, assignmentID string)
}

// NotificationService 通知业务接口
type NotificationService interface {
	Notifier
	List(ctx context.Context, req *dto.NotificationListRequest, userID string) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) NotifySwap(ctx context.Context, userID, title, content, swapRequestID string) {
	if !s.wantsSwapNotification(ctx, userID) {
		return
	}
	related := RelatedTypeSwapRequest
	s.create(ctx, &model.Notification{
		UserID:      userID,
		Type:        NotificationTypeSwap,
		Title:       title,
		Content:     content,
		RelatedType: &related,
		RelatedID:   &swapRequestID,
	})
}

func (s *notificationService) NotifyDuty(ctx context.Context, userID, title, content, assignmentID string) {
	if !s.wantsDutyReminder(ctx, userID) {
		return
	}
	related := RelatedTypeHotlineAssignment
	s.create(ctx, &model.Notification{
		UserID:      userID,
		Type:        NotificationTypeDuty,
		Title:       title,
		Content:     content,
		RelatedType: &related,
		RelatedID:   &assignmentID,
	})
}

func (s *notificationService) create(ctx context.Context, n *model.Notification) {
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("写入站内通知失败",
			zap.String("user_id", n.UserID),
			zap.String("type", n.Type),
			zap.Error(err))
	}
}

// 偏好缺失视为全部开启（与表默认值一致）
func (s *notificationService) wantsSwapNotification(ctx context.Context, userID string) bool {
	pref, err := s.repo.Notification.GetPreference(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询通知偏好失败", zap.String("user_id", userID), zap.Error(err))
		}
		return true
	}
	return pref.SwapNotification
}

func (s *notificationService) wantsDutyReminder(ctx context.Context, userID string) bool {
	pref, err := s.repo.Notification.GetPreference(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询通知偏好失败", zap.String("user_id", userID), zap.Error(err))
		}
		return true
	}
	return pref.DutyReminder
}

func (s *notificationService) List(ctx context.Context, req *dto.NotificationListRequest, userID string) ([]dto.NotificationResponse, int64, error) {
	list, total, err := s.repo.Notification.ListByUser(ctx, userID, req.UnreadOnly, req.Offset(), req.Limit())
	if err != nil {
		s.logger.Error("查询通知失败", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		n := &list[i]
		result = append(result, dto.NotificationResponse{
			ID:          n.NotificationID,
			Type:        n.Type,
			Title:       n.Title,
			Content:     n.Content,
			IsRead:      n.IsRead,
			RelatedType: n.RelatedType,
			RelatedID:   n.RelatedID,
			CreatedAt:   n.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.repo.Notification.MarkRead(ctx, id, userID); err != nil {
		s.logger.Error("标记通知已读失败", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.Notification.MarkAllRead(ctx, userID); err != nil {
		s.logger.Error("全部标记已读失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}
