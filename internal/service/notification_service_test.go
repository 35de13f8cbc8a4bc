package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/model"
)

func setupTestNotificationService() (NotificationService, *testRepos) {
	repos := newTestRepos()
	svc := NewNotificationService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestNotificationService_NotifySwap_DefaultOn(t *testing.T) {
	svc, repos := setupTestNotificationService()

	// 无偏好记录 = 全部开启
	svc.NotifySwap(context.Background(), "u-li", "收到换班申请", "请及时响应", "swap-1")

	if len(repos.notification.notifications) != 1 {
		t.Fatalf("期望写入 1 条通知，实际 %d", len(repos.notification.notifications))
	}
	n := repos.notification.notifications[0]
	if n.Type != NotificationTypeSwap || n.RelatedID == nil || *n.RelatedID != "swap-1" {
		t.Errorf("通知字段错误: %+v", n)
	}
}

func TestNotificationService_NotifyDuty_RespectsPreference(t *testing.T) {
	svc, repos := setupTestNotificationService()
	repos.notification.preferences["u-li"] = &model.NotificationPreference{
		UserID: "u-li", SwapNotification: true, DutyReminder: false,
	}

	svc.NotifyDuty(context.Background(), "u-li", "明日值班提醒", "你明天值班", "assign-1")
	if len(repos.notification.notifications) != 0 {
		t.Errorf("关闭值班提醒后不应写入通知")
	}

	svc.NotifySwap(context.Background(), "u-li", "收到换班申请", "请及时响应", "swap-1")
	if len(repos.notification.notifications) != 1 {
		t.Errorf("换班通知开关独立于值班提醒")
	}
}

func TestNotificationService_ListAndMarkRead(t *testing.T) {
	svc, _ := setupTestNotificationService()
	svc.NotifySwap(context.Background(), "u-li", "标题一", "内容一", "swap-1")
	svc.NotifySwap(context.Background(), "u-li", "标题二", "内容二", "swap-2")
	svc.NotifySwap(context.Background(), "u-wang", "别人的", "内容", "swap-3")

	list, total, err := svc.List(context.Background(), &dto.NotificationListRequest{}, "u-li")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("期望 2 条本人通知，实际 %d", total)
	}

	if err := svc.MarkRead(context.Background(), list[0].ID, "u-li"); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}

	_, unread, err := svc.List(context.Background(), &dto.NotificationListRequest{UnreadOnly: true}, "u-li")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if unread != 1 {
		t.Errorf("标记一条后未读应剩 1，实际 %d", unread)
	}

	if err := svc.MarkAllRead(context.Background(), "u-li"); err != nil {
		t.Fatalf("MarkAllRead 应成功: %v", err)
	}
	_, unread, _ = svc.List(context.Background(), &dto.NotificationListRequest{UnreadOnly: true}, "u-li")
	if unread != 0 {
		t.Errorf("全部已读后未读应为 0，实际 %d", unread)
	}

	// 他人的通知不受影响
	_, otherUnread, _ := svc.List(context.Background(), &dto.NotificationListRequest{UnreadOnly: true}, "u-wang")
	if otherUnread != 1 {
		t.Errorf("他人通知不应被标记，实际未读 %d", otherUnread)
	}
}

func TestNotificationService_MarkRead_OtherUsersNotification(t *testing.T) {
	svc, repos := setupTestNotificationService()
	svc.NotifySwap(context.Background(), "u-li", "标题", "内容", "swap-1")
	id := repos.notification.notifications[0].NotificationID

	// 归属校验在查询条件里：别人标记不生效
	if err := svc.MarkRead(context.Background(), id, "u-wang"); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}
	if repos.notification.notifications[0].IsRead {
		t.Errorf("他人不应能标记通知已读")
	}
}
