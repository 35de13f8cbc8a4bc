package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/model"
)

func setupTestSwapService() (SwapService, *testRepos) {
	repos := newTestRepos()
	notifier := NewNotificationService(repos.toRepository(), zap.NewNop())
	svc := NewSwapService(repos.toRepository(), notifier, zap.NewNop())
	return svc, repos
}

// seedSwapData 准备申请人张三、同队目标李四、外队王五，以及张三的一条排班
func seedSwapData(repos *testRepos) *model.ScheduleEntry {
	repos.team.teams["team-1"] = &model.Team{TeamID: "team-1", Name: "平台组"}
	users := []*model.User{
		{UserID: "u-zhang", Name: "张三", EmployeeID: "E001", TeamID: "team-1", Country: "DE", Role: "member"},
		{UserID: "u-li", Name: "李四", EmployeeID: "E002", TeamID: "team-1", Country: "DE", Role: "member"},
		{UserID: "u-wang", Name: "王五", EmployeeID: "E003", TeamID: "team-2", Country: "DE", Role: "member"},
	}
	for _, u := range users {
		repos.user.users[u.UserID] = u
	}
	return repos.scheduleEntry.add("u-zhang", "team-1", "2025-01-08", model.AvailabilityAvailable, model.ActivityWork)
}

func createSwap(t *testing.T, svc SwapService, entryID string) *dto.SwapRequestResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), &dto.CreateSwapRequest{
		ScheduleEntryID: entryID,
		TargetMemberID:  "u-li",
		Reason:          "当天有私事",
	}, "u-zhang")
	if err != nil {
		t.Fatalf("创建换班申请应成功: %v", err)
	}
	return resp
}

func TestSwapService_Create(t *testing.T) {
	svc, repos := setupTestSwapService()
	entry := seedSwapData(repos)

	resp := createSwap(t, svc, entry.EntryID)

	if resp.Status != SwapStatusPending {
		t.Errorf("新申请状态期望 pending，实际 %s", resp.Status)
	}
	if resp.EntryDate != "2025-01-08" {
		t.Errorf("响应应带出排班日期，实际 %s", resp.EntryDate)
	}
	// 目标成员应收到站内通知
	if len(repos.notification.notifications) != 1 {
		t.Fatalf("期望 1 条通知，实际 %d", len(repos.notification.notifications))
	}
	n := repos.notification.notifications[0]
	if n.UserID != "u-li" || n.Type != NotificationTypeSwap {
		t.Errorf("通知应发给目标成员李四，实际 user=%s type=%s", n.UserID, n.Type)
	}
}

func TestSwapService_Create_Validation(t *testing.T) {
	svc, repos := setupTestSwapService()
	entry := seedSwapData(repos)

	// 条目不存在
	_, err := svc.Create(context.Background(), &dto.CreateSwapRequest{
		ScheduleEntryID: "entry-missing", TargetMemberID: "u-li",
	}, "u-zhang")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("期望 ErrEntryNotFound，实际 %v", err)
	}

	// 不是条目归属人
	_, err = svc.Create(context.Background(), &dto.CreateSwapRequest{
		ScheduleEntryID: entry.EntryID, TargetMemberID: "u-zhang",
	}, "u-li")
	if !errors.Is(err, ErrNotEntryOwner) {
		t.Errorf("期望 ErrNotEntryOwner，实际 %v", err)
	}

	// 与自己换班
	_, err = svc.Create(context.Background(), &dto.CreateSwapRequest{
		ScheduleEntryID: entry.EntryID, TargetMemberID: "u-zhang",
	}, "u-zhang")
	if !errors.Is(err, ErrTargetIsSelf) {
		t.Errorf("期望 ErrTargetIsSelf，实际 %v", err)
	}

	// 目标在其他团队
	_, err = svc.Create(context.Background(), &dto.CreateSwapRequest{
		ScheduleEntryID: entry.EntryID, TargetMemberID: "u-wang",
	}, "u-zhang")
	if !errors.Is(err, ErrTargetNotInTeam) {
		t.Errorf("期望 ErrTargetNotInTeam，实际 %v", err)
	}
}

func TestSwapService_Respond_Accept(t *testing.T) {
	svc, repos := setupTestSwapService()
	entry := seedSwapData(repos)
	created := createSwap(t, svc, entry.EntryID)

	resp, err := svc.Respond(context.Background(), created.ID, &dto.RespondSwapRequest{Accept: true}, "u-li")
	if err != nil {
		t.Fatalf("响应换班申请应成功: %v", err)
	}
	if resp.Status != SwapStatusReviewing {
		t.Errorf("同意后状态期望 reviewing，实际 %s", resp.Status)
	}
	if resp.TargetRespondedAt == nil {
		t.Errorf("应记录目标响应时间")
	}

	// 只有目标成员可响应
	_, err = svc.Respond(context.Background(), created.ID, &dto.RespondSwapRequest{Accept: true}, "u-zhang")
	if !errors.Is(err, ErrNotSwapTarget) {
		t.Errorf("期望 ErrNotSwapTarget，实际 %v", err)
	}

	// 已进入 reviewing 不能重复响应
	_, err = svc.Respond(context.Background(), created.ID, &dto.RespondSwapRequest{Accept: false}, "u-li")
	if !errors.Is(err, ErrSwapNotActionable) {
		t.Errorf("期望 ErrSwapNotActionable，实际 %v", err)
	}
}

func TestSwapService_Respond_Decline(t *testing.T) {
	svc, repos := setupTestSwapService()
	entry := seedSwapData(repos)
	created := createSwap(t, svc, entry.EntryID)

	resp, err := svc.Respond(context.Background(), created.ID, &dto.RespondSwapRequest{Accept: false}, "u-li")
	if err != nil {
		t.Fatalf("响应换班申请应成功: %v", err)
	}
	if resp.Status != SwapStatusRejected {
		t.Errorf("目标拒绝后状态期望 rejected，实际 %s", resp.Status)
	}
}

func TestSwapService_Approve(t *testing.T) {
	svc, repos := setupTestSwapService()
	entry := seedSwapData(repos)
	created := createSwap(t, svc, entry.EntryID)

	// 未经目标同意不能直接审批
	_, err := svc.Approve(context.Background(), created.ID, "leader-1")
	if !errors.Is(err, ErrSwapNotActionable) {
		t.Errorf("pending 状态审批期望 ErrSwapNotActionable，实际 %v", err)
	}

	if _, err := svc.Respond(context.Background(), created.ID, &dto.RespondSwapRequest{Accept: true}, "u-li"); err != nil {
		t.Fatalf("响应应成功: %v", err)
	}

	resp, err := svc.Approve(context.Background(), created.ID, "leader-1")
	if err != nil {
		t.Fatalf("审批应成功: %v", err)
	}
	if resp.Status != SwapStatusCompleted {
		t.Errorf("审批通过后状态期望 completed，实际 %s", resp.Status)
	}
	if resp.ApprovedAt == nil {
		t.Errorf("应记录审批时间")
	}

	// 条目应转移给目标成员
	if entry.UserID != "u-li" {
		t.Errorf("排班条目应转移给李四，实际归属 %s", entry.UserID)
	}

	// 申请人和目标各收到一条完成通知（加上前两步的通知共 4 条）
	if len(repos.notification.notifications) != 4 {
		t.Errorf("期望共 4 条通知，实际 %d", len(repos.notification.notifications))
	}
}

func TestSwapService_Reject(t *testing.T) {
	svc, repos := setupTestSwapService()
	entry := seedSwapData(repos)
	created := createSwap(t, svc, entry.EntryID)

	resp, err := svc.Reject(context.Background(), created.ID, &dto.RejectSwapRequest{Reason: "当周人手不足"}, "leader-1")
	if err != nil {
		t.Fatalf("驳回应成功: %v", err)
	}
	if resp.Status != SwapStatusRejected || resp.RejectReason != "当周人手不足" {
		t.Errorf("期望 rejected 并保存原因，实际 %s / %s", resp.Status, resp.RejectReason)
	}

	// 条目归属不变
	if entry.UserID != "u-zhang" {
		t.Errorf("驳回不应转移条目")
	}

	// 已驳回的申请不能再驳回
	_, err = svc.Reject(context.Background(), created.ID, &dto.RejectSwapRequest{Reason: "重复"}, "leader-1")
	if !errors.Is(err, ErrSwapNotActionable) {
		t.Errorf("期望 ErrSwapNotActionable，实际 %v", err)
	}
}

func TestSwapService_Cancel(t *testing.T) {
	svc, repos := setupTestSwapService()
	entry := seedSwapData(repos)
	created := createSwap(t, svc, entry.EntryID)

	// 只有申请人能撤回
	_, err := svc.Cancel(context.Background(), created.ID, "u-li")
	if !errors.Is(err, ErrNotSwapApplicant) {
		t.Errorf("期望 ErrNotSwapApplicant，实际 %v", err)
	}

	resp, err := svc.Cancel(context.Background(), created.ID, "u-zhang")
	if err != nil {
		t.Fatalf("撤回应成功: %v", err)
	}
	if resp.Status != SwapStatusCancelled {
		t.Errorf("撤回后状态期望 cancelled，实际 %s", resp.Status)
	}

	// 已撤回不能再撤回
	_, err = svc.Cancel(context.Background(), created.ID, "u-zhang")
	if !errors.Is(err, ErrSwapAlreadyResolved) {
		t.Errorf("期望 ErrSwapAlreadyResolved，实际 %v", err)
	}
}

func TestSwapService_Cancel_NotFound(t *testing.T) {
	svc, repos := setupTestSwapService()
	seedSwapData(repos)

	_, err := svc.Cancel(context.Background(), "swap-missing", "u-zhang")
	if !errors.Is(err, ErrSwapNotFound) {
		t.Errorf("期望 ErrSwapNotFound，实际 %v", err)
	}
}

func TestSwapService_List_MemberScope(t *testing.T) {
	svc, repos := setupTestSwapService()
	entry := seedSwapData(repos)
	createSwap(t, svc, entry.EntryID)

	// 无关成员看不到该申请
	list, total, err := svc.List(context.Background(), &dto.SwapListRequest{}, "u-wang", "member")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 0 || len(list) != 0 {
		t.Errorf("无关成员期望 0 条，实际 %d", total)
	}

	// 目标成员能看到
	_, total, err = svc.List(context.Background(), &dto.SwapListRequest{}, "u-li", "member")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 {
		t.Errorf("目标成员期望 1 条，实际 %d", total)
	}

	// 管理员不受本人过滤限制
	_, total, err = svc.List(context.Background(), &dto.SwapListRequest{}, "admin-1", "admin")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 {
		t.Errorf("管理员期望 1 条，实际 %d", total)
	}
}

func TestSwapService_Create_RespectsNotificationPreference(t *testing.T) {
	svc, repos := setupTestSwapService()
	entry := seedSwapData(repos)
	repos.notification.preferences["u-li"] = &model.NotificationPreference{
		UserID: "u-li", SwapNotification: false, DutyReminder: true,
	}

	createSwap(t, svc, entry.EntryID)

	if len(repos.notification.notifications) != 0 {
		t.Errorf("关闭换班通知后不应写入通知，实际 %d 条", len(repos.notification.notifications))
	}
}
