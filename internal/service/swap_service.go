package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"erisync/backend/internal/dto"
	"erisync/backend/internal/model"
	"erisync/backend/internal/repository"
)

// 换班状态
const (
	SwapStatusPending   = "pending"   // 等待目标成员响应
	SwapStatusReviewing = "reviewing" // 目标已同意，等待审批
	SwapStatusCompleted = "completed" // 审批通过，条目已转移
	SwapStatusRejected  = "rejected"  // 目标拒绝或审批驳回
	SwapStatusCancelled = "cancelled" // 申请人撤回
)

var (
	ErrSwapNotFound        = errors.New("换班申请不存在")
	ErrEntryNotFound       = errors.New("排班条目不存在")
	ErrNotEntryOwner       = errors.New("只能为自己的排班条目发起换班")
	ErrTargetNotInTeam     = errors.New("目标成员不在同一团队")
	ErrTargetIsSelf        = errors.New("不能与自己换班")
	ErrSwapNotActionable   = errors.New("申请当前状态不允许此操作")
	ErrNotSwapTarget       = errors.New("只有目标成员可以响应该申请")
	ErrNotSwapApplicant    = errors.New("只有申请人可以撤回该申请")
	ErrSwapAlreadyResolved = errors.New("申请已处理完毕")
)

// SwapService 换班申请业务接口
// 流转：pending →(目标同意) reviewing →(审批通过) completed
//
//	pending →(目标拒绝) rejected
//	reviewing →(审批驳回) rejected
//	pending/reviewing →(申请人撤回) cancelled
type SwapService interface {
	Create(ctx context.Context, req *dto.CreateSwapRequest, applicantID string) (*dto.SwapRequestResponse, error)
	List(ctx context.Context, req *dto.SwapListRequest, callerID, callerRole string) ([]dto.SwapRequestResponse, int64, error)
	Respond(ctx context.Context, id string, req *dto.RespondSwapRequest, callerID string) (*dto.SwapRequestResponse, error)
	Approve(ctx context.Context, id string, approverID string) (*dto.SwapRequestResponse, error)
	Reject(ctx context.Context, id string, req *dto.RejectSwapRequest, approverID string) (*dto.SwapRequestResponse, error)
	Cancel(ctx context.Context, id string, callerID string) (*dto.SwapRequestResponse, error)
}

type swapService struct {
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewSwapService 创建 SwapService 实例
func NewSwapService(repo *repository.Repository, notifier Notifier, logger *zap.Logger) SwapService {
	return &swapService{repo: repo, notifier: notifier, logger: logger}
}

func (s *swapService) Create(ctx context.Context, req *dto.CreateSwapRequest, applicantID string) (*dto.SwapRequestResponse, error) {
	entry, err := s.repo.ScheduleEntry.GetByID(ctx, req.ScheduleEntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("查询排班条目失败", zap.Error(err))
		return nil, err
	}
	if entry.UserID != applicantID {
		return nil, ErrNotEntryOwner
	}
	if req.TargetMemberID == applicantID {
		return nil, ErrTargetIsSelf
	}

	target, err := s.repo.User.GetByID(ctx, req.TargetMemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotInTeam
		}
		s.logger.Error("查询目标成员失败", zap.Error(err))
		return nil, err
	}
	if target.TeamID != entry.TeamID {
		return nil, ErrTargetNotInTeam
	}

	swap := &model.SwapRequest{
		ScheduleEntryID: req.ScheduleEntryID,
		ApplicantID:     applicantID,
		TargetMemberID:  req.TargetMemberID,
		Reason:          req.Reason,
		Status:          SwapStatusPending,
	}
	swap.CreatedBy = &applicantID
	swap.UpdatedBy = &applicantID

	if err := s.repo.SwapRequest.Create(ctx, swap); err != nil {
		s.logger.Error("创建换班申请失败", zap.Error(err))
		return nil, err
	}

	s.notifier.NotifySwap(ctx, req.TargetMemberID, "收到换班申请",
		fmt.Sprintf("有成员希望与你交换 %s 的排班，请及时响应", entry.EntryDate.Format(dateLayout)),
		swap.SwapRequestID)

	return s.toResponse(ctx, swap.SwapRequestID)
}

func (s *swapService) List(ctx context.Context, req *dto.SwapListRequest, callerID, callerRole string) ([]dto.SwapRequestResponse, int64, error) {
	// 普通成员只能看到与自己相关的申请
	userFilter := callerID
	if callerRole == "admin" || callerRole == "leader" {
		userFilter = ""
	}

	swaps, total, err := s.repo.SwapRequest.List(ctx, userFilter, req.TeamID, req.Status, req.Offset(), req.Limit())
	if err != nil {
		s.logger.Error("查询换班申请失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SwapRequestResponse, 0, len(swaps))
	for i := range swaps {
		result = append(result, buildSwapResponse(&swaps[i]))
	}
	return result, total, nil
}

func (s *swapService) Respond(ctx context.Context, id string, req *dto.RespondSwapRequest, callerID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.getSwap(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap.TargetMemberID != callerID {
		return nil, ErrNotSwapTarget
	}
	if swap.Status != SwapStatusPending {
		return nil, ErrSwapNotActionable
	}

	now := time.Now()
	swap.TargetRespondedAt = &now
	swap.UpdatedBy = &callerID
	if req.Accept {
		swap.Status = SwapStatusReviewing
	} else {
		swap.Status = SwapStatusRejected
	}

	if err := s.repo.SwapRequest.Update(ctx, swap); err != nil {
		s.logger.Error("更新换班申请失败", zap.String("swap_id", id), zap.Error(err))
		return nil, err
	}

	if req.Accept {
		s.notifier.NotifySwap(ctx, swap.ApplicantID, "换班申请待审批",
			"目标成员已同意换班，申请进入审批环节", swap.SwapRequestID)
	} else {
		s.notifier.NotifySwap(ctx, swap.ApplicantID, "换班申请被拒绝",
			"目标成员拒绝了你的换班申请", swap.SwapRequestID)
	}

	return s.toResponse(ctx, id)
}

// Approve 审批通过：状态置 completed 并把排班条目转移给目标成员
// 两步写入同一事务，避免状态与条目归属不一致
func (s *swapService) Approve(ctx context.Context, id string, approverID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.getSwap(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap.Status != SwapStatusReviewing {
		return nil, ErrSwapNotActionable
	}

	now := time.Now()
	swap.Status = SwapStatusCompleted
	swap.ApprovedAt = &now
	swap.ApprovedBy = &approverID
	swap.UpdatedBy = &approverID

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.SwapRequest.Update(ctx, swap); err != nil {
			return err
		}
		return tx.ScheduleEntry.ReassignUser(ctx, swap.ScheduleEntryID, swap.TargetMemberID, approverID)
	})
	if err != nil {
		s.logger.Error("换班审批落库失败", zap.String("swap_id", id), zap.Error(err))
		return nil, err
	}

	s.notifier.NotifySwap(ctx, swap.ApplicantID, "换班已完成",
		"你的换班申请已审批通过，排班已转移", swap.SwapRequestID)
	s.notifier.NotifySwap(ctx, swap.TargetMemberID, "换班已完成",
		"换班审批通过，相关排班已转移给你", swap.SwapRequestID)

	return s.toResponse(ctx, id)
}

func (s *swapService) Reject(ctx context.Context, id string, req *dto.RejectSwapRequest, approverID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.getSwap(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap.Status != SwapStatusPending && swap.Status != SwapStatusReviewing {
		return nil, ErrSwapNotActionable
	}

	swap.Status = SwapStatusRejected
	swap.RejectReason = req.Reason
	swap.UpdatedBy = &approverID

	if err := s.repo.SwapRequest.Update(ctx, swap); err != nil {
		s.logger.Error("驳回换班申请失败", zap.String("swap_id", id), zap.Error(err))
		return nil, err
	}

	s.notifier.NotifySwap(ctx, swap.ApplicantID, "换班申请被驳回",
		fmt.Sprintf("驳回原因：%s", req.Reason), swap.SwapRequestID)

	return s.toResponse(ctx, id)
}

func (s *swapService) Cancel(ctx context.Context, id string, callerID string) (*dto.SwapRequestResponse, error) {
	swap, err := s.getSwap(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap.ApplicantID != callerID {
		return nil, ErrNotSwapApplicant
	}
	if swap.Status != SwapStatusPending && swap.Status != SwapStatusReviewing {
		return nil, ErrSwapAlreadyResolved
	}

	swap.Status = SwapStatusCancelled
	swap.UpdatedBy = &callerID

	if err := s.repo.SwapRequest.Update(ctx, swap); err != nil {
		s.logger.Error("撤回换班申请失败", zap.String("swap_id", id), zap.Error(err))
		return nil, err
	}

	return s.toResponse(ctx, id)
}

func (s *swapService) getSwap(ctx context.Context, id string) (*model.SwapRequest, error) {
	swap, err := s.repo.SwapRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		s.logger.Error("查询换班申请失败", zap.String("swap_id", id), zap.Error(err))
		return nil, err
	}
	return swap, nil
}

func (s *swapService) toResponse(ctx context.Context, id string) (*dto.SwapRequestResponse, error) {
	swap, err := s.getSwap(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := buildSwapResponse(swap)
	return &resp, nil
}

func buildSwapResponse(swap *model.SwapRequest) dto.SwapRequestResponse {
	resp := dto.SwapRequestResponse{
		ID:              swap.SwapRequestID,
		ScheduleEntryID: swap.ScheduleEntryID,
		Reason:          swap.Reason,
		Status:          swap.Status,
		RejectReason:    swap.RejectReason,
		CreatedAt:       swap.CreatedAt.Format(time.RFC3339),
	}
	if swap.ScheduleEntry != nil {
		resp.EntryDate = swap.ScheduleEntry.EntryDate.Format(dateLayout)
	}
	if swap.Applicant != nil {
		resp.Applicant = toMemberBrief(swap.Applicant)
	}
	if swap.TargetMember != nil {
		resp.TargetMember = toMemberBrief(swap.TargetMember)
	}
	if swap.TargetRespondedAt != nil {
		t := swap.TargetRespondedAt.Format(time.RFC3339)
		resp.TargetRespondedAt = &t
	}
	if swap.ApprovedAt != nil {
		t := swap.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &t
	}
	return resp
}

func toMemberBrief(u *model.User) *dto.MemberBrief {
	return &dto.MemberBrief{
		ID:         u.UserID,
		Name:       u.Name,
		EmployeeID: u.EmployeeID,
		Country:    u.Country,
	}
}
