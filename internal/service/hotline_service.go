package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"erisync/backend/config"
	"erisync/backend/internal/dto"
	"erisync/backend/internal/model"
	"erisync/backend/internal/repository"
	"erisync/backend/pkg/redis"
)

// ── 热线轮值模块业务错误 ──

var (
	ErrTeamNotFound          = errors.New("团队不存在")
	ErrHotlineConfigNotFound = errors.New("该团队未配置热线值班")
	ErrInvalidDateRange      = errors.New("日期范围无效")
	ErrRangeTooLarge         = errors.New("日期范围超出允许的最大跨度")
	ErrInvalidTimeWindow     = errors.New("值班时段无效：开始时间必须早于结束时间")
	ErrNoDraftsToFinalize    = errors.New("所选团队没有可转正的草稿")
)

// HotlineService 热线轮值业务接口
type HotlineService interface {
	// 获取团队值班候选人（含最近值班日期）
	GetEligibleMembers(ctx context.Context, teamID string) ([]dto.EligibleMemberResponse, error)
	// 预览轮值（只计算不落库）
	PreviewRotation(ctx context.Context, req *dto.GenerateRotationRequest, callerID string) (*dto.RotationRunResponse, error)
	// 生成轮值并保存草稿（按团队整体替换）
	GenerateDrafts(ctx context.Context, req *dto.GenerateRotationRequest, callerID string) (*dto.RotationRunResponse, error)
	// 查询团队草稿
	ListDrafts(ctx context.Context, teamID string) ([]dto.DraftResponse, error)
	// 草稿转正（原子：插入正式记录 + 删除草稿）
	Finalize(ctx context.Context, req *dto.FinalizeRequest, callerID string) (*dto.FinalizeResponse, error)
	// 直接应用模式：将值班时段合并进成员排班条目
	ApplyDirect(ctx context.Context, req *dto.GenerateRotationRequest, callerID string) (*dto.RotationRunResponse, error)
	// 查询正式值班记录
	ListAssignments(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, error)
	// 查询/更新热线配置
	GetConfig(ctx context.Context, teamID string) (*dto.HotlineConfigResponse, error)
	UpdateConfig(ctx context.Context, teamID string, req *dto.UpdateHotlineConfigRequest, callerID string) (*dto.HotlineConfigResponse, error)
}

type hotlineService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewHotlineService 创建 HotlineService 实例
// rdb 可为 nil（团队运行锁降级为不加锁）
func NewHotlineService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) HotlineService {
	return &hotlineService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// ════════════════════════════════════════════════════════════
// GetEligibleMembers — 值班候选人解析
// ════════════════════════════════════════════════════════════

func (s *hotlineService) GetEligibleMembers(ctx context.Context, teamID string) ([]dto.EligibleMemberResponse, error) {
	if _, err := s.repo.Team.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("查询团队失败", zap.Error(err))
		return nil, err
	}

	members, err := s.repo.User.ListHotlineEligible(ctx, teamID)
	if err != nil {
		s.logger.Error("查询值班候选人失败", zap.Error(err))
		return nil, err
	}

	lastDates, err := s.repo.HotlineAssignment.LastAssignedDates(ctx, teamID)
	if err != nil {
		s.logger.Error("查询最近值班日期失败", zap.Error(err))
		return nil, err
	}

	// 候选人为空是合法结果（前端单独提示），与查询失败严格区分
	result := make([]dto.EligibleMemberResponse, 0, len(members))
	for i := range members {
		m := &members[i]
		resp := dto.EligibleMemberResponse{ID: m.UserID, Name: m.Name}
		if last, ok := lastDates[m.UserID]; ok {
			str := last.Format(dateLayout)
			resp.LastAssignedDate = &str
		}
		result = append(result, resp)
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// 轮值引擎核心
// ════════════════════════════════════════════════════════════
//
// 处理顺序严格固定：团队 → 工作日 → 班位 → 候选人。
// 游标在整个团队范围内连续推进，并发/乱序会破坏公平性，
// 因此引擎完全串行执行，且同团队由 Redis 运行锁互斥。

// rotationAssignment 引擎内部的单条分配
type rotationAssignment struct {
	teamID         string
	userID         string
	userName       string
	dutyDate       time.Time
	startTime      string
	endTime        string
	isSubstitute   bool
	originalUserID string
}

// teamRunResult 单团队运行结果
type teamRunResult struct {
	teamID      string
	teamName    string
	status      string
	assignments []rotationAssignment
	warnings    []string
	err         string
	slots       int // 应填班位总数
}

// runRotation 为一组团队在日期范围内执行轮值分配
// 软失败（缺配置、无候选人、存储失败、锁占用）只影响对应团队；
// ctx 取消在「天」边界生效，已得结果作为部分输出返回。
func (s *hotlineService) runRotation(ctx context.Context, teamIDs []string, start, end time.Time, callerID string) ([]teamRunResult, bool) {
	results := make([]teamRunResult, 0, len(teamIDs))
	cancelled := false

	for _, teamID := range teamIDs {
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		res := teamRunResult{teamID: teamID}

		team, err := s.repo.Team.GetByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				res.status = dto.TeamRunStatusFailed
				res.err = ErrTeamNotFound.Error()
			} else {
				s.logger.Error("查询团队失败", zap.String("team_id", teamID), zap.Error(err))
				res.status = dto.TeamRunStatusFailed
				res.err = "查询团队失败"
			}
			results = append(results, res)
			continue
		}
		res.teamName = team.Name

		// 同团队互斥：草稿替换是先删后插，并发运行会相互覆盖
		if !s.acquireTeamLock(ctx, teamID, &res) {
			results = append(results, res)
			continue
		}

		teamCancelled := s.runTeam(ctx, teamID, start, end, &res)
		s.releaseTeamLock(teamID)

		results = append(results, res)
		if teamCancelled {
			cancelled = true
			break
		}
	}

	return results, cancelled
}

func (s *hotlineService) acquireTeamLock(ctx context.Context, teamID string, res *teamRunResult) bool {
	if s.rdb == nil {
		return true
	}
	locked, err := s.rdb.AcquireTeamLock(ctx, teamID, s.cfg.Hotline.RunLockTTL)
	if err != nil {
		// Redis 出错时降级放行（与限流策略一致）
		s.logger.Warn("获取团队运行锁失败，降级继续", zap.String("team_id", teamID), zap.Error(err))
		return true
	}
	if !locked {
		res.status = dto.TeamRunStatusFailed
		res.err = "该团队已有轮值生成正在进行，请稍后重试"
		return false
	}
	return true
}

func (s *hotlineService) releaseTeamLock(teamID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.ReleaseTeamLock(context.Background(), teamID); err != nil {
		s.logger.Warn("释放团队运行锁失败", zap.String("team_id", teamID), zap.Error(err))
	}
}

// runTeam 执行单团队的分配，返回是否因 ctx 取消而中断
func (s *hotlineService) runTeam(ctx context.Context, teamID string, start, end time.Time, res *teamRunResult) bool {
	// 1. 热线配置缺失 → 软跳过，兄弟团队继续
	cfg, err := s.repo.HotlineConfig.GetByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res.status = dto.TeamRunStatusConfigMissing
			return false
		}
		s.logger.Error("查询热线配置失败", zap.String("team_id", teamID), zap.Error(err))
		res.status = dto.TeamRunStatusFailed
		res.err = "查询热线配置失败"
		return false
	}

	// 2. 候选人为空 → 软跳过（与查询失败区分）
	members, err := s.repo.User.ListHotlineEligible(ctx, teamID)
	if err != nil {
		s.logger.Error("查询值班候选人失败", zap.String("team_id", teamID), zap.Error(err))
		res.status = dto.TeamRunStatusFailed
		res.err = "查询值班候选人失败"
		return false
	}
	if len(members) == 0 {
		res.status = dto.TeamRunStatusNoEligible
		return false
	}

	// 3. 值班历史 → 候选循环序列
	lastDates, err := s.repo.HotlineAssignment.LastAssignedDates(ctx, teamID)
	if err != nil {
		s.logger.Error("查询最近值班日期失败", zap.String("team_id", teamID), zap.Error(err))
		res.status = dto.TeamRunStatusFailed
		res.err = "查询值班历史失败"
		return false
	}

	cands := make([]candidate, 0, len(members))
	names := make(map[string]string, len(members))
	for i := range members {
		m := &members[i]
		names[m.UserID] = m.Name
		cands = append(cands, candidate{
			userID:       m.UserID,
			name:         m.Name,
			lastAssigned: lastDates[m.UserID], // 缺省零值 = 从未值班，排最前
		})
	}
	cycle := sortCycle(cands)

	// 4. 批量加载排班与节假日快照（只中止本团队）
	snap, err := buildAvailabilitySnapshot(ctx, s.repo, members, start, end)
	if err != nil {
		s.logger.Error("加载可用性快照失败", zap.String("team_id", teamID), zap.Error(err))
		res.status = dto.TeamRunStatusFailed
		res.err = err.Error()
		return false
	}

	// 5. 工作日 × 班位，游标连续推进
	cursor := 0
	for _, day := range businessDays(start, end) {
		// 取消在天边界生效：已得分配作为部分结果返回
		if ctx.Err() != nil {
			res.warnings = append(res.warnings, "运行被取消，以下为部分结果")
			res.status = dto.TeamRunStatusOK
			return true
		}

		windowStart, windowEnd := cfg.WindowFor(day)

		for slot := 0; slot < cfg.MinStaffRequired; slot++ {
			res.slots++

			pick, newCursor, ok := pickForSlot(cycle, cursor, func(userID string) bool {
				return snap.isAvailable(userID, day)
			})
			if !ok {
				res.warnings = append(res.warnings, fmt.Sprintf(
					"%s 第%d个班位无人可排：所有候选人当日均不可用", day.Format(dateLayout), slot+1))
				continue
			}
			cursor = newCursor

			res.assignments = append(res.assignments, rotationAssignment{
				teamID:         teamID,
				userID:         pick.userID,
				userName:       names[pick.userID],
				dutyDate:       day,
				startTime:      windowStart,
				endTime:        windowEnd,
				isSubstitute:   pick.isSubstitute,
				originalUserID: pick.originalUserID,
			})
		}
	}

	res.status = dto.TeamRunStatusOK
	return false
}

// parseRange 解析并校验日期范围
func (s *hotlineService) parseRange(req *dto.DateRangeRequest) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if int(end.Sub(start).Hours()/24)+1 > s.cfg.Hotline.MaxRangeDays {
		return time.Time{}, time.Time{}, ErrRangeTooLarge
	}
	return start, end, nil
}

func buildRunResponse(results []teamRunResult, cancelled bool) *dto.RotationRunResponse {
	resp := &dto.RotationRunResponse{
		Teams:     make([]dto.TeamRotationResult, 0, len(results)),
		Cancelled: cancelled,
	}
	for _, r := range results {
		team := dto.TeamRotationResult{
			TeamID:   r.teamID,
			TeamName: r.teamName,
			Status:   r.status,
			Warnings: r.warnings,
			Error:    r.err,
		}
		for _, a := range r.assignments {
			item := dto.RotationAssignmentResponse{
				TeamID:       a.teamID,
				UserID:       a.userID,
				UserName:     a.userName,
				DutyDate:     a.dutyDate.Format(dateLayout),
				StartTime:    a.startTime,
				EndTime:      a.endTime,
				IsSubstitute: a.isSubstitute,
			}
			if a.originalUserID != "" {
				orig := a.originalUserID
				item.OriginalUserID = &orig
			}
			team.Assignments = append(team.Assignments, item)
		}
		resp.Teams = append(resp.Teams, team)
		resp.TotalSlots += r.slots
		resp.FilledSlots += len(r.assignments)
	}
	return resp
}

// ════════════════════════════════════════════════════════════
// PreviewRotation — 预览模式（只计算不落库）
// ════════════════════════════════════════════════════════════

func (s *hotlineService) PreviewRotation(ctx context.Context, req *dto.GenerateRotationRequest, callerID string) (*dto.RotationRunResponse, error) {
	start, end, err := s.parseRange(&req.DateRangeRequest)
	if err != nil {
		return nil, err
	}

	results, cancelled := s.runRotation(ctx, req.TeamIDs, start, end, callerID)
	return buildRunResponse(results, cancelled), nil
}

// ════════════════════════════════════════════════════════════
// GenerateDrafts — 生成并保存草稿（整体替换）
// ════════════════════════════════════════════════════════════

func (s *hotlineService) GenerateDrafts(ctx context.Context, req *dto.GenerateRotationRequest, callerID string) (*dto.RotationRunResponse, error) {
	start, end, err := s.parseRange(&req.DateRangeRequest)
	if err != nil {
		return nil, err
	}

	results, cancelled := s.runRotation(ctx, req.TeamIDs, start, end, callerID)

	// 仅替换成功生成的团队的草稿；删除与插入同事务
	okTeams := make([]string, 0, len(results))
	drafts := make([]model.HotlineDraft, 0)
	for _, r := range results {
		if r.status != dto.TeamRunStatusOK {
			continue
		}
		okTeams = append(okTeams, r.teamID)
		for _, a := range r.assignments {
			d := model.HotlineDraft{
				TeamID:       a.teamID,
				UserID:       a.userID,
				DutyDate:     a.dutyDate,
				StartTime:    a.startTime,
				EndTime:      a.endTime,
				IsSubstitute: a.isSubstitute,
				CreatedBy:    &callerID,
			}
			if a.originalUserID != "" {
				orig := a.originalUserID
				d.OriginalUserID = &orig
			}
			drafts = append(drafts, d)
		}
	}

	if len(okTeams) > 0 {
		err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
			if err := tx.HotlineDraft.DeleteByTeams(ctx, okTeams); err != nil {
				return err
			}
			return tx.HotlineDraft.BatchCreate(ctx, drafts)
		})
		if err != nil {
			s.logger.Error("保存轮值草稿失败", zap.Strings("team_ids", okTeams), zap.Error(err))
			return nil, err
		}
	}

	return buildRunResponse(results, cancelled), nil
}

// ════════════════════════════════════════════════════════════
// ListDrafts / Finalize
// ════════════════════════════════════════════════════════════

func (s *hotlineService) ListDrafts(ctx context.Context, teamID string) ([]dto.DraftResponse, error) {
	drafts, err := s.repo.HotlineDraft.ListByTeam(ctx, teamID)
	if err != nil {
		s.logger.Error("查询轮值草稿失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.DraftResponse, 0, len(drafts))
	for i := range drafts {
		d := &drafts[i]
		resp := dto.DraftResponse{
			ID:             d.DraftID,
			TeamID:         d.TeamID,
			UserID:         d.UserID,
			DutyDate:       d.DutyDate.Format(dateLayout),
			StartTime:      d.StartTime,
			EndTime:        d.EndTime,
			IsSubstitute:   d.IsSubstitute,
			OriginalUserID: d.OriginalUserID,
		}
		if d.User != nil {
			resp.UserName = d.User.Name
		}
		result = append(result, resp)
	}
	return result, nil
}

// Finalize 将所选团队的全部草稿转为正式值班记录
// 插入正式记录与删除草稿在同一事务内，避免半完成状态留下重复或孤儿记录
func (s *hotlineService) Finalize(ctx context.Context, req *dto.FinalizeRequest, callerID string) (*dto.FinalizeResponse, error) {
	drafts, err := s.repo.HotlineDraft.ListByTeams(ctx, req.TeamIDs)
	if err != nil {
		s.logger.Error("查询待转正草稿失败", zap.Error(err))
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ErrNoDraftsToFinalize
	}

	assignments := make([]model.HotlineAssignment, 0, len(drafts))
	for i := range drafts {
		d := &drafts[i]
		isoYear, isoWeek := d.DutyDate.ISOWeek()
		assignments = append(assignments, model.HotlineAssignment{
			TeamID:         d.TeamID,
			UserID:         d.UserID,
			DutyDate:       d.DutyDate,
			StartTime:      d.StartTime,
			EndTime:        d.EndTime,
			Year:           isoYear,
			WeekIndex:      isoWeek,
			IsSubstitute:   d.IsSubstitute,
			OriginalUserID: d.OriginalUserID,
			CreatedBy:      &callerID,
		})
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.HotlineAssignment.BatchCreate(ctx, assignments); err != nil {
			return err
		}
		return tx.HotlineDraft.DeleteByTeams(ctx, req.TeamIDs)
	})
	if err != nil {
		s.logger.Error("草稿转正失败", zap.Strings("team_ids", req.TeamIDs), zap.Error(err))
		return nil, err
	}

	return &dto.FinalizeResponse{FinalizedCount: len(assignments)}, nil
}

// ════════════════════════════════════════════════════════════
// ApplyDirect — 直接应用模式
// ════════════════════════════════════════════════════════════
//
// 不生成独立值班记录，而是把值班时段合并进成员当天的排班条目。
// 应用前先清除范围内上次自动生成的产物（自动条目 + 自动时段），
// 因此同参数重复调用结果一致，不会累积重复时段。

func (s *hotlineService) ApplyDirect(ctx context.Context, req *dto.GenerateRotationRequest, callerID string) (*dto.RotationRunResponse, error) {
	start, end, err := s.parseRange(&req.DateRangeRequest)
	if err != nil {
		return nil, err
	}

	results, cancelled := s.runRotation(ctx, req.TeamIDs, start, end, callerID)

	for i := range results {
		r := &results[i]
		if r.status != dto.TeamRunStatusOK {
			continue
		}

		err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
			return s.applyTeam(ctx, tx, r, start, end, callerID)
		})
		if err != nil {
			s.logger.Error("直接应用轮值失败",
				zap.String("team_id", r.teamID), zap.Error(err))
			r.status = dto.TeamRunStatusFailed
			r.err = "写入排班条目失败"
			r.assignments = nil
		}
	}

	return buildRunResponse(results, cancelled), nil
}

func (s *hotlineService) applyTeam(ctx context.Context, tx *repository.Repository, r *teamRunResult, start, end time.Time, callerID string) error {
	// 1. 删除上次自动生成的条目
	if err := tx.ScheduleEntry.DeleteAutoGenerated(ctx, r.teamID, start, end); err != nil {
		return err
	}

	// 2. 从手工条目中剥离上次自动合并的值班时段
	existing, err := tx.ScheduleEntry.ListByTeamAndRange(ctx, r.teamID, start, end)
	if err != nil {
		return err
	}
	entryByKey := make(map[string]*model.ScheduleEntry, len(existing))
	for i := range existing {
		e := &existing[i]
		stripped, changed := stripAutoHotlineBlocks(e.TimeBlocks)
		if changed {
			if err := tx.ScheduleEntry.UpdateTimeBlocks(ctx, e.EntryID, stripped); err != nil {
				return err
			}
			e.TimeBlocks = stripped
		}
		entryByKey[e.UserID+":"+e.EntryDate.Format(dateLayout)] = e
	}

	// 3. 合并本次分配
	for _, a := range r.assignments {
		block := model.TimeBlock{
			StartTime:     a.startTime,
			EndTime:       a.endTime,
			BlockType:     model.BlockTypeHotline,
			AutoGenerated: true,
		}

		entry, ok := entryByKey[a.userID+":"+a.dutyDate.Format(dateLayout)]
		if !ok {
			newEntry := &model.ScheduleEntry{
				UserID:             a.userID,
				TeamID:             a.teamID,
				EntryDate:          a.dutyDate,
				AvailabilityStatus: model.AvailabilityAvailable,
				ActivityType:       model.ActivityWork,
				Source:             model.EntrySourceHotlineAuto,
				TimeBlocks:         model.TimeBlockList{block},
			}
			newEntry.CreatedBy = &callerID
			newEntry.UpdatedBy = &callerID
			if err := tx.ScheduleEntry.Create(ctx, newEntry); err != nil {
				return err
			}
			entryByKey[a.userID+":"+a.dutyDate.Format(dateLayout)] = newEntry
			continue
		}

		blocks := entry.TimeBlocks
		if len(blocks) == 0 {
			// 条目没有任何时段时按班次类型补默认班次
			blocks = append(blocks, model.DefaultShiftBlock(entry.ShiftType))
		}
		blocks = append(blocks, block)
		if err := tx.ScheduleEntry.UpdateTimeBlocks(ctx, entry.EntryID, blocks); err != nil {
			return err
		}
		entry.TimeBlocks = blocks
	}

	return nil
}

// stripAutoHotlineBlocks 移除自动生成的值班时段，返回是否有变更
func stripAutoHotlineBlocks(blocks model.TimeBlockList) (model.TimeBlockList, bool) {
	result := make(model.TimeBlockList, 0, len(blocks))
	changed := false
	for _, b := range blocks {
		if b.BlockType == model.BlockTypeHotline && b.AutoGenerated {
			changed = true
			continue
		}
		result = append(result, b)
	}
	return result, changed
}

// ════════════════════════════════════════════════════════════
// ListAssignments / 配置读写
// ════════════════════════════════════════════════════════════

func (s *hotlineService) ListAssignments(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, error) {
	start, end, err := s.parseRange(&req.DateRangeRequest)
	if err != nil {
		return nil, err
	}

	assignments, err := s.repo.HotlineAssignment.ListByTeamAndRange(ctx, req.TeamID, start, end)
	if err != nil {
		s.logger.Error("查询值班记录失败", zap.String("team_id", req.TeamID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		resp := dto.AssignmentResponse{
			ID:             a.AssignmentID,
			TeamID:         a.TeamID,
			UserID:         a.UserID,
			DutyDate:       a.DutyDate.Format(dateLayout),
			StartTime:      a.StartTime,
			EndTime:        a.EndTime,
			Year:           a.Year,
			WeekIndex:      a.WeekIndex,
			IsSubstitute:   a.IsSubstitute,
			OriginalUserID: a.OriginalUserID,
		}
		if a.User != nil {
			resp.UserName = a.User.Name
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *hotlineService) GetConfig(ctx context.Context, teamID string) (*dto.HotlineConfigResponse, error) {
	cfg, err := s.repo.HotlineConfig.GetByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotlineConfigNotFound
		}
		s.logger.Error("查询热线配置失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}
	return toHotlineConfigResponse(cfg), nil
}

func (s *hotlineService) UpdateConfig(ctx context.Context, teamID string, req *dto.UpdateHotlineConfigRequest, callerID string) (*dto.HotlineConfigResponse, error) {
	if _, err := s.repo.Team.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("查询团队失败", zap.Error(err))
		return nil, err
	}

	// 时段合法性：HH:MM 字符串可直接按字典序比较
	if req.WeekdayStart >= req.WeekdayEnd || req.FridayStart >= req.FridayEnd {
		return nil, ErrInvalidTimeWindow
	}

	cfg := &model.HotlineConfig{
		TeamID:           teamID,
		MinStaffRequired: req.MinStaffRequired,
		WeekdayStart:     req.WeekdayStart,
		WeekdayEnd:       req.WeekdayEnd,
		FridayStart:      req.FridayStart,
		FridayEnd:        req.FridayEnd,
	}
	cfg.CreatedBy = &callerID
	cfg.UpdatedBy = &callerID

	if err := s.repo.HotlineConfig.Upsert(ctx, cfg); err != nil {
		s.logger.Error("保存热线配置失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}

	return toHotlineConfigResponse(cfg), nil
}

func toHotlineConfigResponse(cfg *model.HotlineConfig) *dto.HotlineConfigResponse {
	return &dto.HotlineConfigResponse{
		TeamID:           cfg.TeamID,
		MinStaffRequired: cfg.MinStaffRequired,
		WeekdayStart:     cfg.WeekdayStart,
		WeekdayEnd:       cfg.WeekdayEnd,
		FridayStart:      cfg.FridayStart,
		FridayEnd:        cfg.FridayEnd,
	}
}
