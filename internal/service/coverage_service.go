package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"erisync/backend/config"
	"erisync/backend/internal/dto"
	"erisync/backend/internal/model"
	"erisync/backend/internal/repository"
)

// CoverageService 覆盖缺口分析业务接口
type CoverageService interface {
	// 分析各团队在日期范围内的每日在岗人数缺口
	Analyze(ctx context.Context, req *dto.CoverageAnalysisRequest) (*dto.CoverageAnalysisResponse, error)
	// 查询/更新团队容量配置
	GetCapacity(ctx context.Context, teamID string) (*dto.CapacityConfigResponse, error)
	UpdateCapacity(ctx context.Context, teamID string, req *dto.UpdateCapacityConfigRequest, callerID string) (*dto.CapacityConfigResponse, error)
}

type coverageService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCoverageService 创建 CoverageService 实例
func NewCoverageService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CoverageService {
	return &coverageService{cfg: cfg, repo: repo, logger: logger}
}

// defaultCapacity 未配置容量时的基准：每工作日至少 1 人，不含周末
func defaultCapacity(teamID string) *model.CapacityConfig {
	return &model.CapacityConfig{TeamID: teamID, MinStaff: 1, WeekendMinStaff: 0, IncludeWeekends: false}
}

func (s *coverageService) Analyze(ctx context.Context, req *dto.CoverageAnalysisRequest) (*dto.CoverageAnalysisResponse, error) {
	start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	if int(end.Sub(start).Hours()/24)+1 > s.cfg.Hotline.MaxRangeDays {
		return nil, ErrRangeTooLarge
	}

	// 容量配置一次性批量取回
	capCfgs, err := s.repo.Capacity.ListByTeams(ctx, req.TeamIDs)
	if err != nil {
		s.logger.Error("查询容量配置失败", zap.Error(err))
		return nil, err
	}
	capByTeam := make(map[string]*model.CapacityConfig, len(capCfgs))
	for i := range capCfgs {
		capByTeam[capCfgs[i].TeamID] = &capCfgs[i]
	}

	resp := &dto.CoverageAnalysisResponse{Teams: make([]dto.TeamCoverageResponse, 0, len(req.TeamIDs))}
	for _, teamID := range req.TeamIDs {
		team, err := s.repo.Team.GetByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeamNotFound
			}
			s.logger.Error("查询团队失败", zap.String("team_id", teamID), zap.Error(err))
			return nil, err
		}

		capacity, ok := capByTeam[teamID]
		if !ok {
			capacity = defaultCapacity(teamID)
		}

		result, err := s.analyzeTeam(ctx, team, capacity, start, end)
		if err != nil {
			return nil, err
		}
		resp.Teams = append(resp.Teams, *result)
	}
	return resp, nil
}

func (s *coverageService) analyzeTeam(ctx context.Context, team *model.Team, capacity *model.CapacityConfig, start, end time.Time) (*dto.TeamCoverageResponse, error) {
	members, err := s.repo.User.ListByTeam(ctx, team.TeamID)
	if err != nil {
		s.logger.Error("查询团队成员失败", zap.String("team_id", team.TeamID), zap.Error(err))
		return nil, err
	}

	snap, err := buildAvailabilitySnapshot(ctx, s.repo, members, start, end)
	if err != nil {
		s.logger.Error("加载可用性快照失败", zap.String("team_id", team.TeamID), zap.Error(err))
		return nil, err
	}

	result := &dto.TeamCoverageResponse{TeamID: team.TeamID, TeamName: team.Name}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		isWeekend := wd == time.Saturday || wd == time.Sunday
		if isWeekend && !capacity.IncludeWeekends {
			continue
		}

		required := capacity.MinStaff
		if isWeekend {
			required = capacity.WeekendMinStaff
		}

		// 在岗人数按实际排班算：无记录不计入
		actual := 0
		for i := range members {
			if snap.isWorking(members[i].UserID, d) {
				actual++
			}
		}

		// 任一成员所在国当天放假即标记为节假日（各国假期不同，按成员国别聚合）
		isHoliday := false
		dayKey := d.Format(dateLayout)
		for _, country := range snap.countries {
			if snap.holidays[country+":"+dayKey] {
				isHoliday = true
				break
			}
		}

		result.DaysTotal++
		if actual >= required {
			result.DaysCovered++
			continue
		}

		severity := dto.GapSeverityWarning
		if actual == 0 {
			severity = dto.GapSeverityCritical
		}
		result.Gaps = append(result.Gaps, dto.CoverageGapResponse{
			TeamID:    team.TeamID,
			Date:      dayKey,
			Required:  required,
			Actual:    actual,
			Deficit:   required - actual,
			Severity:  severity,
			IsWeekend: isWeekend,
			IsHoliday: isHoliday,
		})
	}

	if result.DaysTotal > 0 {
		pct := float64(result.DaysCovered) / float64(result.DaysTotal) * 100
		result.CoveragePercent = math.Round(pct*100) / 100
	}
	return result, nil
}

func (s *coverageService) GetCapacity(ctx context.Context, teamID string) (*dto.CapacityConfigResponse, error) {
	cfg, err := s.repo.Capacity.GetByTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未配置时返回默认基准而非 404：分析端也按该基准计算
			return toCapacityResponse(defaultCapacity(teamID)), nil
		}
		s.logger.Error("查询容量配置失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}
	return toCapacityResponse(cfg), nil
}

func (s *coverageService) UpdateCapacity(ctx context.Context, teamID string, req *dto.UpdateCapacityConfigRequest, callerID string) (*dto.CapacityConfigResponse, error) {
	if _, err := s.repo.Team.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("查询团队失败", zap.Error(err))
		return nil, err
	}

	cfg := &model.CapacityConfig{
		TeamID:          teamID,
		MinStaff:        req.MinStaff,
		WeekendMinStaff: req.WeekendMinStaff,
		IncludeWeekends: req.IncludeWeekends,
	}
	cfg.CreatedBy = &callerID
	cfg.UpdatedBy = &callerID

	if err := s.repo.Capacity.Upsert(ctx, cfg); err != nil {
		s.logger.Error("保存容量配置失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}
	return toCapacityResponse(cfg), nil
}

func toCapacityResponse(cfg *model.CapacityConfig) *dto.CapacityConfigResponse {
	return &dto.CapacityConfigResponse{
		TeamID:          cfg.TeamID,
		MinStaff:        cfg.MinStaff,
		WeekendMinStaff: cfg.WeekendMinStaff,
		IncludeWeekends: cfg.IncludeWeekends,
	}
}
