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

var (
	ErrMemberNotInTeam = errors.New("所选成员不属于该团队")
)

// TeamService 团队业务接口
type TeamService interface {
	Create(ctx context.Context, req *dto.CreateTeamRequest, callerID string) (*dto.TeamResponse, error)
	Get(ctx context.Context, id string) (*dto.TeamResponse, error)
	List(ctx context.Context) ([]dto.TeamResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeamRequest, callerID string) (*dto.TeamResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	ListMembers(ctx context.Context, id string) ([]dto.MemberBrief, error)
	// 整体替换团队的热线值班候选人标记
	SetHotlineMembers(ctx context.Context, id string, req *dto.SetHotlineMembersRequest, callerID string) error
}

type teamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamService 创建 TeamService 实例
func NewTeamService(repo *repository.Repository, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, logger: logger}
}

func (s *teamService) Create(ctx context.Context, req *dto.CreateTeamRequest, callerID string) (*dto.TeamResponse, error) {
	team := &model.Team{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	team.CreatedBy = &callerID
	team.UpdatedBy = &callerID

	if err := s.repo.Team.Create(ctx, team); err != nil {
		s.logger.Error("创建团队失败", zap.Error(err))
		return nil, err
	}

	resp := toTeamResponse(team, 0)
	return &resp, nil
}

func (s *teamService) Get(ctx context.Context, id string) (*dto.TeamResponse, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.Team.CountMembers(ctx, id)
	if err != nil {
		s.logger.Error("统计团队成员失败", zap.String("team_id", id), zap.Error(err))
		return nil, err
	}

	resp := toTeamResponse(team, int(count))
	return &resp, nil
}

func (s *teamService) List(ctx context.Context) ([]dto.TeamResponse, error) {
	teams, err := s.repo.Team.List(ctx)
	if err != nil {
		s.logger.Error("查询团队列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		result = append(result, toTeamResponse(&teams[i], 0))
	}
	return result, nil
}

func (s *teamService) Update(ctx context.Context, id string, req *dto.UpdateTeamRequest, callerID string) (*dto.TeamResponse, error) {
	team, err := s.getTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.IsActive != nil {
		team.IsActive = *req.IsActive
	}
	team.UpdatedBy = &callerID

	if err := s.repo.Team.Update(ctx, team); err != nil {
		s.logger.Error("更新团队失败", zap.String("team_id", id), zap.Error(err))
		return nil, err
	}

	resp := toTeamResponse(team, 0)
	return &resp, nil
}

func (s *teamService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.getTeam(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Team.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除团队失败", zap.String("team_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *teamService) ListMembers(ctx context.Context, id string) ([]dto.MemberBrief, error) {
	if _, err := s.getTeam(ctx, id); err != nil {
		return nil, err
	}

	members, err := s.repo.User.ListByTeam(ctx, id)
	if err != nil {
		s.logger.Error("查询团队成员失败", zap.String("team_id", id), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MemberBrief, 0, len(members))
	for i := range members {
		result = append(result, *toMemberBrief(&members[i]))
	}
	return result, nil
}

func (s *teamService) SetHotlineMembers(ctx context.Context, id string, req *dto.SetHotlineMembersRequest, callerID string) error {
	if _, err := s.getTeam(ctx, id); err != nil {
		return err
	}

	// 名单内所有成员必须属于该团队
	if len(req.UserIDs) > 0 {
		users, err := s.repo.User.ListByIDs(ctx, req.UserIDs)
		if err != nil {
			s.logger.Error("查询成员失败", zap.Error(err))
			return err
		}
		if len(users) != len(req.UserIDs) {
			return ErrMemberNotInTeam
		}
		for i := range users {
			if users[i].TeamID != id {
				return ErrMemberNotInTeam
			}
		}
	}

	if err := s.repo.User.SetHotlineEligible(ctx, id, req.UserIDs); err != nil {
		s.logger.Error("设置值班候选人失败", zap.String("team_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *teamService) getTeam(ctx context.Context, id string) (*model.Team, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("查询团队失败", zap.String("team_id", id), zap.Error(err))
		return nil, err
	}
	return team, nil
}

func toTeamResponse(team *model.Team, memberCount int) dto.TeamResponse {
	return dto.TeamResponse{
		ID:          team.TeamID,
		Name:        team.Name,
		Description: team.Description,
		IsActive:    team.IsActive,
		MemberCount: memberCount,
		CreatedAt:   team.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   team.UpdatedAt.Format(time.RFC3339),
	}
}
