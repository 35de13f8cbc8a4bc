package service

import (
	"go.uber.org/zap"

	"erisync/backend/config"
	"erisync/backend/internal/repository"
	"erisync/backend/pkg/jwt"
	"erisync/backend/pkg/redis"
)

// Service 所有业务 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Team         TeamService
	Holiday      HolidayService
	Hotline      HotlineService
	Coverage     CoverageService
	Swap         SwapService
	Notification NotificationService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	notification := NewNotificationService(repo, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Team:         NewTeamService(repo, logger),
		Holiday:      NewHolidayService(repo, logger),
		Hotline:      NewHotlineService(cfg, repo, rdb, logger),
		Coverage:     NewCoverageService(cfg, repo, logger),
		Swap:         NewSwapService(repo, notification, logger),
		Notification: notification,
		Export:       NewExportService(repo, logger),
	}
}
