package handler

import "erisync/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Team         *TeamHandler
	Holiday      *HolidayHandler
	Hotline      *HotlineHandler
	Coverage     *CoverageHandler
	Swap         *SwapHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Team:         NewTeamHandler(svc.Team),
		Holiday:      NewHolidayHandler(svc.Holiday),
		Hotline:      NewHotlineHandler(svc.Hotline),
		Coverage:     NewCoverageHandler(svc.Coverage),
		Swap:         NewSwapHandler(svc.Swap),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export),
	}
}
