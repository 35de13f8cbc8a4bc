package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"erisync/backend/config"
	"erisync/backend/internal/api/handler"
	"erisync/backend/internal/api/middleware"
	"erisync/backend/pkg/jwt"
	"erisync/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口单独限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.GET("", middleware.RoleAuth("admin", "leader"), h.User.ListUsers)
				users.GET("/:id", middleware.RoleAuth("admin", "leader"), h.User.GetUser)
				users.PUT("/:id", h.User.UpdateUser) // admin 或本人（Handler 层鉴权）
			}

			// 团队模块
			teams := authorized.Group("/teams")
			{
				teams.GET("", h.Team.ListTeams)
				teams.GET("/:id", h.Team.GetTeam)
				teams.POST("", middleware.RoleAuth("admin"), h.Team.CreateTeam)
				teams.PUT("/:id", middleware.RoleAuth("admin"), h.Team.UpdateTeam)
				teams.DELETE("/:id", middleware.RoleAuth("admin"), h.Team.DeleteTeam)
				teams.GET("/:id/members", middleware.RoleAuth("admin", "leader"), h.Team.GetMembers)
				teams.PUT("/:id/hotline-members", middleware.RoleAuth("admin", "leader"), h.Team.SetHotlineMembers)
			}

			// 节假日模块
			holidays := authorized.Group("/holidays")
			{
				holidays.GET("", h.Holiday.ListHolidays)
				holidays.POST("", middleware.RoleAuth("admin"), h.Holiday.CreateHoliday)
				holidays.POST("/import-ics", middleware.RoleAuth("admin"), h.Holiday.ImportICS)
				holidays.DELETE("/:id", middleware.RoleAuth("admin"), h.Holiday.DeleteHoliday)
			}

			// 热线轮值模块
			hotline := authorized.Group("/hotline")
			{
				hotline.GET("/teams/:id/eligible-members", middleware.RoleAuth("admin", "leader"), h.Hotline.GetEligibleMembers)
				hotline.GET("/teams/:id/config", middleware.RoleAuth("admin", "leader"), h.Hotline.GetConfig)
				hotline.PUT("/teams/:id/config", middleware.RoleAuth("admin", "leader"), h.Hotline.UpdateConfig)
				hotline.POST("/rotation/preview", middleware.RoleAuth("admin", "leader"), h.Hotline.PreviewRotation)
				hotline.POST("/rotation/drafts", middleware.RoleAuth("admin", "leader"), h.Hotline.GenerateDrafts)
				hotline.POST("/rotation/apply", middleware.RoleAuth("admin", "leader"), h.Hotline.ApplyDirect)
				hotline.GET("/drafts", middleware.RoleAuth("admin", "leader"), h.Hotline.ListDrafts)
				hotline.POST("/finalize", middleware.RoleAuth("admin", "leader"), h.Hotline.Finalize)
				hotline.GET("/assignments", h.Hotline.ListAssignments)
			}

			// 覆盖分析模块
			coverage := authorized.Group("/coverage")
			{
				coverage.GET("/analysis", middleware.RoleAuth("admin", "leader"), h.Coverage.Analyze)
				coverage.GET("/teams/:id/capacity", middleware.RoleAuth("admin", "leader"), h.Coverage.GetCapacity)
				coverage.PUT("/teams/:id/capacity", middleware.RoleAuth("admin", "leader"), h.Coverage.UpdateCapacity)
			}

			// 换班模块
			swaps := authorized.Group("/swaps")
			{
				swaps.POST("", h.Swap.CreateSwap)
				swaps.GET("", h.Swap.ListSwaps)
				swaps.POST("/:id/respond", h.Swap.RespondSwap)
				swaps.POST("/:id/approve", middleware.RoleAuth("admin", "leader"), h.Swap.ApproveSwap)
				swaps.POST("/:id/reject", middleware.RoleAuth("admin", "leader"), h.Swap.RejectSwap)
				swaps.POST("/:id/cancel", h.Swap.CancelSwap)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListNotifications)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/hotline-plan", middleware.RoleAuth("admin", "leader"), h.Export.ExportHotlinePlan)
			}
		}
	}

	return r
}
