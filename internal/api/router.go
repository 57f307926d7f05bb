package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/resdl_go_server/config"
	"github.com/qs3c/resdl_go_server/internal/api/handler"
	"github.com/qs3c/resdl_go_server/internal/api/middleware"
)

type Router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	quotaHandler    *handler.QuotaHandler
	downloadHandler *handler.DownloadHandler
	cfg             *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	quotaHandler *handler.QuotaHandler,
	downloadHandler *handler.DownloadHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:     authHandler,
		userHandler:     userHandler,
		quotaHandler:    quotaHandler,
		downloadHandler: downloadHandler,
		cfg:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 资源详情（可选认证）
		resources := api.Group("/resources")
		resources.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			resources.GET("/:id", r.downloadHandler.GetResource)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/avatar", r.userHandler.UploadAvatar)
				user.GET("/quota", r.quotaHandler.GetQuota)
				user.GET("/points", r.userHandler.ListPoints)
			}

			// 下载鉴权与扣费
			files := authenticated.Group("/resources/files")
			{
				files.GET("/:id/entitlement", r.downloadHandler.Entitlement)
				files.POST("/:id/download", r.downloadHandler.Download)
			}
		}
	}

	return engine
}
