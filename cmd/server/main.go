package main

import (
	"fmt"
	"log"

	"github.com/qs3c/resdl_go_server/config"
	"github.com/qs3c/resdl_go_server/internal/api"
	"github.com/qs3c/resdl_go_server/internal/api/handler"
	"github.com/qs3c/resdl_go_server/internal/database"
	"github.com/qs3c/resdl_go_server/internal/pkg/cron"
	"github.com/qs3c/resdl_go_server/internal/pkg/oss"
	"github.com/qs3c/resdl_go_server/internal/pkg/queue"
	"github.com/qs3c/resdl_go_server/internal/repository"
	"github.com/qs3c/resdl_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS（可选）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	// 初始化下载审计事件队列
	eventQueue := queue.NewQueue(rdb, cfg.Queue.DownloadQueue)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	pointsRepo := repository.NewPointsRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, cfg)
	quotaService := service.NewQuotaService(userRepo, cfg)
	userService := service.NewUserService(userRepo, pointsRepo, ossClient, cfg)
	entitlementService := service.NewEntitlementService(purchaseRepo, cfg)
	revenueService := service.NewRevenueService(userRepo, pointsRepo, cfg)
	paymentService := service.NewPaymentService(db, userRepo, purchaseRepo, pointsRepo, revenueService, cfg)
	downloadService := service.NewDownloadService(resourceRepo, entitlementService, paymentService, quotaService, ossClient, eventQueue, cfg)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	quotaHandler := handler.NewQuotaHandler(quotaService)
	downloadHandler := handler.NewDownloadHandler(downloadService)

	// 启动每日配额重置任务
	cronService := cron.NewService(quotaService)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		quotaHandler,
		downloadHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
