package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shiva-profnl/chase-n-phrase-game/api"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/leaderboard"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/config"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/health"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/shutdown"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/startup"
	"github.com/shiva-profnl/chase-n-phrase-game/pkg/lifecycle"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置文件: %v", err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 1. 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 2. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 3. 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 4. 异步启动后台的持续健康检查器
	go health.StartRedisHealthCheck()

	// 5. 创建生命周期管理器并启动后台任务
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	snapshotHandle, err := gracefulMgr.NewServiceHandle("排行榜快照调度器")
	if err != nil {
		panic(fmt.Sprintf("无法创建快照调度器句柄: %v", err))
	}
	go leaderboard.StartSnapshotScheduler(snapshotHandle)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 6. 阻塞等待停机信号，编排两阶段优雅停机
	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
