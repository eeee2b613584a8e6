package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "laundry_lms/internal/domain/catalog"
	_ "laundry_lms/internal/domain/order"
	_ "laundry_lms/internal/domain/payment"
	_ "laundry_lms/internal/domain/user"

	"laundry_lms/internal/pkg/config"
	"laundry_lms/internal/pkg/events"
	"laundry_lms/internal/pkg/middleware"
	"laundry_lms/internal/pkg/registry"
	"laundry_lms/internal/pkg/worker"
	"laundry_lms/pkg/database"
	"laundry_lms/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. 配置与日志
	config.LoadConfig()
	logger.Init(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	// 2. 基础设施
	db := database.InitDatabase()
	rdb := database.InitRedis()

	// 3. 事件总线与异步任务池
	pool := worker.NewPool(config.GlobalConfig.Payment.WorkerNum, config.GlobalConfig.Payment.QueueSize)
	pool.Start()

	bus := events.NewBus(logger.Log)
	bus.SetAsyncDispatcher(pool)

	// 4. HTTP 引擎
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 5. 按优先级初始化各业务模块
	moduleCtx := &registry.ModuleContext{
		DB:      db,
		Redis:   rdb,
		Router:  r,
		Bus:     bus,
		Workers: pool,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("Failed to init modules", zap.Error(err))
	}

	// 6. 启动并优雅退出
	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Info("Server listening", zap.String("port", config.GlobalConfig.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
}
