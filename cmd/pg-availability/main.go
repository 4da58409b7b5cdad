package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srikanth112236/pg-application-sub003/internal/cache"
	"github.com/srikanth112236/pg-application-sub003/internal/client"
	"github.com/srikanth112236/pg-application-sub003/internal/config"
	"github.com/srikanth112236/pg-application-sub003/internal/database"
	httpapi "github.com/srikanth112236/pg-application-sub003/internal/http"
	logpkg "github.com/srikanth112236/pg-application-sub003/internal/logger"
	"github.com/srikanth112236/pg-application-sub003/internal/repository"
	"github.com/srikanth112236/pg-application-sub003/internal/service"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	log, err := logpkg.NewLogger(cfg.Log.Level, cfg.Log.Format, "pg-availability")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting pg-availability service")

	// PG 后端客户端
	backend := client.New(
		cfg.Backend.BaseURL,
		cfg.Backend.Token,
		cfg.Backend.Timeout,
		cfg.Backend.RetryCount,
		log,
	)

	// Redis 快照缓存（可选：连不上只是没有暖启动，不影响服务）
	var snapshotCache service.SnapshotStore
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable, snapshot cache disabled", zap.Error(err))
			redisClient.Close()
			redisClient = nil
		} else {
			snapshotCache = cache.NewSnapshotCache(cache.NewRedisKVStore(redisClient), cfg.CacheTTL, log)
		}
	}

	// 历史统计存储（可选）
	var db *sql.DB
	var historyRepo *repository.SnapshotHistoryRepository
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			historyRepo = repository.NewSnapshotHistoryRepository(db, log)
			log.Info("DB enabled for snapshot history")
		} else {
			log.Warn("DB enabled but connection failed, history disabled", zap.Error(err))
		}
	}

	// 房态聚合服务
	var history service.HistoryRecorder
	if historyRepo != nil {
		history = historyRepo
	}
	svc := service.NewAvailabilityService(backend, snapshotCache, history, log)

	// HTTP 路由
	var lister httpapi.HistoryLister
	if historyRepo != nil {
		lister = historyRepo
	}
	handler := httpapi.NewAvailabilityHandler(svc, lister, log)
	router := httpapi.NewRouter(log)
	router.RegisterAvailabilityRoutes(handler)

	server := service.NewServer(cfg.HTTP.Addr, router, log)

	// 预加载默认分店（可选，失败不阻止启动）
	if cfg.Availability.DefaultBranchID != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout*2)
			defer cancel()
			if _, err := svc.Snapshot(ctx, cfg.Availability.DefaultBranchID); err != nil {
				log.Warn("Failed to preload default branch",
					zap.String("branch_id", cfg.Availability.DefaultBranchID),
					zap.Error(err),
				)
			}
		}()
	}

	// 启动服务（在 goroutine 中）
	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- err
		}
	}()

	// 监听系统信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
	}

	// 优雅停止
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Error("Error stopping server", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis connection", zap.Error(err))
		}
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			log.Error("Error closing database connection", zap.Error(err))
		}
	}

	log.Info("Service stopped")
}
