package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-contact-board/internal/core/cache"
	"go-gin-contact-board/internal/core/config"
	"go-gin-contact-board/internal/core/database"
	"go-gin-contact-board/internal/core/logger"
	"go-gin-contact-board/internal/core/server"
	"go-gin-contact-board/internal/repo"
	"go-gin-contact-board/internal/service"
	"go-gin-contact-board/internal/transport/http/handler"
	"go-gin-contact-board/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.Build(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: !cfg.Log.JSON,
		Name:        cfg.App.Name,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 可选缓存
	var svcOpts []service.Option
	svcOpts = append(svcOpts, service.WithLogger(log))
	if cfg.Redis.Enabled {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := c.Ping(ctx)
		cancel()
		if err != nil {
			log.Warn("redis unavailable, cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = c.Close()
		} else {
			defer c.Close()
			svcOpts = append(svcOpts, service.WithCache(c, time.Duration(cfg.Redis.TTLSec)*time.Second))
			log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 依赖
	images := service.NewImageIngestor(cfg.MaxImageBytes(), cfg.Image.AllowedTypes)
	contactSvc := service.NewContactService(repo.NewContactRepo(db), svcOpts...)
	postSvc := service.NewPostService(repo.NewPostRepo(db), images, service.Paging{
		DefaultLimit: cfg.Pagination.DefaultLimit,
		MaxLimit:     cfg.Pagination.MaxLimit,
	}, svcOpts...)

	check := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}

	mode := gin.ReleaseMode
	if cfg.App.Env == "local" {
		mode = gin.DebugMode
	}
	r := router.NewAPIEngine(log, router.Options{
		Mode:         mode,
		CORSOrigins:  cfg.App.HTTP.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes(),
		RPS:          cfg.Limits.RPS,
		Burst:        cfg.Limits.Burst,
		PerIPRPS:     cfg.Limits.PerIPRPS,
		PerIPBurst:   cfg.Limits.PerIPBurst,
		Concurrency:  cfg.Limits.Concurrency,
		Timeout:      time.Duration(cfg.Limits.TimeoutSec) * time.Second,
		Health:       check,
	},
		handler.NewContactHandler(contactSvc, log),
		handler.NewPostHandler(postSvc, log),
	)

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)
	opsSrv := server.BuildServer(
		server.Addr(cfg.App.Ops.Host, cfg.App.Ops.Port),
		router.NewOpsEngine(log, check),
		5*time.Second, 10*time.Second, 60*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
		zap.String("ops", opsSrv.Addr),
	)

	// 异步启动
	for _, s := range []*http.Server{srv, opsSrv} {
		go func(s *http.Server) {
			if err := server.StartHTTP(s, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal("http start FAILED", zap.String("addr", s.Addr), zap.Error(err))
			}
		}(s)
	}
	log.Info("api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	_ = opsSrv.Shutdown(ctx)
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
