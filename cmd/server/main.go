// Package main 是应用程序的入口点。
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

	"curalink-go/internal/config"
	"curalink-go/internal/handler"
	"curalink-go/internal/pipeline"
	"curalink-go/internal/repository"
	"curalink-go/internal/service"
	"curalink-go/pkg/clinicaltrials"
	"curalink-go/pkg/database"
	"curalink-go/pkg/log"
	"curalink-go/pkg/pubmed"
	"curalink-go/pkg/summarizer"
	"curalink-go/pkg/token"

	"github.com/gin-gonic/gin"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	// 1. 初始化配置，配置文件不存在时只使用默认值与环境变量
	configPath := defaultConfigPath
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		configPath = ""
	}
	config.Init(configPath)
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	if cfg.JWT.Secret == "" {
		log.Fatalf("JWT secret 未配置 (JWT_SECRET)")
	}
	if cfg.Summarizer.APIKey == "" {
		log.Warnf("HF_API_KEY 未配置, 所有摘要都将回退为占位文本")
	}

	// 3. 初始化数据库和 Redis
	database.Init(cfg.Database.Driver, cfg.Database.DSN)
	if cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(database.DB); err != nil {
			log.Fatal("数据库迁移失败", err)
		}
	}
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	pubRepo := repository.NewPublicationRepository(database.DB)
	trialRepo := repository.NewTrialRepository(database.DB)
	profileRepo := repository.NewProfileRepository(database.DB)
	blacklist := repository.NewTokenBlacklist(database.RDB)

	// 5. 初始化外部客户端与 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	pubmedClient := pubmed.NewClient(cfg.PubMed)
	trialsClient := clinicaltrials.NewClient(cfg.ClinicalTrials)
	enricher := pipeline.NewEnricher(summarizer.NewClient(cfg.Summarizer), cfg.Summarizer.Concurrency)

	userService := service.NewUserService(userRepo, blacklist, jwtManager)
	searchService := service.NewSearchService(pubmedClient, trialsClient, enricher, pubRepo, trialRepo, profileRepo)

	// 6. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(handler.RouterDeps{
		DB:            database.DB,
		JWTManager:    jwtManager,
		Blacklist:     blacklist,
		UserService:   userService,
		SearchService: searchService,
	})

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	if database.RDB != nil {
		_ = database.RDB.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("服务已优雅关闭")
}
