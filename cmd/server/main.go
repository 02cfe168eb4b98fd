package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/qs3c/shelf_server/config"
	"github.com/qs3c/shelf_server/internal/api"
	"github.com/qs3c/shelf_server/internal/api/handler"
	"github.com/qs3c/shelf_server/internal/database"
	"github.com/qs3c/shelf_server/internal/pkg/cron"
	"github.com/qs3c/shelf_server/internal/pkg/logger"
	"github.com/qs3c/shelf_server/internal/pkg/ratelimit"
	"github.com/qs3c/shelf_server/internal/pkg/tokenstore"
	"github.com/qs3c/shelf_server/internal/repository"
	"github.com/qs3c/shelf_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zl, err := logger.Init(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zl.Sync()

	// 初始化数据库
	db, err := database.Open(&cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		zl.Fatal("Failed to connect database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		zl.Fatal("Failed to migrate database", zap.Error(err))
	}
	zl.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// 初始化 Redis，不可用时关闭令牌吊销和限流
	var (
		blacklist *tokenstore.Blacklist
		limiter   *ratelimit.Limiter
	)
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		zl.Warn("Redis unavailable, token revocation and rate limiting disabled", zap.Error(err))
	} else {
		blacklist = tokenstore.NewBlacklist(rdb)
		limiter = ratelimit.NewLimiter(rdb, cfg.RateLimit.Requests,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
		zl.Info("Redis connected")
	}

	// 初始化 Repository
	tx := repository.NewTransactor(db)
	resolver := repository.NewTargetResolver(db)
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	listRepo := repository.NewListRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// 初始化 Service
	hydrator := service.NewHydrator(resolver, likeRepo, replyRepo, cfg.Feed.ExcerptLength)
	authService := service.NewAuthService(tx, userRepo, listRepo, blacklist, cfg)
	userService := service.NewUserService(userRepo, followRepo)
	contentService := service.NewContentService(resolver, contentRepo, ratingRepo, reviewRepo, listRepo)
	interactionService := service.NewInteractionService(tx, resolver, userRepo, ratingRepo, reviewRepo,
		listRepo, followRepo, likeRepo, replyRepo, activityRepo, hydrator)
	socialService := service.NewSocialService(tx, resolver, likeRepo, replyRepo)
	listService := service.NewListService(tx, listRepo, activityRepo, hydrator)
	feedService := service.NewFeedService(activityRepo, followRepo, userRepo, hydrator, cfg.Feed)

	// 初始化 Handler 与 Router
	handlers := api.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Content: handler.NewContentHandler(contentService),
		Rating:  handler.NewRatingHandler(interactionService, socialService),
		Review:  handler.NewReviewHandler(interactionService, socialService),
		Follow:  handler.NewFollowHandler(interactionService),
		List:    handler.NewListHandler(listService, interactionService),
		Reply:   handler.NewReplyHandler(socialService),
		Feed:    handler.NewFeedHandler(feedService),
	}
	engine := api.NewRouter(handlers, blacklist, limiter, cfg).Setup()

	// 定时清理孤立动态
	cronService := cron.NewService(activityRepo,
		time.Duration(cfg.Cleanup.IntervalMinutes)*time.Minute, cfg.Cleanup.BatchSize)
	cronService.Start()
	defer cronService.Stop()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		zl.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	zl.Info("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("Server shutdown failed", zap.Error(err))
	}
	zl.Info("Server stopped")
}
