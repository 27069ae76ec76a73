package main

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/postline/config"
	"github.com/d60-Lab/postline/internal/api/handler"
	"github.com/d60-Lab/postline/internal/api/router"
	"github.com/d60-Lab/postline/internal/cache"
	"github.com/d60-Lab/postline/internal/model"
	"github.com/d60-Lab/postline/internal/repository"
	"github.com/d60-Lab/postline/internal/service"
	"github.com/d60-Lab/postline/pkg/database"
	"github.com/d60-Lab/postline/pkg/logger"
	"github.com/d60-Lab/postline/pkg/storage"
	"github.com/d60-Lab/postline/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Fatal("init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, cfg, "postline")
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(ctx) }()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
	); err != nil {
		logger.Fatal("migrate schema", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("ping redis", zap.Error(err))
	}
	defer redisClient.Close()

	store, err := storage.NewImageStore(cfg.App.MediaRoot)
	if err != nil {
		logger.Fatal("init media store", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	postSvc := service.NewPostService(db, postRepo, groupRepo, userRepo, commentRepo, cfg.App.PageSize)
	commentSvc := service.NewCommentService(commentRepo, postRepo)
	groupSvc := service.NewGroupService(groupRepo)
	relSvc := service.NewRelationshipService(followRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)

	lc := cache.NewListingCache(redisClient, cfg.App.CacheTTL)
	h := handler.New(postSvc, commentSvc, groupSvc, relSvc, authSvc, store, lc)
	r := router.Setup(cfg, h, authSvc, lc)

	logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
