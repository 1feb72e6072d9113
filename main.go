package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"autohub/internal/config"
	"autohub/internal/db"
	"autohub/internal/handler"
	"autohub/internal/middleware"
	"autohub/internal/mongo"
	"autohub/internal/repository"
	"autohub/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	pg, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	defer pg.Close()

	if err := db.RunMigrations(pg); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	mongoClient, err := mongo.NewClient(cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	// Repositories
	userRepo := repository.NewUserRepository(pg)
	listingRepo := repository.NewListingRepository(pg)
	followRepo := repository.NewFollowRepository(pg)
	notifRepo := repository.NewNotificationRepository(pg)
	eventRepo := repository.NewEventRepository(pg)
	postRepo := repository.NewPostRepository(pg)
	photoRepo := repository.NewPhotoRepository(mongoClient, cfg.MongoDB)

	// Services
	fanout := service.NewNotificationFanout(notifRepo, userRepo, logger)
	followSvc := service.NewFollowService(followRepo, fanout)

	// Handlers
	authHandler := &handler.AuthHandler{
		Users:     userRepo,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  time.Duration(cfg.TokenTTLMin) * time.Minute,
		Log:       logger,
	}
	userHandler := &handler.UserHandler{Users: userRepo, Log: logger}
	listingHandler := &handler.ListingHandler{Repo: listingRepo, Photos: photoRepo, Log: logger}
	followHandler := &handler.FollowHandler{Svc: followSvc, Log: logger}
	notifHandler := &handler.NotificationHandler{Repo: notifRepo, Log: logger}
	eventHandler := &handler.EventHandler{Repo: eventRepo, Log: logger}
	postHandler := &handler.PostHandler{Repo: postRepo, Log: logger}
	photoHandler := &handler.PhotoHandler{Repo: photoRepo, Log: logger}

	r := gin.Default()
	api := r.Group("/api")

	protected := api.Group("/")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))

	authHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api, protected)
	listingHandler.RegisterRoutes(api, protected)
	followHandler.RegisterRoutes(api, protected)
	notifHandler.RegisterRoutes(protected)
	eventHandler.RegisterRoutes(api, protected)
	postHandler.RegisterRoutes(api, protected)
	photoHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("autohub listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
