package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ph46m/ttknew/internal/config"
	"github.com/ph46m/ttknew/internal/handlers"
	"github.com/ph46m/ttknew/internal/middleware"
	"github.com/ph46m/ttknew/internal/repository"
	"github.com/ph46m/ttknew/internal/services"
	"github.com/ph46m/ttknew/internal/store"
	"github.com/ph46m/ttknew/internal/upstream"
	"github.com/ph46m/ttknew/pkg/cache"
	"github.com/ph46m/ttknew/pkg/logger"
	"github.com/ph46m/ttknew/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger(cfg.Log.Level)
	logger.Info("Starting social video API server...")

	// Document store backing the three collections
	var documents store.Store
	switch cfg.Storage.Driver {
	case "memory":
		documents = store.NewMemoryStore()
	default:
		fileStore, err := store.NewFileStore(cfg.Storage.Dir, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize file store")
		}
		documents = fileStore
	}

	// Optional feed cache
	var feedCache services.FeedCache
	if cfg.Redis.Enabled {
		redisClient := cache.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()); err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		feedCache = redisClient
	}

	// Optional event publishing
	var producer queue.Publisher = queue.NopPublisher{}
	if cfg.Kafka.Enabled() {
		producer = queue.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer producer.Close()

	// Upstream clients
	fileHost := upstream.NewFileHost(cfg.Upload.Endpoint, cfg.Upload.Timeout)
	searchClient := upstream.NewSearchClient(cfg.Search.Endpoint, cfg.Search.APIKey, cfg.Search.Timeout)

	// Repositories
	userRepo := repository.NewUserRepository(documents)
	engRepo := repository.NewEngagementRepository(documents)

	// Services
	userService := services.NewUserService(userRepo, engRepo, producer, logger)
	engService := services.NewEngagementService(engRepo, userRepo, producer, logger)
	feedService := services.NewFeedService(userRepo, searchClient, feedCache, cfg.Redis.FeedTTL, producer, logger)
	uploadService := services.NewUploadService(userRepo, fileHost, feedCache, producer, logger)

	// Handlers
	userHandler := handlers.NewUserHandler(userService, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	engHandler := handlers.NewEngagementHandler(engService)
	feedHandler := handlers.NewFeedHandler(feedService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.OptionalAuth(cfg.JWT.Secret))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/register", userHandler.Register)
		api.POST("/login", userHandler.Login)
		api.GET("/user/:username", userHandler.GetProfile)
		api.GET("/user/:username/videos", feedHandler.UserVideos)
		api.POST("/user/add-video", feedHandler.AddVideo)
		api.POST("/follow", userHandler.Follow)
		api.POST("/unfollow", userHandler.Unfollow)
		api.POST("/like", engHandler.Like)
		api.POST("/comment", engHandler.Comment)
		api.POST("/comments", engHandler.ListComments)
		api.GET("/feed", feedHandler.Feed)
		api.POST("/videos", feedHandler.SearchVideos)
		api.POST("/search/users", userHandler.SearchUsers)
		api.POST("/upload", uploadHandler.Upload)
	}
	router.POST("/atualizar-perfil", userHandler.UpdateProfile)
	router.GET("/search", feedHandler.SearchVideosGet)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func init() {
	if err := os.MkdirAll("configs", 0755); err != nil {
		log.Printf("Failed to create configs directory: %v", err)
	}

	configPath := "configs/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			log.Printf("Failed to create default config: %v", err)
		}
	}
}

func createDefaultConfig(path string) error {
	defaultConfig := `server:
  port: ":3000"
  mode: "debug"
  read_timeout: 30s
  write_timeout: 30s

storage:
  driver: "file"   # file | memory
  dir: "data"

upload:
  endpoint: "https://catbox.moe/user/api.php"
  timeout: 15s

search:
  endpoint: "https://kamuiapi.shop/api/ferramenta/tiktok-search"
  api_key: "dantes15s"
  timeout: 10s

redis:
  enabled: false
  host: "localhost"
  port: 6379
  password: ""
  db: 0
  feed_ttl: 30s

kafka:
  brokers: []
  topic: "social-video-events"

jwt:
  secret: "your-secret-key-change-in-production"
  expire_time: 24h

log:
  level: "info"`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
