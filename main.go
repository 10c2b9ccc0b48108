package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/photohub/photohub/handlers"
	"github.com/photohub/photohub/internal/config"
	"github.com/photohub/photohub/internal/database"
	"github.com/photohub/photohub/internal/photos"
	"github.com/photohub/photohub/internal/storage"
	"github.com/photohub/photohub/internal/users"
	"github.com/photohub/photohub/pkg/logger"
	"github.com/photohub/photohub/pkg/metrics"
	"github.com/photohub/photohub/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: uploads=%s users=%s mongo=%v redis=%v",
		cfg.Uploads.Dir, cfg.Users.FilePath, cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	// the upload directory owns all stored images; create it up front
	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		logger.Fatalf("failed to create upload directory %s: %v", cfg.Uploads.Dir, err)
	}

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional per-IP rate limiter; off by default so the core API surface
	// stays exactly as documented
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Credential store: flat JSON file by default, MongoDB when configured
	var userRepo users.Repository = users.NewJSONRepository(cfg.Users.FilePath)
	var mongoOK bool
	ctx := context.Background()
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Warnf("could not connect to MongoDB, falling back to JSON store: %v", err)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			userRepo = users.NewMongoRepository(client.Database(cfg.MongoDB.Database).Collection("users"))
			mongoOK = true
			logger.Infof("using MongoDB credential store (database=%s)", cfg.MongoDB.Database)
		}
	}
	userSvc := users.NewService(userRepo)

	// Photo pipeline; MinIO archival is wired only when an endpoint is configured
	photoSvc := photos.NewService(cfg.Uploads.Dir, cfg.Uploads.PublicPath, cfg.Uploads.MaxBytes)
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		archive, err := storage.NewMinIOArchive(mcfg)
		if err != nil {
			logger.Warnf("minio archive disabled: %v", err)
		} else {
			photoSvc.SetArchiver(archive)
			logger.Infof("archiving committed images to MinIO bucket %s", mcfg.Bucket)
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		// storage readiness: the upload directory must be enumerable
		if _, err := os.ReadDir(cfg.Uploads.Dir); err != nil {
			deps["uploads"] = false
			ready = false
		} else {
			deps["uploads"] = true
		}

		// Mongo readiness only matters when it was selected at startup
		if cfg.MongoDB.URI != "" {
			deps["mongo"] = mongoOK
			if !mongoOK {
				ready = false
			}
		} else {
			deps["mongo"] = true
		}

		// Redis readiness when used for the rate limiter
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		name := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			name = "not_ready"
		}
		c.JSON(status, gin.H{"status": name, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Plain-text route summary, as the original API exposed it
	r.GET("/api", func(c *gin.Context) {
		c.String(http.StatusOK, "API is up. Routes: /api/login, /api/register, /api/photos, /api/upload")
	})

	// Public API
	api := r.Group("/api")
	handlers.NewAuthHandler(userSvc).Register(api)
	handlers.NewPhotoHandler(photoSvc).Register(api)

	// Uploaded files are served statically under their public path
	r.Static(cfg.Uploads.PublicPath, cfg.Uploads.Dir)

	// Minimal Swagger UI + JSON for API documentation
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting photohub on %s in %s mode", addr, cfg.Server.Environment)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
