package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/Arionyxx/PupClips/internal/config"
	"github.com/Arionyxx/PupClips/internal/db"
	"github.com/Arionyxx/PupClips/internal/handler"
	"github.com/Arionyxx/PupClips/internal/middleware"
	"github.com/Arionyxx/PupClips/internal/repository"
	"github.com/Arionyxx/PupClips/internal/router"
	"github.com/Arionyxx/PupClips/internal/service"
	"github.com/Arionyxx/PupClips/internal/storage"
	"github.com/Arionyxx/PupClips/internal/upload"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "pupclips-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.Options{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	store, err := storage.New(ctx, storage.Config{
		Endpoint:  cfg.StorageEndpoint,
		Region:    cfg.StorageRegion,
		Bucket:    cfg.StorageBucket,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		PublicURL: cfg.StoragePublicURL,
	})
	if err != nil {
		log.Fatalf("failed to configure object storage: %v", err)
	}

	videoRepo := repository.NewVideoRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)
	interactionRepo := repository.NewInteractionRepo(pool)

	videoSvc := service.NewVideoService(videoRepo, store, cache, middleware.Logger)
	uploadSvc := service.NewUploadService(store, videoRepo, cache, middleware.Logger)
	interactionSvc := service.NewInteractionService(interactionRepo, cache, middleware.Logger)

	handler.InitMetrics(pool)
	cache.Instrument(handler.Metrics.CacheHits, handler.Metrics.CacheMisses)

	h := &router.Handlers{
		Video:       handler.NewVideoHandler(videoSvc),
		Upload:      handler.NewUploadHandler(uploadSvc, upload.NewProber(), store, middleware.Logger),
		Interaction: handler.NewInteractionHandler(interactionSvc),
		Profile:     handler.NewProfileHandler(profileRepo),
		Stats:       handler.NewStatsHandler(profileRepo),
		Health:      handler.NewHealthHandler(pool, cache.Client(), store),
	}

	app := fiber.New(fiber.Config{
		AppName:      "PupClips API",
		ServerHeader: "PupClips",
		BodyLimit:    int(upload.MaxSizeBytes) + 1<<20,
	})

	router.Setup(app, h, router.Config{
		CORSOrigins: cfg.CORSOrigins,
		JWTSecret:   []byte(cfg.JWTSecret),
	})

	worker := service.NewCountWorker(pool, videoRepo, cache)
	worker.Instrument(handler.Metrics.RecountDuration)
	go worker.Start(ctx)

	log.Printf("PupClips Go backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
