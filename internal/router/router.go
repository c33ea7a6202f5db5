package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Arionyxx/PupClips/internal/handler"
	"github.com/Arionyxx/PupClips/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Video       *handler.VideoHandler
	Upload      *handler.UploadHandler
	Interaction *handler.InteractionHandler
	Profile     *handler.ProfileHandler
	Stats       *handler.StatsHandler
	Health      *handler.HealthHandler
}

// Config carries the router's cross-cutting settings.
type Config struct {
	CORSOrigins string
	JWTSecret   []byte
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, cfg Config) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(cfg.CORSOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (before API group, no auth needed)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	auth := middleware.NewAuth(cfg.JWTSecret)
	feedLimit := middleware.NewFeedRateLimiter().Handler()
	uploadLimit := middleware.NewUploadRateLimiter().Handler()
	interactionLimit := middleware.NewInteractionRateLimiter().Handler()
	statsLimit := middleware.NewStatsRateLimiter().Handler()

	api := app.Group("/api")

	// Feed routes
	api.Get("/videos", h.Video.ListFeed, feedLimit)
	api.Get("/videos/:videoId", h.Video.Get, feedLimit)
	api.Post("/videos/:videoId/view", h.Video.RecordView, feedLimit)

	// Upload routes
	api.Post("/videos", h.Upload.Create, auth, uploadLimit)
	api.Post("/videos/sign", h.Upload.Sign, auth, uploadLimit)
	api.Delete("/videos/:videoId", h.Video.Delete, auth)

	// Interaction routes
	api.Post("/videos/:videoId/like", h.Interaction.ToggleLike, auth, interactionLimit)
	api.Get("/videos/:videoId/liked", h.Interaction.Liked, auth)
	api.Get("/videos/:videoId/comments", h.Interaction.ListComments, feedLimit)
	api.Post("/videos/:videoId/comments", h.Interaction.CreateComment, auth, interactionLimit)
	api.Get("/comments/:commentId/replies", h.Interaction.ListReplies, feedLimit)
	api.Delete("/comments/:commentId", h.Interaction.DeleteComment, auth)

	// Profile routes
	api.Get("/profiles/by-username/:username", h.Profile.GetByUsername)
	api.Get("/profiles/:userId", h.Profile.Get)

	// Stats routes
	api.Get("/stats", h.Stats.Get, statsLimit)
}
