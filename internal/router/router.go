package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/soltixdb/hotsax/internal/config"
	"github.com/soltixdb/hotsax/internal/handlers"
	"github.com/soltixdb/hotsax/internal/logging"
	"github.com/soltixdb/hotsax/internal/middleware"
	"github.com/soltixdb/hotsax/internal/queue"
	"github.com/soltixdb/hotsax/internal/worker"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, service handlers.DiscordService,
	dispatcher *worker.Dispatcher, queueClient queue.Queue, cfg config.Config,
) *handlers.Handler {
	h := handlers.New(logger, service, dispatcher, queueClient)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, "/health"))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)
	v1 := app.Group("/v1", authMiddleware)

	v1.Get("/detectors", h.ListDetectors)
	v1.Post("/discords", h.FindDiscords)

	// Asynchronous jobs, answered by a worker through the queue
	v1.Post("/discords/jobs", h.SubmitJob)
	v1.Get("/discords/jobs/:id", h.GetJob)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, service handlers.DiscordService,
	dispatcher *worker.Dispatcher, queueClient queue.Queue, cfg config.Config,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "HOT-SAX API",
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, service, dispatcher, queueClient, cfg)

	return app
}
