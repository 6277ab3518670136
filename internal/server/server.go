package server

import (
	"time"

	"github.com/flowbaker/copysmith/internal/controllers"
	"github.com/flowbaker/copysmith/internal/middlewares"
	"github.com/flowbaker/copysmith/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

const serviceName = "copysmith"

type HTTPServerDependencies struct {
	BatchController *controllers.BatchController
	// MaxUploadSize bounds the request body in bytes. Zero keeps the fiber default.
	MaxUploadSize int
	// APIToken protects every route but /health when set.
	APIToken string
}

func NewHTTPServer(deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:   serviceName,
		BodyLimit: deps.MaxUploadSize,
	})

	router.Use(cors.New())
	router.Use(logger.New())

	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   serviceName,
			"version":   version.GetVersion(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/")
	if deps.APIToken != "" {
		api.Use(middlewares.APITokenMiddleware(deps.APIToken))
	}

	api.Get("/languages", deps.BatchController.ListLanguages)
	api.Get("/style-options", deps.BatchController.StyleOptions)
	api.Post("/batches", deps.BatchController.CreateBatch)

	return router
}
