package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/losnachoschipies/news-server/app/controllers"
	"github.com/losnachoschipies/news-server/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Initialize controllers that carry configuration
	controllers.InitializeAuthController()

	api := app.Group("/api")

	api.Post("/login", controllers.HandleLogin)
	api.Get("/health", controllers.HandleHealth)

	requireAuth := middleware.RequireAuth()

	news := api.Group("/news")
	news.Get("/", controllers.HandleListNews)
	news.Get("/:id", controllers.HandleGetNews)
	news.Post("/", requireAuth, controllers.HandleCreateNews)
	news.Put("/:id", requireAuth, controllers.HandleUpdateNews)
	news.Delete("/:id", requireAuth, controllers.HandleDeleteNews)

	uploads := api.Group("/upload", requireAuth)
	uploads.Post("/", controllers.HandleUploadImage)
	uploads.Delete("/:filename", controllers.HandleDeleteImage)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
