package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/losnachoschipies/news-server/app/controllers"
	"github.com/losnachoschipies/news-server/app/repository"
	"github.com/losnachoschipies/news-server/internal/pkg/cleanup"
	"github.com/losnachoschipies/news-server/internal/pkg/constants"
	"github.com/losnachoschipies/news-server/internal/pkg/database"
	"github.com/losnachoschipies/news-server/internal/pkg/env"
	"github.com/losnachoschipies/news-server/internal/pkg/router"
	"github.com/losnachoschipies/news-server/internal/pkg/upload"
)

func main() {
	app, purge := NewApplication()

	purge.Start()

	go func() {
		addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "0.0.0.0"), env.GetEnv("APP_PORT", "3000"))
		if err := app.Listen(addr); err != nil {
			log.Fatal(err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down...")
	purge.Stop()
	if err := app.Shutdown(); err != nil {
		log.Errorf("shutdown failed: %v", err)
	}
}

// NewApplication wires the whole server: config, database, image store,
// routes and the background purge task.
func NewApplication() (*fiber.App, *cleanup.Manager) {
	env.SetupEnvFile()
	database.SetupDatabase()
	repository.InitializeFactory(database.GetDB())

	uploadsRoot := env.GetEnv("UPLOAD_DIR", "uploads")
	store, err := upload.NewStore(filepath.Join(uploadsRoot, constants.NewsImagesPath))
	if err != nil {
		panic(err)
	}
	controllers.InitializeUploadController(store)
	controllers.InitializeNewsController(store)

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // well above the 5 MiB upload cap so oversize files hit the handler's check, not a 413
	})

	app.Use(recover.New(), logger.New(), cors.New())

	// uploaded images
	app.Static(constants.UploadsRoute, uploadsRoot, fiber.Static{
		CacheDuration: 10 * time.Second,
		MaxAge:        604800, // 7 days
	})

	router.InstallRouter(app)

	// admin SPA build, when present. Registered after the API routes so
	// the catch-all cannot shadow them.
	adminBuild := env.GetEnv("ADMIN_BUILD_DIR", "admin/build")
	if _, err := os.Stat(adminBuild); err == nil {
		app.Static(constants.PublicRoute, adminBuild)
		// SPA fallback for client-side routes
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(adminBuild, "index.html"))
		})
	}

	purge := cleanup.NewManager(
		repository.GetGlobalFactory().GetNewsRepository(),
		cleanup.DefaultInterval,
	)

	return app, purge
}
