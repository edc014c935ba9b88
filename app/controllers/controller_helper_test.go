package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/losnachoschipies/news-server/app/models"
	"github.com/losnachoschipies/news-server/app/repository"
	"github.com/losnachoschipies/news-server/internal/pkg/env"
	"github.com/losnachoschipies/news-server/internal/pkg/middleware"
	"github.com/losnachoschipies/news-server/internal/pkg/security"
	"github.com/losnachoschipies/news-server/internal/pkg/upload"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "correct-horse"
)

var (
	testSetupOnce sync.Once
	testStore     *upload.Store
	testDB        *gorm.DB
)

// setupTestApp initializes the shared test database and image store once
// per test binary and returns a fiber app with the API routes mounted the
// same way the router mounts them.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	testSetupOnce.Do(func() {
		dir, err := os.MkdirTemp("", "news-server-test-*")
		if err != nil {
			panic(err)
		}

		db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "news.db")), &gorm.Config{})
		if err != nil {
			panic(err)
		}
		if err := db.AutoMigrate(&models.News{}); err != nil {
			panic(err)
		}
		testDB = db
		repository.InitializeFactory(db)

		testStore, err = upload.NewStore(filepath.Join(dir, "news-images"))
		if err != nil {
			panic(err)
		}
		InitializeUploadController(testStore)
		InitializeNewsController(testStore)

		hash, err := security.HashPassword(testAdminPassword)
		if err != nil {
			panic(err)
		}
		SetAdminCredentialsForTest(AdminCredentials{Username: testAdminUsername, PasswordHash: hash})
	})

	// Same body limit as the real application so oversized uploads reach
	// the handler's own size check.
	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	api := app.Group("/api")

	api.Post("/login", HandleLogin)
	api.Get("/health", HandleHealth)

	requireAuth := middleware.RequireAuth()

	news := api.Group("/news")
	news.Get("/", HandleListNews)
	news.Get("/:id", HandleGetNews)
	news.Post("/", requireAuth, HandleCreateNews)
	news.Put("/:id", requireAuth, HandleUpdateNews)
	news.Delete("/:id", requireAuth, HandleDeleteNews)

	uploads := api.Group("/upload", requireAuth)
	uploads.Post("/", HandleUploadImage)
	uploads.Delete("/:filename", HandleDeleteImage)

	return app
}

// adminToken issues a bearer token the auth middleware accepts.
func adminToken(t *testing.T) string {
	t.Helper()
	token, err := security.GenerateToken(testAdminUsername, env.DefaultJWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

// doJSON performs a JSON request against the app, optionally authenticated.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody unmarshals a JSON response body into out.
func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "2 janv. 2026", FormatDisplayDate(time.Date(2026, time.January, 2, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "15 août 2025", FormatDisplayDate(time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 déc. 2024", FormatDisplayDate(time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)))
}

func TestHandleHealth(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/health", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body.Status)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}
