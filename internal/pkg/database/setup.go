package database

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/losnachoschipies/news-server/app/models"
	"github.com/losnachoschipies/news-server/internal/pkg/env"
)

var DB *gorm.DB

// SetupDatabase opens (or creates) the SQLite database file and migrates
// the news table. The directory holding the file is created on demand.
func SetupDatabase() {
	path := env.GetEnv("DB_PATH", "database/news.db")
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(&models.News{}); err != nil {
		panic(err)
	}

	DB = db
	log.Infof("connected to sqlite database at %s", path)
}

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	return DB
}
