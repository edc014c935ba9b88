package repository

import (
	"time"

	"github.com/losnachoschipies/news-server/app/models"
	"gorm.io/gorm"
)

// NewsRepository defines the interface for news-related database operations
type NewsRepository interface {
	Create(news *models.News) error
	GetByID(id uint) (*models.News, error)
	GetAll() ([]models.News, error)
	Update(news *models.News) error
	Delete(id uint) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	News NewsRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		News: NewNewsRepository(db),
	}
}
