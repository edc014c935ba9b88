package repository

import (
	"time"

	"github.com/losnachoschipies/news-server/app/models"
	"gorm.io/gorm"
)

// newsRepository implements the NewsRepository interface
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository instance
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// Create persists a new announcement. The database assigns ID and CreatedAt.
func (r *newsRepository) Create(news *models.News) error {
	return r.db.Create(news).Error
}

// GetByID retrieves an announcement by its ID.
// Returns gorm.ErrRecordNotFound when no row matches.
func (r *newsRepository) GetByID(id uint) (*models.News, error) {
	var news models.News
	err := r.db.First(&news, id).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// GetAll retrieves every announcement, newest first.
func (r *newsRepository) GetAll() ([]models.News, error) {
	var news []models.News
	err := r.db.Order("created_at DESC").Find(&news).Error
	if news == nil {
		news = []models.News{}
	}
	return news, err
}

// Update replaces the stored row with the given record. ID and CreatedAt
// are never touched. Returns gorm.ErrRecordNotFound when no row matches.
func (r *newsRepository) Update(news *models.News) error {
	tx := r.db.Model(&models.News{}).Where("id = ?", news.ID).
		Updates(map[string]interface{}{
			"date":             news.Date,
			"title":            news.Title,
			"description":      news.Description,
			"type":             news.Type,
			"is_new":           news.IsNew,
			"full_description": news.FullDescription,
			"header_image":     news.HeaderImage,
			"gallery_images":   news.GalleryImages,
			"video_url":        news.VideoURL,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an announcement by its ID.
// Returns gorm.ErrRecordNotFound when no row matched, so a delete racing
// another delete of the same ID reports not-found instead of success.
func (r *newsRepository) Delete(id uint) error {
	tx := r.db.Delete(&models.News{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOlderThan removes every announcement created before cutoff and
// returns the number of rows deleted. Zero matches is not an error.
func (r *newsRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	tx := r.db.Where("created_at < ?", cutoff).Delete(&models.News{})
	return tx.RowsAffected, tx.Error
}

// Count returns the total number of announcements
func (r *newsRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.News{}).Count(&count).Error
	return count, err
}
