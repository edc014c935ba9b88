package controllers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/losnachoschipies/news-server/app/models"
	"github.com/losnachoschipies/news-server/app/repository"
	"github.com/losnachoschipies/news-server/internal/pkg/upload"
)

var validate = validator.New()

// newsImageStore is used for the cascading file cleanup on delete.
var newsImageStore *upload.Store

// InitializeNewsController wires the image store used when deleting an
// announcement together with its uploaded files.
func InitializeNewsController(store *upload.Store) {
	newsImageStore = store
}

// newsRequest is the payload accepted by create and update.
type newsRequest struct {
	Date            string   `json:"date"`
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Type            string   `json:"type" validate:"required,oneof=update event reset maintenance info"`
	IsNew           *bool    `json:"isNew"`
	FullDescription string   `json:"fullDescription" validate:"required"`
	HeaderImage     *string  `json:"headerImage"`
	GalleryImages   []string `json:"galleryImages"`
	VideoURL        *string  `json:"videoUrl"`
}

var requiredNewsFields = []string{"title", "description", "type", "fullDescription"}

// validationError maps a validator failure onto the wire shape clients
// depend on: missing fields list the required set, a bad type enumerates
// the valid values.
func validationError(err error) fiber.Map {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		// Missing fields win over a bad type, the order clients have
		// always seen.
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return fiber.Map{
					"error":    "missing required fields",
					"required": requiredNewsFields,
				}
			}
		}
		for _, fe := range verrs {
			if fe.Tag() == "oneof" {
				return fiber.Map{
					"error":      "invalid type",
					"validTypes": models.ValidNewsTypes,
				}
			}
		}
	}
	return fiber.Map{
		"error":    "missing required fields",
		"required": requiredNewsFields,
	}
}

// toModel applies the server-side defaults: display date when none was
// supplied, isNew true, empty gallery instead of null.
func (r *newsRequest) toModel() models.News {
	date := r.Date
	if date == "" {
		date = FormatDisplayDate(time.Now())
	}
	isNew := true
	if r.IsNew != nil {
		isNew = *r.IsNew
	}
	gallery := models.StringList(r.GalleryImages)
	if gallery == nil {
		gallery = models.StringList{}
	}
	return models.News{
		Date:            date,
		Title:           r.Title,
		Description:     r.Description,
		Type:            r.Type,
		IsNew:           isNew,
		FullDescription: r.FullDescription,
		HeaderImage:     r.HeaderImage,
		GalleryImages:   gallery,
		VideoURL:        r.VideoURL,
	}
}

// HandleListNews returns every announcement, newest first. Public.
func HandleListNews(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetNewsRepository()
	news, err := repo.GetAll()
	if err != nil {
		log.Errorf("news list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(news)
}

// HandleGetNews returns a single announcement by ID. Public.
func HandleGetNews(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "news not found"})
	}

	repo := repository.GetGlobalFactory().GetNewsRepository()
	news, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "news not found"})
		}
		log.Errorf("news lookup failed for id %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(news)
}

// HandleCreateNews creates an announcement. Requires a valid bearer token.
func HandleCreateNews(c *fiber.Ctx) error {
	var req newsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}

	// The display date is always stamped server-side on create.
	req.Date = ""
	news := req.toModel()

	repo := repository.GetGlobalFactory().GetNewsRepository()
	if err := repo.Create(&news); err != nil {
		log.Errorf("news create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Infof("news created (id: %d) by %s", news.ID, ExtractUsername(c))
	return c.Status(fiber.StatusCreated).JSON(news)
}

// HandleUpdateNews replaces every mutable field of an announcement.
// Requires a valid bearer token. ID and CreatedAt never change.
func HandleUpdateNews(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "news not found"})
	}

	var req newsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}

	news := req.toModel()
	news.ID = uint(id)

	repo := repository.GetGlobalFactory().GetNewsRepository()
	if err := repo.Update(&news); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "news not found"})
		}
		log.Errorf("news update failed for id %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	updated, err := repo.GetByID(uint(id))
	if err != nil {
		// a delete racing in between the update and the reload
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "news not found"})
		}
		log.Errorf("news reload failed for id %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Infof("news updated (id: %d) by %s", id, ExtractUsername(c))
	return c.JSON(updated)
}

// HandleDeleteNews removes an announcement and every image file it
// references. Requires a valid bearer token.
//
// The record is fetched first because the image URLs are only known while
// the row still exists. File removal is best-effort; a file already gone
// never blocks deletion of the record. A concurrent delete of the same ID
// is detected at the row delete and reported as 404.
func HandleDeleteNews(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "news not found"})
	}

	repo := repository.GetGlobalFactory().GetNewsRepository()
	news, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "news not found"})
		}
		log.Errorf("news lookup failed for id %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	if newsImageStore != nil {
		if news.HeaderImage != nil {
			newsImageStore.RemoveByURL(*news.HeaderImage)
		}
		for _, imageURL := range news.GalleryImages {
			newsImageStore.RemoveByURL(imageURL)
		}
	}

	if err := repo.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "news not found"})
		}
		log.Errorf("news delete failed for id %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Infof("news deleted (id: %d) by %s", id, ExtractUsername(c))
	return c.SendStatus(fiber.StatusNoContent)
}
