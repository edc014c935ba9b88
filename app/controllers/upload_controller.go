package controllers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/losnachoschipies/news-server/internal/pkg/upload"
)

var uploadStore *upload.Store

// InitializeUploadController wires the image store used by the upload
// endpoints.
func InitializeUploadController(store *upload.Store) {
	uploadStore = store
}

// HandleUploadImage accepts a multipart image (field "image"), validates
// type and size before anything touches disk, stores it under a generated
// name and returns the public URL. Requires a valid bearer token.
func HandleUploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no file provided"})
	}

	if file.Size > upload.MaxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": upload.ErrFileTooLarge.Error()})
	}

	head, err := readFileHead(file)
	if err != nil {
		log.Errorf("upload read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	if _, err := upload.ValidateImageBySniff(file.Filename, head); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	filename, url, err := uploadStore.Save(file)
	if err != nil {
		log.Errorf("upload save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Infof("image uploaded: %s (%d bytes) by %s", filename, file.Size, ExtractUsername(c))
	return c.JSON(fiber.Map{
		"success":  true,
		"url":      url,
		"filename": filename,
	})
}

// HandleDeleteImage removes a stored image by file name. Deleting a file
// that is already gone reports 404, not success. Requires a valid bearer
// token.
func HandleDeleteImage(c *fiber.Ctx) error {
	filename := c.Params("filename")

	if err := uploadStore.Remove(filename); err != nil {
		switch {
		case errors.Is(err, upload.ErrInvalidFilename):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid filename"})
		case errors.Is(err, upload.ErrFileNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
		default:
			log.Errorf("image delete failed for %s: %v", filename, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	log.Infof("image deleted: %s by %s", filename, ExtractUsername(c))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "image deleted",
	})
}

// readFileHead returns the first bytes of the upload for content sniffing.
func readFileHead(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}
