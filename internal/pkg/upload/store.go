package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// URLPrefix is the public path under which stored images are served.
const URLPrefix = "/uploads/news-images/"

const (
	thumbnailSubdir = "thumbnails"
	thumbnailSize   = 300
)

// ErrFileNotFound is returned when a removal targets a file that does not
// exist. Repeated deletes of the same file keep reporting it.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFilename rejects names that could escape the image directory.
var ErrInvalidFilename = errors.New("invalid filename")

var urlPattern = regexp.MustCompile(`/uploads/news-images/([^/]+)$`)

// Store manages news image files on local disk.
type Store struct {
	dir string
}

// NewStore creates the image directory (and its thumbnail subdirectory)
// if needed and returns a store rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, thumbnailSubdir), 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes an accepted upload to disk under a collision-proof generated
// name and returns that name plus the public URL. A thumbnail variant is
// generated best-effort; its failure never fails the upload.
func (s *Store) Save(file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := "news-" + uuid.NewString() + ext

	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filepath.Join(s.dir, name))
		return "", "", err
	}
	if err := dst.Close(); err != nil {
		return "", "", err
	}

	s.generateThumbnail(name)

	return name, URLPrefix + name, nil
}

// generateThumbnail renders a small variant for the admin list view.
func (s *Store) generateThumbnail(name string) {
	img, err := imaging.Open(filepath.Join(s.dir, name))
	if err != nil {
		log.Warnf("thumbnail skipped for %s: %v", name, err)
		return
	}
	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	thumbPath := filepath.Join(s.dir, thumbnailSubdir, name)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Warnf("thumbnail save failed for %s: %v", name, err)
	}
}

// Remove deletes a stored image and its thumbnail. Returns ErrFileNotFound
// when the image is already gone and ErrInvalidFilename for names that are
// not plain file names.
func (s *Store) Remove(filename string) error {
	if !validFilename(filename) {
		return ErrInvalidFilename
	}

	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}

	// Thumbnail may legitimately be absent.
	if err := os.Remove(filepath.Join(s.dir, thumbnailSubdir, filename)); err != nil && !os.IsNotExist(err) {
		log.Warnf("thumbnail removal failed for %s: %v", filename, err)
	}
	return nil
}

// RemoveByURL extracts the file name from a stored image URL and deletes
// the file best-effort. Used by the news cascade delete, where a missing
// file must never block removal of the record.
func (s *Store) RemoveByURL(url string) {
	match := urlPattern.FindStringSubmatch(url)
	if match == nil {
		return
	}
	if err := s.Remove(match[1]); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return
		}
		log.Warnf("image removal failed for %s: %v", match[1], err)
		return
	}
	log.Infof("image removed: %s", match[1])
}

func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
