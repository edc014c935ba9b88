package upload

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxFileSize is the upload cap in bytes (5 MiB).
const MaxFileSize = 5 * 1024 * 1024

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	// Note: SVG is intentionally excluded due to XSS risk without sanitization
}

var allowedMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ErrFileTooLarge is returned before any disk write for oversized uploads.
var ErrFileTooLarge = errors.New("file exceeds the 5 MiB upload limit")

// ErrUnsupportedType is returned for files outside the image whitelist.
var ErrUnsupportedType = errors.New("unsupported file type, use JPG, JPEG, PNG, GIF or WebP")

// ValidateImageBySniff checks the provided filename (extension) and the first
// bytes (head) against the image whitelist. Returns the detected mime type
// or an error. Nothing is written to disk before this passes.
func ValidateImageBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", ErrUnsupportedType
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", ErrUnsupportedType
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		return "", ErrUnsupportedType
	}

	// WebP may come back as octet-stream on some Go versions; allow by extension
	if detected == "application/octet-stream" && allowedExt[ext] {
		return detected, nil
	}

	if allowedMime[detected] {
		return detected, nil
	}

	return "", ErrUnsupportedType
}
