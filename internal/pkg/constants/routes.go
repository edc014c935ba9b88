package constants

// Static route constants
const (
	UploadsRoute = "/uploads"
	PublicRoute  = "/"
	// Image directory relative to the uploads root
	NewsImagesPath = "news-images"
)
