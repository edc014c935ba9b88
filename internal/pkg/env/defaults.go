package env

// Development-only fallbacks. Every one of them is insecure and must be
// overridden via environment or .env before a production deployment.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultJWTSecret     = "change-me-in-production"
)
