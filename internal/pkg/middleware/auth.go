package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/losnachoschipies/news-server/internal/pkg/env"
	"github.com/losnachoschipies/news-server/internal/pkg/security"
)

// LocalsUsername is the c.Locals key under which RequireAuth stores the
// authenticated admin username.
const LocalsUsername = "username"

// RequireAuth authenticates requests carrying an admin bearer token and
// returns JSON 401 when the token is missing, malformed or expired.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}

		secret := env.GetEnv("JWT_SECRET", env.DefaultJWTSecret)
		claims, err := security.VerifyToken(token, secret)
		if err != nil {
			log.Debugf("rejected token for %s %s: %v", c.Method(), c.OriginalURL(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(LocalsUsername, claims.Username)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
