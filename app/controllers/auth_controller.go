package controllers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/losnachoschipies/news-server/internal/pkg/env"
	"github.com/losnachoschipies/news-server/internal/pkg/security"
)

// AdminCredentials is the single admin identity the server accepts. There
// is no user table; the credential is injected from the environment at
// startup.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

var adminCredentials AdminCredentials

// InitializeAuthController resolves the admin credential from the
// environment. When no password hash is configured, the development
// default password is hashed at startup.
func InitializeAuthController() {
	username := env.GetEnv("ADMIN_USERNAME", env.DefaultAdminUsername)
	hash := env.GetEnv("ADMIN_PASSWORD_HASH", "")
	if hash == "" {
		generated, err := security.HashPassword(env.DefaultAdminPassword)
		if err != nil {
			panic(err)
		}
		hash = generated
		log.Warn("ADMIN_PASSWORD_HASH not set, using default admin password. Do not run this in production.")
	}
	if env.GetEnv("JWT_SECRET", "") == "" {
		log.Warn("JWT_SECRET not set, using insecure default. Do not run this in production.")
	}

	adminCredentials = AdminCredentials{Username: username, PasswordHash: hash}
}

// SetAdminCredentialsForTest overrides the configured credential in tests.
func SetAdminCredentialsForTest(creds AdminCredentials) {
	adminCredentials = creds
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin authenticates the admin and issues a bearer token.
// Wrong username and wrong password produce the identical response so the
// endpoint cannot be used to probe for valid usernames.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password are required"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password are required"})
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(adminCredentials.Username)) == 1
	passwordOK := security.VerifyPassword(adminCredentials.PasswordHash, req.Password)
	if !usernameOK || !passwordOK {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	secret := env.GetEnv("JWT_SECRET", env.DefaultJWTSecret)
	token, err := security.GenerateToken(adminCredentials.Username, secret, security.TokenTTL)
	if err != nil {
		log.Errorf("token generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Infof("admin login succeeded for %s", adminCredentials.Username)
	return c.JSON(fiber.Map{
		"token":    token,
		"username": adminCredentials.Username,
		"message":  "login successful",
	})
}
