package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/losnachoschipies/news-server/internal/pkg/middleware"
)

// frenchMonths are the abbreviated month names the site has always shown,
// matching fr-FR short-month formatting.
var frenchMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// FormatDisplayDate renders a time as the human-readable display date
// stored on each announcement, e.g. "2 janv. 2026".
func FormatDisplayDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// ExtractUsername gets the authenticated username from Locals (set by the
// auth middleware). Empty when the request is unauthenticated.
func ExtractUsername(c *fiber.Ctx) string {
	if v := c.Locals(middleware.LocalsUsername); v != nil {
		if username, ok := v.(string); ok {
			return username
		}
	}
	return ""
}
