package middleware

import (
	"net/url"
	"strings"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Route-classification lists. Patterns are exact paths or a prefix followed
// by the literal suffix "(.*)", which also matches the bare prefix. Evaluated
// in order; first match wins.
var publicRoutes = []string{
	"/",
	"/sign-in(.*)",
	"/sign-up(.*)",
	"/api/webhooks/clerk",
	"/api/health",
}

var protectedRoutes = []string{
	"/dashboard(.*)",
	"/ideas(.*)",
	"/generator(.*)",
	"/library(.*)",
	"/settings(.*)",
	"/api/ideas(.*)",
	"/api/generate(.*)",
	"/api/performance(.*)",
	"/api/templates(.*)",
}

var staticSuffixes = []string{
	".html", ".css", ".js", ".jpg", ".jpeg", ".webp", ".png", ".gif",
	".svg", ".ttf", ".woff", ".woff2", ".ico", ".csv", ".docx", ".xlsx",
	".zip", ".webmanifest", ".map", ".txt",
}

// RequestGate classifies every request before it reaches a handler: public
// routes pass, protected routes without a session redirect to sign-in with
// the original path as redirect_url, and signed-in users hitting the literal
// auth pages bounce to the dashboard.
func RequestGate(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		if skipGate(path) {
			return c.Next()
		}

		if MatchRoute(publicRoutes, path) {
			// Signed-in users have no business on the auth pages.
			if (path == "/sign-in" || path == "/sign-up") && hasSession(c, cfg) {
				return c.Redirect("/dashboard", fiber.StatusFound)
			}
			return c.Next()
		}

		if MatchRoute(protectedRoutes, path) && !hasSession(c, cfg) {
			if strings.HasPrefix(path, "/api/") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error":   true,
					"message": "Unauthorized",
				})
			}
			target := "/sign-in?" + url.Values{"redirect_url": {path}}.Encode()
			return c.Redirect(target, fiber.StatusFound)
		}

		return c.Next()
	}
}

// MatchRoute evaluates the ordered pattern list; first match wins.
func MatchRoute(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if prefix, ok := strings.CutSuffix(pattern, "(.*)"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
			continue
		}
		if path == pattern {
			return true
		}
	}
	return false
}

// skipGate mirrors the catch-all matcher: static assets and framework
// internals bypass classification, while /api paths are always evaluated.
func skipGate(path string) bool {
	if strings.HasPrefix(path, "/api/") {
		return false
	}
	if strings.HasPrefix(path, "/_next") {
		return true
	}
	for _, suffix := range staticSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// hasSession checks for a verifiable session token without rejecting the
// request; the gate only classifies, SessionProtected enforces.
func hasSession(c *fiber.Ctx, cfg *config.Config) bool {
	// An empty key would verify any HS256 token signed with an empty key.
	if cfg.SessionJWTSecret == "" {
		return false
	}

	raw := c.Cookies("__session")
	if raw == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			raw = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if raw == "" {
		return false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.SessionJWTSecret), nil
	})
	return err == nil && token.Valid
}
