package middleware

import (
	"errors"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoPrincipal = errors.New("no authenticated principal on request")

// SessionProtected verifies the identity provider's session JWT carried in
// the Authorization header or the provider's session cookie.
func SessionProtected(cfg *config.Config) fiber.Handler {
	// Config validation makes this unreachable in a real boot, but a zero
	// Config must never turn into an accept-anything key.
	if cfg.SessionJWTSecret == "" {
		return func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: session verification is not configured",
			})
		}
	}

	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.SessionJWTSecret)},
		TokenLookup: "header:Authorization,cookie:__session",
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired session",
			})
		},
	})
}

// PrincipalID extracts the provider-issued user id (sub claim) set by
// SessionProtected.
func PrincipalID(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return "", ErrNoPrincipal
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNoPrincipal
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrNoPrincipal
	}
	return sub, nil
}

// PrincipalEmail returns the email claim when the session carries one.
func PrincipalEmail(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}
