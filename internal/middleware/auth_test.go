package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func protectedApp(secret string) *fiber.App {
	cfg := &config.Config{SessionJWTSecret: secret}
	app := fiber.New()
	app.Get("/api/me", SessionProtected(cfg), func(c *fiber.Ctx) error {
		id, err := PrincipalID(c)
		if err != nil {
			return err
		}
		return c.SendString(id)
	})
	return app
}

func TestSessionProtected_ValidToken(t *testing.T) {
	app := protectedApp(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t))
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionProtected_MissingToken(t *testing.T) {
	app := protectedApp(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionProtected_EmptySecretRejectsEverything(t *testing.T) {
	app := protectedApp("")

	// Even a token signed with the matching empty key is rejected.
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_2abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(""))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
