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

const testSecret = "gate-test-secret"

func gateApp() *fiber.App {
	cfg := &config.Config{SessionJWTSecret: testSecret}
	app := fiber.New()
	app.Use(RequestGate(cfg))
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func sessionToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_2abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func TestMatchRoute(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{"exact match", []string{"/api/health"}, "/api/health", true},
		{"exact no match", []string{"/api/health"}, "/api/healthz", false},
		{"root is exact only", []string{"/"}, "/anything", false},
		{"prefix pattern matches bare prefix", []string{"/dashboard(.*)"}, "/dashboard", true},
		{"prefix pattern matches subpath", []string{"/dashboard(.*)"}, "/dashboard/ideas/42", true},
		{"prefix pattern no match", []string{"/dashboard(.*)"}, "/library", false},
		{"first match wins across list", []string{"/sign-in(.*)", "/api/health"}, "/sign-in/sso", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchRoute(tt.patterns, tt.path))
		})
	}
}

func TestSkipGate(t *testing.T) {
	assert.True(t, skipGate("/_next/static/chunk.js"))
	assert.True(t, skipGate("/logo.png"))
	assert.True(t, skipGate("/robots.txt"))
	assert.False(t, skipGate("/dashboard"))
	// API paths are always classified, extension or not.
	assert.False(t, skipGate("/api/export.csv"))
}

func TestRequestGate_ProtectedPageRedirectsToSignIn(t *testing.T) {
	app := gateApp()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sign-in?redirect_url=%2Fdashboard", resp.Header.Get("Location"))
}

func TestRequestGate_ProtectedAPIReturns401(t *testing.T) {
	app := gateApp()

	req := httptest.NewRequest(http.MethodGet, "/api/ideas", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequestGate_PublicRoutesPass(t *testing.T) {
	app := gateApp()

	for _, path := range []string{"/", "/sign-in", "/sign-up/verify", "/api/health", "/api/webhooks/clerk"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestRequestGate_SessionOnAuthPageBouncesToDashboard(t *testing.T) {
	app := gateApp()
	token := sessionToken(t)

	for _, path := range []string{"/sign-in", "/sign-up"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(&http.Cookie{Name: "__session", Value: token})
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"), path)
	}
}

func TestRequestGate_SessionOnAuthSubpathPasses(t *testing.T) {
	app := gateApp()
	token := sessionToken(t)

	// Only the literal auth pages bounce; SSO callback subpaths must load.
	req := httptest.NewRequest(http.MethodGet, "/sign-in/sso-callback", nil)
	req.AddCookie(&http.Cookie{Name: "__session", Value: token})
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestGate_ProtectedPageWithSessionPasses(t *testing.T) {
	app := gateApp()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t))
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestGate_ForgedTokenIsNoSession(t *testing.T) {
	app := gateApp()

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_2abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wrong-secret"))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "__session", Value: forged})
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sign-in?redirect_url=%2Fdashboard", resp.Header.Get("Location"))
}

func TestRequestGate_EmptySecretNeverGrantsSession(t *testing.T) {
	cfg := &config.Config{SessionJWTSecret: ""}
	app := fiber.New()
	app.Use(RequestGate(cfg))
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// HS256 verifies any token signed with the same empty key, so a token
	// minted with []byte("") must not count as a session.
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_2abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(""))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "__session", Value: forged})
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sign-in?redirect_url=%2Fdashboard", resp.Header.Get("Location"))

	// Same token on the auth page: no bounce to /dashboard either.
	req = httptest.NewRequest(http.MethodGet, "/sign-in", nil)
	req.AddCookie(&http.Cookie{Name: "__session", Value: forged})
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestGate_UnlistedPathPasses(t *testing.T) {
	app := gateApp()

	req := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
