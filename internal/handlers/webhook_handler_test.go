package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/creatorflowhq/creatorflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func webhookApp(secret string) *fiber.App {
	cfg := &config.Config{ClerkWebhookSecret: secret}
	h := NewWebhookHandler(services.NewSyncService(nil, nil, nil), cfg)

	app := fiber.New()
	app.Get("/api/webhooks/clerk", h.Liveness)
	app.Post("/api/webhooks/clerk", h.HandleIdentityEvent)
	return app
}

func TestWebhook_MissingSvixHeaders(t *testing.T) {
	app := webhookApp("whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw")

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no headers at all", nil},
		{"missing signature", map[string]string{"svix-id": "msg_1", "svix-timestamp": "1700000000"}},
		{"missing id", map[string]string{"svix-timestamp": "1700000000", "svix-signature": "v1,abc"}},
		{"missing timestamp", map[string]string{"svix-id": "msg_1", "svix-signature": "v1,abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/webhooks/clerk", strings.NewReader(`{}`))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, "Error occurred -- no svix headers", string(body))
		})
	}
}

func TestWebhook_InvalidSignature(t *testing.T) {
	app := webhookApp("whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/clerk", strings.NewReader(`{"type":"user.created"}`))
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", "v1,Zm9yZ2VkLXNpZ25hdHVyZQ==")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Error occurred", string(body))
}

func TestWebhook_SecretNotConfigured(t *testing.T) {
	app := webhookApp("")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/clerk", strings.NewReader(`{}`))
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", "v1,abc")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWebhook_Liveness(t *testing.T) {
	app := webhookApp("whsec_x")

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/clerk", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Clerk webhook endpoint is active", string(body))
}
