package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	svix "github.com/svix/svix-webhooks/go"
)

type WebhookHandler struct {
	sync *services.SyncService
	cfg  *config.Config
}

func NewWebhookHandler(sync *services.SyncService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{sync: sync, cfg: cfg}
}

// HandleIdentityEvent processes one signed webhook from the identity
// provider. Header and signature failures are 400s; failures while handling
// a recognized event type are 500s. Verification happens against the raw
// body before anything is parsed.
func (h *WebhookHandler) HandleIdentityEvent(c *fiber.Ctx) error {
	svixID := c.Get("svix-id")
	svixTimestamp := c.Get("svix-timestamp")
	svixSignature := c.Get("svix-signature")

	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred -- no svix headers")
	}

	if h.cfg.ClerkWebhookSecret == "" {
		slog.Error("webhook received but CLERK_WEBHOOK_SECRET is not configured")
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred")
	}

	wh, err := svix.NewWebhook(h.cfg.ClerkWebhookSecret)
	if err != nil {
		slog.Error("webhook verifier init failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error processing webhook")
	}

	payload := c.Body()
	headers := http.Header{}
	headers.Set("svix-id", svixID)
	headers.Set("svix-timestamp", svixTimestamp)
	headers.Set("svix-signature", svixSignature)

	if err := wh.Verify(payload, headers); err != nil {
		slog.Error("webhook verification failed", "error", err, "svix_id", svixID)
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred")
	}

	var event dto.IdentityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		slog.Error("webhook payload parse failed", "error", err, "svix_id", svixID)
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred")
	}

	// Provider retries of an already processed delivery are acknowledged
	// without side effects.
	if h.sync.IsDuplicate(c.Context(), svixID) {
		slog.Info("duplicate webhook delivery skipped", "svix_id", svixID, "event_type", event.Type)
		return c.Status(fiber.StatusOK).SendString("Webhook processed successfully")
	}

	slog.Info("webhook received", "event_type", event.Type, "svix_id", svixID)

	if err := h.sync.HandleEvent(&event); err != nil {
		slog.Error("webhook processing failed", "event_type", event.Type, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error processing webhook")
	}

	// Marked only after success; a 500 leaves the id unmarked so the
	// provider's retry is processed.
	h.sync.MarkProcessed(c.Context(), svixID)

	return c.Status(fiber.StatusOK).SendString("Webhook processed successfully")
}

// Liveness answers GETs on the webhook path so the endpoint can be verified
// from the provider dashboard.
func (h *WebhookHandler) Liveness(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("Clerk webhook endpoint is active")
}
