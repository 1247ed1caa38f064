package handlers

import (
	"time"

	"github.com/creatorflowhq/creatorflow-backend/internal/database"
	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	metrics *database.QueryMetrics
}

func NewHealthHandler(metrics *database.QueryMetrics) *HealthHandler {
	return &HealthHandler{metrics: metrics}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}

// Metrics exposes the query timing snapshot for operators.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	if h.metrics == nil {
		return c.JSON(fiber.Map{})
	}
	return c.JSON(h.metrics.Snapshot())
}
