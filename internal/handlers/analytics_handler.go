package handlers

import (
	"errors"
	"strconv"

	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/middleware"
	"github.com/creatorflowhq/creatorflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) RecordPerformance(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.RecordPerformanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.IdeaID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "idea_id is required",
		})
	}

	record, err := h.analytics.RecordPerformance(principalID, &req)
	if err != nil {
		if errors.Is(err, services.ErrPerformanceIdeaMissing) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Idea not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to record performance",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	days, _ := strconv.Atoi(c.Query("days", "30"))
	response, err := h.analytics.GetAnalytics(principalID, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load analytics",
		})
	}
	return c.JSON(response)
}

func (h *AnalyticsHandler) TopContent(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	records, err := h.analytics.TopContent(principalID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load top content",
		})
	}
	return c.JSON(fiber.Map{"top": records})
}
