package handlers

import (
	"errors"

	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/middleware"
	"github.com/creatorflowhq/creatorflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GenerationHandler struct {
	generations *services.GenerationService
}

func NewGenerationHandler(generations *services.GenerationService) *GenerationHandler {
	return &GenerationHandler{generations: generations}
}

func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.IdeaID == uuid.Nil || req.ContentType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "idea_id and content_type are required",
		})
	}

	content, decision, err := h.generations.Generate(principalID, &req)
	if err != nil {
		if errors.Is(err, services.ErrIdeaNotFound) || errors.Is(err, services.ErrNotIdeaOwner) {
			return ideaError(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to generate content",
		})
	}
	if !decision.Allowed {
		return c.Status(fiber.StatusForbidden).JSON(decision)
	}

	return c.Status(fiber.StatusCreated).JSON(content)
}

func (h *GenerationHandler) ListForIdea(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	ideaID, err := uuid.Parse(c.Params("idea_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid idea id",
		})
	}

	response, err := h.generations.ListForIdea(principalID, ideaID)
	if err != nil {
		if errors.Is(err, services.ErrIdeaNotFound) || errors.Is(err, services.ErrNotIdeaOwner) {
			return ideaError(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list generated content",
		})
	}
	return c.JSON(response)
}
