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

type IdeaHandler struct {
	ideas *services.IdeaService
}

func NewIdeaHandler(ideas *services.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideas: ideas}
}

func (h *IdeaHandler) Create(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	idea, decision, err := h.ideas.Create(principalID, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyRawContent) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create idea",
		})
	}
	if !decision.Allowed {
		// Business-rule rejection, not an error: 403 with the reason.
		return c.Status(fiber.StatusForbidden).JSON(decision)
	}

	return c.Status(fiber.StatusCreated).JSON(idea)
}

func (h *IdeaHandler) List(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	response, err := h.ideas.List(principalID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list ideas",
		})
	}
	return c.JSON(response)
}

func (h *IdeaHandler) Get(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	ideaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid idea id",
		})
	}

	idea, err := h.ideas.Get(principalID, ideaID)
	if err != nil {
		return ideaError(c, err)
	}
	return c.JSON(idea)
}

func (h *IdeaHandler) Update(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	ideaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid idea id",
		})
	}

	var req dto.UpdateIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	idea, err := h.ideas.Update(principalID, ideaID, &req)
	if err != nil {
		return ideaError(c, err)
	}
	return c.JSON(idea)
}

func (h *IdeaHandler) Archive(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	ideaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid idea id",
		})
	}

	idea, err := h.ideas.Archive(principalID, ideaID)
	if err != nil {
		return ideaError(c, err)
	}
	return c.JSON(idea)
}

func (h *IdeaHandler) Delete(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	ideaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid idea id",
		})
	}

	if err := h.ideas.Delete(principalID, ideaID); err != nil {
		return ideaError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Idea deleted"})
}

func ideaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrIdeaNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Idea not found",
		})
	case errors.Is(err, services.ErrNotIdeaOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "You do not own this idea",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Idea operation failed",
		})
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
