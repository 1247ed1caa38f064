package handlers

import (
	"errors"

	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/creatorflowhq/creatorflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TemplateHandler struct {
	templates *services.TemplateService
}

func NewTemplateHandler(templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

func (h *TemplateHandler) List(c *fiber.Ctx) error {
	category := models.ContentCategory(c.Query("category"))
	platform := models.Platform(c.Query("platform"))

	response, err := h.templates.List(category, platform)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load templates",
		})
	}
	return c.JSON(response)
}

func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid template id",
		})
	}

	tpl, err := h.templates.Get(id)
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(tpl)
}

func (h *TemplateHandler) Render(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid template id",
		})
	}

	var req dto.RenderTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	rendered, err := h.templates.Render(id, req.Variables)
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(dto.RenderTemplateResponse{Rendered: rendered})
}

func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	tpl, err := h.templates.Create(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid template id",
		})
	}

	if err := h.templates.Delete(id); err != nil {
		return templateError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func templateError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrTemplateNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Template not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Template operation failed",
	})
}
