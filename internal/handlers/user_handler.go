package handlers

import (
	"encoding/json"
	"errors"

	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/middleware"
	"github.com/creatorflowhq/creatorflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me resolves the session principal to the local user, creating the default
// state on first contact, and attaches the usage report.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.users.EnsureUser(principalID, middleware.PrincipalEmail(c), nil)
	if err != nil {
		if errors.Is(err, services.ErrEmailMissing) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Error: true, Message: "Session carries no email; cannot provision account",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to resolve user",
		})
	}

	return c.JSON(dto.MeResponse{User: user, Limits: h.users.CheckLimits(user)})
}

// Limits returns the usage report alone, for cheap polling from the UI.
func (h *UserHandler) Limits(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.users.GetWithRelations(principalID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load user",
		})
	}

	return c.JSON(h.users.CheckLimits(user))
}

func (h *UserHandler) CanPerform(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	action := c.Query("action")
	decision, err := h.users.CanPerformAction(principalID, action)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to evaluate action",
		})
	}

	return c.JSON(decision)
}

func (h *UserHandler) UpdateSettings(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	settings, err := h.users.UpdateSettings(principalID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Settings not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update settings",
		})
	}

	return c.JSON(settings)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.users.GetWithRelations(principalID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.BrandVoice != nil {
		updates["brand_voice"] = *req.BrandVoice
	}
	if req.PreferredPlatforms != nil {
		if b, err := json.Marshal(req.PreferredPlatforms); err == nil {
			updates["preferred_platforms"] = datatypes.JSON(b)
		}
	}

	if len(updates) > 0 {
		if err := h.users.ApplyProfileUpdates(user, updates); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update profile",
			})
		}
	}

	return c.JSON(user)
}
