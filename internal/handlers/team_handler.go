package handlers

import (
	"errors"

	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/middleware"
	"github.com/creatorflowhq/creatorflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TeamHandler struct {
	teams *services.TeamService
}

func NewTeamHandler(teams *services.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

func (h *TeamHandler) Create(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	team, err := h.teams.CreateTeam(principalID, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrTeamNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create team",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}

func (h *TeamHandler) List(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	memberships, err := h.teams.GetUserTeams(principalID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load teams",
		})
	}
	return c.JSON(dto.TeamListResponse{Memberships: memberships})
}

func (h *TeamHandler) Get(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid team id",
		})
	}

	team, err := h.teams.GetTeam(principalID, teamID)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Team not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load team",
		})
	}
	return c.JSON(team)
}

func (h *TeamHandler) AddMember(c *fiber.Ctx) error {
	principalID, err := middleware.PrincipalID(c)
	if err != nil {
		return unauthorized(c)
	}

	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid team id",
		})
	}

	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "user_id is required",
		})
	}

	member, err := h.teams.AddMember(teamID, principalID, req.UserID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTeamNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Team not found",
			})
		case errors.Is(err, services.ErrNotTeamManager):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAlreadyMember):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to add member",
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}
