package dto

import "github.com/creatorflowhq/creatorflow-backend/internal/models"

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type AddMemberRequest struct {
	UserID string          `json:"user_id"`
	Role   models.TeamRole `json:"role"`
}

type TeamListResponse struct {
	Memberships []models.TeamMember `json:"memberships"`
}
