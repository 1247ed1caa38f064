package dto

import (
	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/google/uuid"
)

type GenerateRequest struct {
	IdeaID      uuid.UUID                   `json:"idea_id"`
	ContentType models.GeneratedContentType `json:"content_type"`
	Platform    models.Platform             `json:"platform"`
	Tone        models.ContentTone          `json:"tone"`
}

type GenerationListResponse struct {
	Content []models.GeneratedContent `json:"content"`
	Total   int64                     `json:"total"`
}
