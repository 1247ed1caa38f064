package dto

import "github.com/creatorflowhq/creatorflow-backend/internal/models"

type CreateIdeaRequest struct {
	RawContent     string             `json:"raw_content"`
	ContentType    models.ContentType `json:"content_type"`
	TargetPlatform models.Platform    `json:"target_platform"`
	Tags           []string           `json:"tags"`
}

type UpdateIdeaRequest struct {
	RawContent     *string             `json:"raw_content"`
	ContentType    *models.ContentType `json:"content_type"`
	TargetPlatform *models.Platform    `json:"target_platform"`
	Tags           []string            `json:"tags"`
	Status         *models.IdeaStatus  `json:"status"`
}

type IdeaListResponse struct {
	Ideas  []models.Idea `json:"ideas"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}
