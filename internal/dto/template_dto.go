package dto

import "github.com/creatorflowhq/creatorflow-backend/internal/models"

type TemplateListResponse struct {
	Templates []models.Template `json:"templates"`
	Total     int64             `json:"total"`
}

type RenderTemplateRequest struct {
	Variables map[string]string `json:"variables"`
}

type RenderTemplateResponse struct {
	Rendered string `json:"rendered"`
}

type CreateTemplateRequest struct {
	Name        string                      `json:"name"`
	Category    models.ContentCategory      `json:"category"`
	Platform    models.Platform             `json:"platform"`
	ContentType models.GeneratedContentType `json:"content_type"`
	Formula     string                      `json:"formula"`
	Variables   map[string]string           `json:"variables"`
}
