package dto

import (
	"time"

	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/google/uuid"
)

type RecordPerformanceRequest struct {
	IdeaID         uuid.UUID       `json:"idea_id"`
	Platform       models.Platform `json:"platform"`
	Views          int64           `json:"views"`
	Likes          int64           `json:"likes"`
	Shares         int64           `json:"shares"`
	Comments       int64           `json:"comments"`
	EngagementRate float64         `json:"engagement_rate"`
	CompletionRate float64         `json:"completion_rate"`
	PostedAt       *time.Time      `json:"posted_at"`
}

type AnalyticsResponse struct {
	Days    int                    `json:"days"`
	Daily   []models.UserAnalytics `json:"daily"`
	Summary AnalyticsSummary       `json:"summary"`
}

type AnalyticsSummary struct {
	IdeasCreated     int     `json:"ideas_created"`
	ContentGenerated int     `json:"content_generated"`
	TotalViews       int64   `json:"total_views"`
	AvgEngagement    float64 `json:"avg_engagement"`
}
