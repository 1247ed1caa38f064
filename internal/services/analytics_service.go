package services

import (
	"errors"
	"time"

	"github.com/creatorflowhq/creatorflow-backend/internal/dto"
	"github.com/creatorflowhq/creatorflow-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPerformanceIdeaMissing = errors.New("idea not found for performance record")

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// RecordPerformance stores one engagement snapshot for an idea. The
// engagement rate is derived from the raw counts when the caller omits it.
func (s *AnalyticsService) RecordPerformance(userID string, req *dto.RecordPerformanceRequest) (*models.PerformanceData, error) {
	var idea models.Idea
	err := s.db.First(&idea, "id = ? AND user_id = ?", req.IdeaID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPerformanceIdeaMissing
	}
	if err != nil {
		return nil, err
	}

	engagement := req.EngagementRate
	if engagement == 0 && req.Views > 0 {
		engagement = float64(req.Likes+req.Shares+req.Comments) / float64(req.Views)
	}

	postedAt := time.Now()
	if req.PostedAt != nil {
		postedAt = *req.PostedAt
	}

	record := models.PerformanceData{
		ID:             uuid.New(),
		IdeaID:         req.IdeaID,
		UserID:         userID,
		Platform:       req.Platform,
		Views:          req.Views,
		Likes:          req.Likes,
		Shares:         req.Shares,
		Comments:       req.Comments,
		EngagementRate: engagement,
		CompletionRate: req.CompletionRate,
		PostedAt:       postedAt,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	if err := s.rollupViews(userID, req.Views, engagement); err != nil {
		return nil, err
	}
	return &record, nil
}

// RecordDailyActivity upserts today's rollup row, incrementing the activity
// counters.
func (s *AnalyticsService) RecordDailyActivity(userID string, ideasDelta, generationsDelta int) error {
	row := models.UserAnalytics{
		ID:               uuid.New(),
		UserID:           userID,
		Date:             today(),
		IdeasCreated:     ideasDelta,
		ContentGenerated: generationsDelta,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"ideas_created":     gorm.Expr("user_analytics.ideas_created + ?", ideasDelta),
			"content_generated": gorm.Expr("user_analytics.content_generated + ?", generationsDelta),
			"updated_at":        time.Now(),
		}),
	}).Create(&row).Error
}

func (s *AnalyticsService) rollupViews(userID string, views int64, engagement float64) error {
	row := models.UserAnalytics{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          today(),
		TotalViews:    views,
		AvgEngagement: engagement,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_views": gorm.Expr("user_analytics.total_views + ?", views),
			// Running average over the rows folded in so far.
			"avg_engagement": gorm.Expr("(user_analytics.avg_engagement + ?) / 2", engagement),
			"updated_at":     time.Now(),
		}),
	}).Create(&row).Error
}

// GetAnalytics returns the daily rollups for the trailing window plus the
// summed totals.
func (s *AnalyticsService) GetAnalytics(userID string, days int) (*dto.AnalyticsResponse, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	start := today().AddDate(0, 0, -days)

	var daily []models.UserAnalytics
	err := s.db.Where("user_id = ? AND date >= ?", userID, start).
		Order("date ASC").
		Find(&daily).Error
	if err != nil {
		return nil, err
	}

	summary := dto.AnalyticsSummary{}
	for _, d := range daily {
		summary.IdeasCreated += d.IdeasCreated
		summary.ContentGenerated += d.ContentGenerated
		summary.TotalViews += d.TotalViews
	}
	if len(daily) > 0 {
		var sum float64
		for _, d := range daily {
			sum += d.AvgEngagement
		}
		summary.AvgEngagement = sum / float64(len(daily))
	}

	return &dto.AnalyticsResponse{Days: days, Daily: daily, Summary: summary}, nil
}

// TopContent lists the user's best performing ideas by recorded views.
func (s *AnalyticsService) TopContent(userID string, limit int) ([]models.PerformanceData, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var records []models.PerformanceData
	err := s.db.Where("user_id = ?", userID).
		Order("views DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
