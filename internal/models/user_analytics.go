package models

import (
	"time"

	"github.com/google/uuid"
)

// UserAnalytics is the per-user daily rollup. One row per user per calendar
// day, upserted as activity happens.
type UserAnalytics struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           string    `gorm:"size:64;not null;uniqueIndex:idx_user_analytics_user_date" json:"user_id"`
	Date             time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_analytics_user_date" json:"date"`
	IdeasCreated     int       `gorm:"default:0" json:"ideas_created"`
	ContentGenerated int       `gorm:"default:0" json:"content_generated"`
	TotalViews       int64     `gorm:"default:0" json:"total_views"`
	AvgEngagement    float64   `gorm:"default:0" json:"avg_engagement"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
