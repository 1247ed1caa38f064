package models

import (
	"time"

	"github.com/google/uuid"
)

// PerformanceData records engagement metrics a creator reports (or a platform
// integration imports) for a published idea.
type PerformanceData struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IdeaID         uuid.UUID `gorm:"type:uuid;not null;index" json:"idea_id"`
	UserID         string    `gorm:"size:64;not null;index" json:"user_id"`
	Platform       Platform  `gorm:"size:20;not null" json:"platform"`
	Views          int64     `gorm:"default:0" json:"views"`
	Likes          int64     `gorm:"default:0" json:"likes"`
	Shares         int64     `gorm:"default:0" json:"shares"`
	Comments       int64     `gorm:"default:0" json:"comments"`
	EngagementRate float64   `gorm:"default:0" json:"engagement_rate"`
	CompletionRate float64   `gorm:"default:0" json:"completion_rate"`
	PostedAt       time.Time `json:"posted_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Idea Idea `gorm:"foreignKey:IdeaID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}
