package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type IdeaStatus string

const (
	IdeaDraft      IdeaStatus = "DRAFT"
	IdeaProcessing IdeaStatus = "PROCESSING"
	IdeaCompleted  IdeaStatus = "COMPLETED"
	IdeaArchived   IdeaStatus = "ARCHIVED"
)

type ContentType string

const (
	ContentEducational   ContentType = "EDUCATIONAL"
	ContentEntertainment ContentType = "ENTERTAINMENT"
	ContentInspirational ContentType = "INSPIRATIONAL"
	ContentPromotional   ContentType = "PROMOTIONAL"
	ContentStorytelling  ContentType = "STORYTELLING"
	ContentTutorial      ContentType = "TUTORIAL"
)

type Platform string

const (
	PlatformTikTok         Platform = "TIKTOK"
	PlatformInstagramReels Platform = "INSTAGRAM_REELS"
	PlatformYouTubeShorts  Platform = "YOUTUBE_SHORTS"
	PlatformAll            Platform = "ALL"
)

// Idea is a unit of raw creator input plus the AI-derived breakdown stored in
// ProcessedContent (main topic, key points, suggested tone, target audience).
type Idea struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           string         `gorm:"size:64;not null;index" json:"user_id"`
	RawContent       string         `gorm:"type:text;not null" json:"raw_content"`
	ProcessedContent datatypes.JSON `gorm:"type:jsonb" json:"processed_content"`
	ContentType      ContentType    `gorm:"size:20" json:"content_type"`
	TargetPlatform   Platform       `gorm:"size:20;default:'ALL'" json:"target_platform"`
	Tags             datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags"`
	WordCount        int            `gorm:"default:0" json:"word_count"`
	Status           IdeaStatus     `gorm:"size:20;default:'DRAFT';index" json:"status"`

	GeneratedContent []GeneratedContent `gorm:"foreignKey:IdeaID" json:"generated_content,omitempty"`
	PerformanceData  []PerformanceData  `gorm:"foreignKey:IdeaID" json:"performance_data,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
}
