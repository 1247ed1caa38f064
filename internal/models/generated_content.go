package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GeneratedContentType string

const (
	GeneratedHook     GeneratedContentType = "HOOK"
	GeneratedScript   GeneratedContentType = "SCRIPT"
	GeneratedCaption  GeneratedContentType = "CAPTION"
	GeneratedHashtags GeneratedContentType = "HASHTAGS"
	GeneratedCTA      GeneratedContentType = "CTA"
)

// GeneratedContent is one AI-produced artifact for an idea. Metadata carries
// the model name, confidence and type-specific fields (hook type, estimated
// duration).
type GeneratedContent struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IdeaID      uuid.UUID            `gorm:"type:uuid;not null;index" json:"idea_id"`
	UserID      string               `gorm:"size:64;not null;index" json:"user_id"`
	ContentType GeneratedContentType `gorm:"size:20;not null" json:"content_type"`
	Platform    Platform             `gorm:"size:20;default:'ALL'" json:"platform"`
	Content     string               `gorm:"type:text;not null" json:"content"`
	Metadata    datatypes.JSON       `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`

	Idea Idea `gorm:"foreignKey:IdeaID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}
