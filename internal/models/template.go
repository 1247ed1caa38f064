package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ContentCategory string

const (
	CategoryEducation ContentCategory = "EDUCATION"
	CategoryLifestyle ContentCategory = "LIFESTYLE"
	CategoryBusiness  ContentCategory = "BUSINESS"
	CategoryHumor     ContentCategory = "HUMOR"
)

// Template is a reusable content formula with {variable} placeholders and the
// allowed substitutions stored alongside. Templates are global, not owned by
// any user; BuiltIn marks the formulas shipped with the product.
type Template struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string               `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Category    ContentCategory      `gorm:"size:20;index" json:"category"`
	Platform    Platform             `gorm:"size:20;default:'ALL'" json:"platform"`
	ContentType GeneratedContentType `gorm:"size:20" json:"content_type"`
	Formula     string               `gorm:"type:text;not null" json:"formula"`
	Variables   datatypes.JSON       `gorm:"type:jsonb;default:'{}'" json:"variables"`
	SuccessRate float64              `gorm:"default:0" json:"success_rate"`
	BuiltIn     bool                 `gorm:"default:false" json:"built_in"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
