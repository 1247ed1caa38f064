package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User mirrors one account at the hosted identity provider. The primary key
// is the provider-issued id, so webhook events and session principals address
// rows directly without a mapping table.
type User struct {
	ID                 string             `gorm:"size:64;primaryKey" json:"id"`
	Email              string             `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name               *string            `gorm:"size:255" json:"name"`
	BrandVoice         *string            `gorm:"type:text" json:"brand_voice"`
	PreferredPlatforms datatypes.JSON     `gorm:"type:jsonb;default:'[]'" json:"preferred_platforms"`
	SubscriptionStatus SubscriptionStatus `gorm:"size:20;default:'FREE_TRIAL'" json:"subscription_status"`
	TrialStartedAt     *time.Time         `json:"trial_started_at"`

	// Monthly usage counters. Compared against plan limits in the resolver;
	// the storage layer never caps them.
	MonthlyIdeas       int       `gorm:"default:0" json:"monthly_ideas"`
	MonthlyGenerations int       `gorm:"default:0" json:"monthly_generations"`
	LastResetAt        time.Time `gorm:"autoCreateTime" json:"last_reset_at"`

	Subscription *Subscription `gorm:"foreignKey:UserID" json:"subscription,omitempty"`
	UserSettings *UserSettings `gorm:"foreignKey:UserID" json:"user_settings,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
