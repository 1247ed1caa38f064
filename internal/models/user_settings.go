package models

import (
	"time"

	"github.com/google/uuid"
)

type ContentTone string

const (
	ToneProfessional  ContentTone = "PROFESSIONAL"
	ToneCasual        ContentTone = "CASUAL"
	ToneFriendly      ContentTone = "FRIENDLY"
	ToneAuthoritative ContentTone = "AUTHORITATIVE"
	ToneHumorous      ContentTone = "HUMOROUS"
	ToneInspiring     ContentTone = "INSPIRING"
)

type UserSettings struct {
	ID                 uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID             string      `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	DefaultTone        ContentTone `gorm:"size:20;default:'FRIENDLY'" json:"default_tone"`
	AutoSave           bool        `gorm:"default:true" json:"auto_save"`
	EmailNotifications bool        `gorm:"default:true" json:"email_notifications"`
	Timezone           string      `gorm:"size:64;default:'UTC'" json:"timezone"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	User               User        `gorm:"foreignKey:UserID" json:"-"`
}
