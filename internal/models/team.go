package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRole string

const (
	RoleOwner  TeamRole = "OWNER"
	RoleAdmin  TeamRole = "ADMIN"
	RoleMember TeamRole = "MEMBER"
)

type Team struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Members   []TeamMember   `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type TeamMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user" json:"team_id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_team_members_team_user" json:"user_id"`
	Role      TeamRole  `gorm:"size:10;default:'MEMBER'" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}
